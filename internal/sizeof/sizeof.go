// Package sizeof approximates the in-memory size of Go values for cache
// and pool byte accounting.
//
// The estimate is deliberately cheap and coarse: booleans count 4 bytes,
// numbers 8, strings 2 bytes per character, and composite values are
// summed recursively with a fixed per-object overhead. It exists to keep
// memory budgets honest, not to duplicate the allocator's bookkeeping.
package sizeof

import "reflect"

const (
	boolBytes   = 4
	numberBytes = 8
	charBytes   = 2

	// objectOverhead is charged once per composite value (struct, map,
	// slice, pointer target) for headers and bookkeeping.
	objectOverhead = 16

	// maxDepth stops runaway recursion on cyclic or deeply nested values.
	maxDepth = 8
)

// Estimate returns the approximate byte size of v.
func Estimate(v any) int64 {
	if v == nil {
		return 0
	}
	return estimateValue(reflect.ValueOf(v), 0)
}

func estimateValue(v reflect.Value, depth int) int64 {
	if depth > maxDepth {
		return objectOverhead
	}

	switch v.Kind() {
	case reflect.Invalid:
		return 0
	case reflect.Bool:
		return boolBytes
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return numberBytes
	case reflect.Complex64, reflect.Complex128:
		return 2 * numberBytes
	case reflect.String:
		return int64(v.Len()) * charBytes
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return numberBytes
		}
		return numberBytes + estimateValue(v.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		size := int64(objectOverhead)
		// Primitive-element slices (pixel buffers and the like) are sized
		// arithmetically; walking them element by element would make
		// estimating a decoded image cost as much as decoding it.
		if unit := primitiveSize(v.Type().Elem().Kind()); unit > 0 {
			return size + int64(v.Len())*unit
		}
		for i := 0; i < v.Len(); i++ {
			size += estimateValue(v.Index(i), depth+1)
		}
		return size
	case reflect.Map:
		size := int64(objectOverhead)
		iter := v.MapRange()
		for iter.Next() {
			size += estimateValue(iter.Key(), depth+1)
			size += estimateValue(iter.Value(), depth+1)
		}
		return size
	case reflect.Struct:
		size := int64(objectOverhead)
		for i := 0; i < v.NumField(); i++ {
			size += estimateValue(v.Field(i), depth+1)
		}
		return size
	default:
		// Channels, funcs, unsafe pointers: count the word.
		return numberBytes
	}
}

// primitiveSize returns the charged byte size for a fixed-size scalar
// kind, or 0 when the kind needs recursive treatment.
func primitiveSize(k reflect.Kind) int64 {
	switch k {
	case reflect.Bool:
		return boolBytes
	case reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64,
		reflect.Uintptr, reflect.Float64:
		return numberBytes
	default:
		return 0
	}
}
