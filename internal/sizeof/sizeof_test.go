package sizeof

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate_Scalars(t *testing.T) {
	assert.Equal(t, int64(0), Estimate(nil))
	assert.Equal(t, int64(4), Estimate(true))
	assert.Equal(t, int64(8), Estimate(42))
	assert.Equal(t, int64(8), Estimate(3.14))
	assert.Equal(t, int64(10), Estimate("hello"))
	assert.Equal(t, int64(0), Estimate(""))
}

func TestEstimate_PixelBufferIsLinear(t *testing.T) {
	buf := make([]uint8, 1024)
	// 16 bytes of slice overhead plus one byte per element.
	assert.Equal(t, int64(16+1024), Estimate(buf))

	floats := make([]float64, 100)
	assert.Equal(t, int64(16+800), Estimate(floats))
}

func TestEstimate_Composite(t *testing.T) {
	type swatch struct {
		Name string
		R    uint8
		G    uint8
		B    uint8
	}
	// 16 overhead + 2*3 name + 3*8 numeric fields.
	assert.Equal(t, int64(16+6+24), Estimate(swatch{Name: "red", R: 255}))

	m := map[string]int{"a": 1, "bb": 2}
	// 16 overhead + (2+8) + (4+8).
	assert.Equal(t, int64(16+10+12), Estimate(m))
}

func TestEstimate_PointerAndNil(t *testing.T) {
	n := 7
	assert.Equal(t, int64(8+8), Estimate(&n))

	var p *int
	assert.Equal(t, int64(8), Estimate(p))
}

func TestEstimate_DepthBounded(t *testing.T) {
	type node struct {
		Next *node
	}
	head := &node{}
	cur := head
	for i := 0; i < 100; i++ {
		cur.Next = &node{}
		cur = cur.Next
	}
	// Must terminate and return something positive despite the long chain.
	assert.Greater(t, Estimate(head), int64(0))
}
