package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixSetAndValue(t *testing.T) {
	M := NewIntMatrix(-1)
	M.Set(2, 3, 4711).Set(0, 1, 7).Set(2, 0, 8)
	assert.Equal(t, int32(4711), M.Value(2, 3))
	assert.Equal(t, int32(7), M.Value(0, 1))
	assert.Equal(t, int32(-1), M.Value(10, 10))
	assert.Equal(t, 3, M.ValueCount())
	assert.Equal(t, 3, M.M())
	assert.Equal(t, 4, M.N())
	M.Set(2, 3, 1)
	assert.Equal(t, int32(1), M.Value(2, 3))
	M.Set(2, 3, -1)
	assert.Equal(t, 2, M.ValueCount())
	assert.Equal(t, int32(-1), M.Value(2, 3))
}

func TestMatrixPut(t *testing.T) {
	M := NewIntMatrix(DefaultNullValue)
	_, ok := M.Put(1, 1, 5)
	assert.True(t, ok)
	_, ok = M.Put(1, 1, 5)
	assert.True(t, ok, "same value twice is not a conflict")
	old, ok := M.Put(1, 1, 6)
	assert.False(t, ok)
	assert.Equal(t, int32(5), old)
	assert.Equal(t, int32(5), M.Value(1, 1))
	assert.Equal(t, 1, M.ValueCount())
}

func TestMatrixRowsAndOrder(t *testing.T) {
	M := NewIntMatrix(-1)
	M.Set(1, 4, 1).Set(0, 2, 2).Set(1, 0, 3).Set(1, 2, 4)
	assert.Equal(t, []int{0, 2, 4}, M.Row(1))
	assert.Equal(t, []int{2}, M.Row(0))
	assert.Empty(t, M.Row(5))
	var seen []int32
	M.Each(func(i, j int, v int32) {
		seen = append(seen, v)
	})
	assert.Equal(t, []int32{2, 3, 4, 1}, seen)
}
