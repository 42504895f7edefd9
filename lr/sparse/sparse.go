/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the ACTION and GOTO tables of LR parsers.
Every cell of a matrix holds at most one int32 value; attempts to store a
second, different value into an occupied cell are reported to the caller, which
is how parser tables detect double entries.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept sorted by (row, column).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(-1)     // parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)         // set a value
//     v := M.Value(2, 3)        // returns 4711
//     old, ok := M.Put(2, 3, 1) // returns (4711, false), cell is occupied
//     cnt := M.ValueCount()     // returns 1 (one position set)
//     v = M.Value(10, 10)       // returns -1, i.e. the null-value
//
// The dimensions of a matrix grow with the positions set.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    int32
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates a new, empty matrix. The argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(nullValue int32) *IntMatrix {
	return &IntMatrix{nullval: nullValue}
}

// M returns the row count, i.e. one more than the highest row index set.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count, i.e. one more than the highest column index set.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// search returns the index of the first triplet not left of (i,j).
func (m *IntMatrix) search(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
}

// Value returns the value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		return m.values[k].value
	}
	return m.nullval
}

// Set a value in the matrix at position (i,j), overwriting an existing value.
// Setting the null-value clears the cell.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		if value == m.nullval {
			m.values = append(m.values[:k], m.values[k+1:]...)
		} else {
			m.values[k].value = value
		}
		return m
	}
	if value != m.nullval {
		m.insert(k, triplet{row: i, col: j, value: value})
	}
	return m
}

// Put stores a value at position (i,j), if the cell is empty or already holds
// the same value. If the cell holds a different value, it is left unchanged and
// Put returns the old value and false.
func (m *IntMatrix) Put(i, j int, value int32) (int32, bool) {
	if i < 0 || j < 0 {
		panic(fmt.Sprintf("sparse: negative index (%d,%d)", i, j))
	}
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		old := m.values[k].value
		return old, old == value
	}
	if value != m.nullval {
		m.insert(k, triplet{row: i, col: j, value: value})
	}
	return m.nullval, true
}

func (m *IntMatrix) insert(k int, t triplet) {
	m.values = append(m.values, t) // make room
	copy(m.values[k+1:], m.values[k:])
	m.values[k] = t
	if t.row >= m.rowcnt {
		m.rowcnt = t.row + 1
	}
	if t.col >= m.colcnt {
		m.colcnt = t.col + 1
	}
}

// Row returns the column indices of all values in row i, in ascending order.
func (m *IntMatrix) Row(i int) []int {
	var cols []int
	for k := m.search(i, 0); k < len(m.values) && m.values[k].row == i; k++ {
		cols = append(cols, m.values[k].col)
	}
	return cols
}

// Each calls f for every value, ordered by row and column.
func (m *IntMatrix) Each(f func(i, j int, value int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.value)
	}
}

func (m *IntMatrix) String() string {
	return fmt.Sprintf("IntMatrix(%dx%d, %d values)", m.rowcnt, m.colcnt, len(m.values))
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}
