package pbqp

import (
	"fmt"
	"math"
)

// Cost is a non-negative cost value. Inf marks a forbidden option or pairing.
type Cost = float64

// Inf is the forbidden cost. It absorbs every finite addend.
var Inf = math.Inf(1)

// IsInf reports whether c is the forbidden cost
func IsInf(c Cost) bool {
	return math.IsInf(c, 1)
}

// AddCost adds two costs, saturating at Inf
func AddCost(a, b Cost) Cost {
	if IsInf(a) || IsInf(b) {
		return Inf
	}
	s := a + b
	if math.IsInf(s, 1) {
		return Inf
	}
	return s
}

func validCost(c Cost) bool {
	return !math.IsNaN(c) && c >= 0
}

// Vector holds one cost per option of a node
type Vector []Cost

// NewVector returns a zero vector of length n
func NewVector(n int) Vector {
	return make(Vector, n)
}

// Clone returns a copy of v
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Add adds o to v elementwise in place
func (v Vector) Add(o Vector) {
	for i := range v {
		v[i] = AddCost(v[i], o[i])
	}
}

// MinIndex returns the index of the smallest entry. The lowest index wins ties.
// An empty vector returns -1.
func (v Vector) MinIndex() int {
	best := -1
	for i, c := range v {
		if best < 0 || c < v[best] {
			best = i
		}
	}
	return best
}

// Min returns the smallest entry, Inf for an empty vector
func (v Vector) Min() Cost {
	i := v.MinIndex()
	if i < 0 {
		return Inf
	}
	return v[i]
}

// AllInf reports whether every option is forbidden
func (v Vector) AllInf() bool {
	for _, c := range v {
		if !IsInf(c) {
			return false
		}
	}
	return true
}

// Matrix is a row-major cost matrix. Rows index the options of the first
// node of an edge, columns the options of the second.
type Matrix struct {
	Rows, Cols int
	data       []Cost
}

// NewMatrix returns a zero rows x cols matrix
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, data: make([]Cost, rows*cols)}
}

// NewMatrixFilled returns a rows x cols matrix with every entry set to c
func NewMatrixFilled(rows, cols int, c Cost) Matrix {
	m := NewMatrix(rows, cols)
	for i := range m.data {
		m.data[i] = c
	}
	return m
}

// At returns entry (i, j)
func (m Matrix) At(i, j int) Cost {
	return m.data[i*m.Cols+j]
}

// Set stores c at (i, j)
func (m Matrix) Set(i, j int, c Cost) {
	m.data[i*m.Cols+j] = c
}

// AddAt adds c to entry (i, j), saturating at Inf
func (m Matrix) AddAt(i, j int, c Cost) {
	m.data[i*m.Cols+j] = AddCost(m.data[i*m.Cols+j], c)
}

// Clone returns a deep copy of m
func (m Matrix) Clone() Matrix {
	out := Matrix{Rows: m.Rows, Cols: m.Cols, data: make([]Cost, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Transpose returns a new matrix with rows and columns swapped
func (m Matrix) Transpose() Matrix {
	out := NewMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

// Add adds o to m elementwise in place. The shapes must match.
func (m Matrix) Add(o Matrix) error {
	if m.Rows != o.Rows || m.Cols != o.Cols {
		return fmt.Errorf("%w: %dx%d + %dx%d", ErrDimensionMismatch, m.Rows, m.Cols, o.Rows, o.Cols)
	}
	for i := range m.data {
		m.data[i] = AddCost(m.data[i], o.data[i])
	}
	return nil
}

// Row returns a copy of row i
func (m Matrix) Row(i int) Vector {
	out := make(Vector, m.Cols)
	copy(out, m.data[i*m.Cols:(i+1)*m.Cols])
	return out
}

// Column returns a copy of column j
func (m Matrix) Column(j int) Vector {
	out := make(Vector, m.Rows)
	for i := 0; i < m.Rows; i++ {
		out[i] = m.At(i, j)
	}
	return out
}

// AllInf reports whether every entry is forbidden
func (m Matrix) AllInf() bool {
	for _, c := range m.data {
		if !IsInf(c) {
			return false
		}
	}
	return true
}

func (m Matrix) valid() bool {
	for _, c := range m.data {
		if !validCost(c) {
			return false
		}
	}
	return true
}
