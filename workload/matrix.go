// Copyright 2024 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.


package workload

import (
	"fmt"
	"math/rand/v2"
)

// DefaultMatrixDim is the default number of rows and columns of a Matrix.
const DefaultMatrixDim = 200

// Target is the remainder modulo 100 the matrix scans count cells for.
const Target = 42

// Matrix is a square matrix of integers stored contiguously in row-major
// order. After creation a Matrix is never modified, so any number of go
// routines can scan it concurrently without locking.
type Matrix struct {
	dim   int
	cells []int32
}

// NewMatrix returns a new dim×dim Matrix filled with pseudo-random values in
// the range [0, 999] drawn from src.
func NewMatrix(dim int, src rand.Source) (*Matrix, error) {
	if dim < 1 {
		return nil, fmt.Errorf("invalid matrix dimension %d", dim)
	}
	rnd := rand.New(src)
	m := &Matrix{
		dim:   dim,
		cells: make([]int32, dim*dim),
	}
	for idx := range m.cells {
		m.cells[idx] = rnd.Int32N(1000)
	}
	return m, nil
}

// newMatrixOf returns a Matrix taking ownership of the passed cells.
func newMatrixOf(dim int, cells []int32) *Matrix {
	if len(cells) != dim*dim {
		panic(fmt.Sprintf("%d cells don't make a %d×%d matrix", len(cells), dim, dim))
	}
	return &Matrix{dim: dim, cells: cells}
}

// Dim returns the number of rows (and columns) of this Matrix.
func (m *Matrix) Dim() int { return m.dim }

// At returns the cell value at the specified row and column.
func (m *Matrix) At(row, col int) int32 { return m.cells[row*m.dim+col] }

// SequentialScan scans all cells passes times in row-major order, so
// consecutive accesses are contiguous in memory. It returns the number of
// visited cells with a value modulo 100 equal to [Target].
func (m *Matrix) SequentialScan(passes uint64) uint64 {
	var count uint64
	dim := m.dim
	for range passes {
		for row := 0; row < dim; row++ {
			cells := m.cells[row*dim : (row+1)*dim]
			for _, v := range cells {
				if v%100 == Target {
					count++
				}
			}
		}
	}
	return count
}

// StridedScan scans all cells passes times in column-major order, so
// consecutive accesses jump a whole row ahead in memory. It returns the same
// count as [Matrix.SequentialScan] for the same number of passes.
func (m *Matrix) StridedScan(passes uint64) uint64 {
	var count uint64
	dim := m.dim
	for range passes {
		for col := 0; col < dim; col++ {
			for idx := col; idx < len(m.cells); idx += dim {
				if m.cells[idx]%100 == Target {
					count++
				}
			}
		}
	}
	return count
}
