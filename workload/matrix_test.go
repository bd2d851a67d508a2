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
	"math/rand/v2"
	"sync"

	. "github.com/onsi/ginkgo/v2/dsl/core"
	. "github.com/onsi/ginkgo/v2/dsl/table"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("matrix scans", func() {

	It("rejects invalid dimensions", func() {
		Expect(NewMatrix(0, rand.NewPCG(1, 2))).Error().To(HaveOccurred())
	})

	It("fills a matrix with values in range", func() {
		m := Successful(NewMatrix(50, rand.NewPCG(42, 666)))
		Expect(m.Dim()).To(Equal(50))
		for row := range m.Dim() {
			for col := range m.Dim() {
				Expect(m.At(row, col)).To(And(
					BeNumerically(">=", 0), BeNumerically("<=", 999)))
			}
		}
	})

	It("is deterministic for the same seed", func() {
		m1 := Successful(NewMatrix(20, rand.NewPCG(1, 1)))
		m2 := Successful(NewMatrix(20, rand.NewPCG(1, 1)))
		Expect(m1.cells).To(Equal(m2.cells))
	})

	It("scans in row-major and column-major order", func() {
		m := newMatrixOf(3, []int32{
			42, 0, 142,
			1, 942, 2,
			3, 4, 43,
		})
		Expect(m.At(1, 1)).To(Equal(int32(942)))
		Expect(m.SequentialScan(1)).To(Equal(uint64(3)))
		Expect(m.StridedScan(1)).To(Equal(uint64(3)))
		Expect(m.SequentialScan(5)).To(Equal(uint64(15)))
		Expect(m.StridedScan(0)).To(BeZero())
	})

	DescribeTable("sequential and strided scans count alike",
		func(dim int, passes uint64) {
			m := Successful(NewMatrix(dim, rand.NewPCG(uint64(dim), passes)))
			Expect(m.StridedScan(passes)).To(Equal(m.SequentialScan(passes)))
		},
		Entry(nil, 1, uint64(3)),
		Entry(nil, 7, uint64(2)),
		Entry(nil, DefaultMatrixDim, uint64(4)),
	)

	It("scans concurrently", func() {
		m := Successful(NewMatrix(DefaultMatrixDim, rand.NewPCG(7, 7)))
		expected := m.SequentialScan(2)
		var wg sync.WaitGroup
		counts := make([]uint64, 8)
		for idx := range counts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if idx%2 == 0 {
					counts[idx] = m.SequentialScan(2)
				} else {
					counts[idx] = m.StridedScan(2)
				}
			}()
		}
		wg.Wait()
		Expect(counts).To(HaveEach(expected))
	})

})

var _ = Describe("workloads", func() {

	It("returns the phases in sweep order", func() {
		m := newMatrixOf(1, []int32{42})
		phases := Phases(m, DefaultPrimeBase, DefaultLoopBase)
		Expect(phases).To(HaveLen(3))
		Expect(phases[0].Name).To(Equal("cpu-prime-count"))
		Expect(phases[0].Base).To(Equal(uint64(DefaultPrimeBase)))
		Expect(phases[1].Name).To(Equal("memory-sequential-read"))
		Expect(phases[2].Name).To(Equal("memory-strided-read"))
		Expect(phases[1].Base).To(Equal(uint64(DefaultLoopBase)))

		Expect(phases[0].Kernel(12)).To(Equal(uint64(4)))
		Expect(phases[1].Kernel(3)).To(Equal(uint64(3)))
		Expect(phases[2].Kernel(2)).To(Equal(uint64(2)))
	})

})
