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

// Default total work bases, tuned so that each sweep phase takes a noticeable
// but bounded time on contemporary hardware.
const (
	DefaultPrimeBase = 300000
	DefaultLoopBase  = 300
)

// Kernel performs an amount of work proportional to the passed work count,
// returning a byproduct of its work.
type Kernel func(work uint64) uint64

// Workload identifies one of the kernels together with the total work base of
// a sweep phase.
type Workload struct {
	Name   string // machine-friendly identifier
	Title  string // human-friendly description of the sweep phase
	Unit   string // what a single work count unit stands for
	Base   uint64 // total work quantum per thread in a single-thread run
	Kernel Kernel
}

// CPUPrimes returns the prime counting Workload.
func CPUPrimes(base uint64) Workload {
	return Workload{
		Name:   "cpu-prime-count",
		Title:  "CPU sequence test",
		Unit:   "primes",
		Base:   base,
		Kernel: CountPrimes,
	}
}

// SequentialRead returns the Workload scanning m in row-major order.
func SequentialRead(m *Matrix, base uint64) Workload {
	return Workload{
		Name:   "memory-sequential-read",
		Title:  "sequence memory read test",
		Unit:   "loops",
		Base:   base,
		Kernel: m.SequentialScan,
	}
}

// StridedRead returns the Workload scanning m in column-major order.
func StridedRead(m *Matrix, base uint64) Workload {
	return Workload{
		Name:   "memory-strided-read",
		Title:  "random memory read test",
		Unit:   "loops",
		Base:   base,
		Kernel: m.StridedScan,
	}
}

// Phases returns the three standard workloads in their sweep order.
func Phases(m *Matrix, primeBase, loopBase uint64) []Workload {
	return []Workload{
		CPUPrimes(primeBase),
		SequentialRead(m, loopBase),
		StridedRead(m, loopBase),
	}
}
