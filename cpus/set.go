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

package cpus

import (
	"fmt"
	"math/bits"
	"slices"
	"unsafe"
)

// Set is a CPU bit string, such as used for CPU affinity masks. See also
// [sched_getaffinity(2)].
//
// [sched_getaffinity(2)]: https://man7.org/linux/man-pages/man2/sched_getaffinity.2.html
type Set []uint64

var wordbytesize = uint64(unsafe.Sizeof(Set{0}[0]))
var bitsperword = uint(wordbytesize * 8)

func setBitIndex(cpu uint) int {
	return int(cpu / bitsperword)
}

func setBitMask(cpu uint) uint64 {
	return uint64(1) << (cpu % bitsperword)
}

// IsSet reports whether cpu is in this CPU set.
func (s Set) IsSet(cpu uint) bool {
	if cpu >= uint(len(s))*bitsperword {
		return false
	}
	return s[setBitIndex(cpu)]&setBitMask(cpu) != 0
}

// AddRange adds the CPUs from the specified range, returning an updated Set.
// This updated Set may or may not be the original Set.
func (s Set) AddRange(from, to uint) Set {
	if from > to {
		panic(fmt.Sprintf("invalid range %d-%d", from, to))
	}
	if to >= uint(len(s))*bitsperword {
		s = slices.Grow(s, setBitIndex(to)-len(s)+1)
		s = s[:setBitIndex(to)+1]
	}
	for cpu := from; cpu <= to; cpu++ {
		s[setBitIndex(cpu)] |= setBitMask(cpu)
	}
	return s
}

// String returns the CPUs in this set in textual list format.
func (s Set) String() string {
	return s.List().String()
}

// List returns the list of CPU ranges corresponding with this CPU Set.
//
// Instead of testing bit by bit, List skips over runs of zero and one bits
// using trailing zero counts, so all-0s and all-1s words are handled in a
// single step each.
func (s Set) List() List {
	cpulist := List{}
	inRange := false
	var from uint
	for wordidx, word := range s {
		base := uint(wordidx) * bitsperword
		pos := uint(0)
		for pos < bitsperword {
			rest := word >> pos
			if !inRange {
				if rest == 0 {
					break
				}
				pos += uint(bits.TrailingZeros64(rest))
				from = base + pos
				inRange = true
				continue
			}
			// Count the run of set bits starting at pos; when it reaches the
			// end of the word the range continues into the next word.
			ones := uint(bits.TrailingZeros64(^rest))
			if pos+ones >= bitsperword {
				break
			}
			pos += ones
			cpulist = append(cpulist, [2]uint{from, base + pos - 1})
			inRange = false
		}
	}
	if inRange {
		cpulist = append(cpulist, [2]uint{from, uint(len(s))*bitsperword - 1})
	}
	return cpulist
}
