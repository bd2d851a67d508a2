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
	"errors"
	"fmt"
	"strings"

	"github.com/thediveo/faf"
)

// List is a list of CPU [from...to] ranges, ordered from lowest to highest and
// never overlapping. CPU numbers are starting from zero.
type List [][2]uint

// String returns the CPU list in textual format, with the individual ranges
// “x-y” separated by “,” and single CPU ranges collapsed into “x”.
func (l List) String() string {
	var b strings.Builder
	for idx, cpurange := range l {
		if idx > 0 {
			b.WriteByte(',')
		}
		if cpurange[0] == cpurange[1] {
			fmt.Fprintf(&b, "%d", cpurange[0])
			continue
		}
		fmt.Fprintf(&b, "%d-%d", cpurange[0], cpurange[1])
	}
	return b.String()
}

// NewList returns a new CPU List for the given textual list format, such as
// read from “/sys/devices/system/cpu/online”. A single trailing newline is
// accepted. If the text is malformed then an error is returned instead.
func NewList(b []byte) (List, error) {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	bs := faf.NewBytestring(b)
	l := List{}
	for !bs.EOL() {
		from, ok := bs.Uint64()
		if !ok {
			return nil, errors.New("expected unsigned integer number")
		}
		to := from
		if !bs.EOL() {
			ch, _ := bs.Next()
			switch ch {
			case '-':
				to, ok = bs.Uint64()
				if !ok {
					return nil, errors.New("expected unsigned integer number")
				}
				if to < from {
					return nil, fmt.Errorf("invalid range %d-%d", from, to)
				}
				if !bs.EOL() {
					if ch, _ = bs.Next(); ch != ',' {
						return nil, errors.New("expected ','")
					}
				}
			case ',':
			default:
				return nil, errors.New("expected '-' or ','")
			}
		}
		l = append(l, [2]uint{uint(from), uint(to)})
	}
	return l, nil
}

// Len returns the number of CPUs in this List.
func (l List) Len() int {
	n := 0
	for _, r := range l {
		n += int(r[1]-r[0]) + 1
	}
	return n
}

// CPUs returns the individual CPU numbers of this List in ascending order.
func (l List) CPUs() []uint {
	cpus := make([]uint, 0, l.Len())
	for _, r := range l {
		for cpu := r[0]; cpu <= r[1]; cpu++ {
			cpus = append(cpus, cpu)
		}
	}
	return cpus
}

// Set returns the CPU Set corresponding with this list.
func (l List) Set() Set {
	if len(l) == 0 {
		return Set{}
	}
	// Do last range first to allocate only once.
	var s Set
	for i := range l {
		r := l[len(l)-i-1]
		s = s.AddRange(r[0], r[1])
	}
	return s
}
