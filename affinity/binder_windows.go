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


//go:build windows

package affinity

import (
	"fmt"
	"math/bits"
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

// Detect returns the number of logical processors available to this process.
func Detect() (Topology, error) {
	return Topology{Logical: runtime.NumCPU()}, nil
}

// maskbinder pins threads using affinity masks, which are limited to the
// processors of a single processor group.
type maskbinder struct {
	count uint
}

func newBinder(topo Topology) (Binder, error) {
	count := uint(min(topo.Logical, bits.UintSize))
	if count == 0 {
		return nil, fmt.Errorf("no logical processors")
	}
	return &maskbinder{count: count}, nil
}

func (b *maskbinder) Bind(processor uint) error {
	cpu := processor % b.count
	ret, _, err := procSetThreadAffinityMask.Call(
		uintptr(windows.CurrentThread()), uintptr(1)<<cpu)
	if ret == 0 {
		return fmt.Errorf("cannot pin thread to processor %d: %w", cpu, err)
	}
	return nil
}

func (b *maskbinder) Mode() Mode { return Hard }
