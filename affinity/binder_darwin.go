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


//go:build darwin

package affinity

import (
	"golang.org/x/sys/unix"
)

// Detect returns the logical and physical processor counts as reported by the
// kernel.
func Detect() (Topology, error) {
	logical, err := unix.SysctlUint32("hw.logicalcpu")
	if err != nil {
		return Topology{}, err
	}
	physical, err := unix.SysctlUint32("hw.physicalcpu")
	if err != nil {
		return Topology{}, err
	}
	return Topology{
		Logical:  int(logical),
		Physical: int(physical),
	}, nil
}

// qosbinder can't pin threads, so it raises their quality-of-service class
// instead; the processor index is ignored.
type qosbinder struct{}

func newBinder(Topology) (Binder, error) {
	if !qosSupported {
		return nobinder{}, nil
	}
	return qosbinder{}, nil
}

func (qosbinder) Bind(uint) error { return setUserInitiatedQoS() }
func (qosbinder) Mode() Mode      { return Hint }
