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


//go:build linux

package affinity

import (
	"errors"
	"fmt"
	"os"

	"github.com/thediveo/cpuscale/cpus"
)

// Detect returns the online processors and the processors this process is
// allowed to run on.
func Detect() (Topology, error) {
	online, err := cpus.Online()
	if err != nil {
		return Topology{}, err
	}
	allowed, err := cpus.Affinity(os.Getpid())
	if err != nil {
		return Topology{}, err
	}
	return Topology{
		Logical: online.Len(),
		Allowed: allowed.List(),
	}, nil
}

// hardbinder pins threads to the allowed CPUs of the process, in ascending
// order of their CPU numbers.
type hardbinder struct {
	cpus []uint
}

func newBinder(topo Topology) (Binder, error) {
	allowed := topo.Allowed.CPUs()
	if len(allowed) == 0 {
		return nil, errors.New("process not allowed to run on any CPU")
	}
	return &hardbinder{cpus: allowed}, nil
}

// Bind pins the calling thread to the processor-th allowed CPU, wrapping
// around if there are more processors requested than allowed.
func (b *hardbinder) Bind(processor uint) error {
	cpu := b.cpus[processor%uint(len(b.cpus))]
	if err := cpus.SetAffinity(0, cpus.Set{}.AddRange(cpu, cpu)); err != nil {
		return fmt.Errorf("cannot pin thread to CPU %d: %w", cpu, err)
	}
	return nil
}

func (b *hardbinder) Mode() Mode { return Hard }
