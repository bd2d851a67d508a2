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


package affinity

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/thediveo/cpuscale/cpus"
)

// Mode describes how strongly a Binder binds threads to processors.
type Mode int

const (
	None Mode = iota // no binding at all
	Hint             // scheduling hint, processor not enforced
	Hard             // thread runs only on the selected processor
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Hint:
		return "hint"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Binder binds the calling OS thread to a logical processor, identified by its
// 0-based processor index.
type Binder interface {
	// Bind the calling OS thread to the processor with the specified index.
	// The caller must have locked its go routine to the OS thread.
	Bind(processor uint) error
	// Mode returns how strongly this Binder binds threads.
	Mode() Mode
}

// Topology describes the logical processors of the host.
type Topology struct {
	Logical  int       // number of logical processors online
	Physical int       // number of physical cores, or zero if unknown
	Allowed  cpus.List // processors this process may run on, if known
}

// Usable returns the number of processors threads can be bound to.
func (t Topology) Usable() int {
	if n := t.Allowed.Len(); n > 0 {
		return n
	}
	return t.Logical
}

// New returns the Binder for this platform, detecting the processor topology
// for it. When more processors are requested than detected, New logs a warning
// and the returned Binder then binds multiple threads to the same processors.
func New(requested uint, log logr.Logger) (Binder, error) {
	topo, err := Detect()
	if err != nil {
		return nil, fmt.Errorf("cannot detect processors: %w", err)
	}
	b, err := newBinder(topo)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("processor binding", "mode", b.Mode().String(),
		"logical", topo.Logical, "allowed", topo.Allowed.String())
	if usable := topo.Usable(); int(requested) > usable {
		log.Info("warning: requested thread count exceeds available logical processors",
			"requested", requested, "available", usable)
	}
	return b, nil
}

// nobinder doesn't bind at all.
type nobinder struct{}

func (nobinder) Bind(uint) error { return nil }
func (nobinder) Mode() Mode      { return None }

// NoBinder returns a Binder that never binds.
func NoBinder() Binder { return nobinder{} }
