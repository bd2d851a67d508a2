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


//go:build !linux && !windows && !darwin

package affinity

import "runtime"

// Detect returns the number of logical processors usable by this process.
func Detect() (Topology, error) {
	return Topology{Logical: runtime.NumCPU()}, nil
}

func newBinder(Topology) (Binder, error) {
	return nobinder{}, nil
}
