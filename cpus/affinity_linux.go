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

package cpus

import (
	"os"
	"sync/atomic"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// OnlinePath is the sysfs pseudo file listing the online CPUs.
const OnlinePath = "/sys/devices/system/cpu/online"

// setsize caches the size of CPU affinity masks on this system in uint64
// words, as learned from the kernel. This is usually smaller than the fixed
// sized [unix.CPUSet].
var setsize atomic.Uint64

func init() {
	setsize.Store(1)
}

// Affinity returns the affinity CPU Set of the task with the passed TID. If tid
// is zero, then the affinity of the calling thread is returned; make sure to
// have the OS-level thread locked to the calling go routine in this case.
//
// We don't use [unix.SchedGetaffinity] as it is tied to the fixed size
// [unix.CPUSet]; instead, the mask size gets doubled until the kernel accepts
// it, and the size found is then cached for subsequent calls.
func Affinity(tid int) (Set, error) {
	known := setsize.Load()
	setlen := known
	for {
		set := make(Set, setlen)
		// SYS_SCHED_GETAFFINITY doesn't block, so RawSyscall is fine, as in
		// Go's stdlib.
		_, _, e := unix.RawSyscall(unix.SYS_SCHED_GETAFFINITY,
			uintptr(tid), uintptr(setlen*wordbytesize), uintptr(unsafe.Pointer(&set[0])))
		if e == unix.EINVAL {
			setlen *= 2
			continue
		}
		if e != 0 {
			return nil, e
		}
		// Another go routine might have raised the size in the meantime; only
		// ever grow the cached size.
		for setlen > known && !setsize.CompareAndSwap(known, setlen) {
			known = setsize.Load()
		}
		return set, nil
	}
}

// SetAffinity sets the CPU affinity of the task with the passed TID, where tid
// zero denotes the calling thread. It is an error trying to set an empty
// affinity.
func SetAffinity(tid int, cpus Set) error {
	if len(cpus) == 0 {
		return syscall.EINVAL
	}
	_, _, e := unix.RawSyscall(unix.SYS_SCHED_SETAFFINITY,
		uintptr(tid), uintptr(uint64(len(cpus))*wordbytesize), uintptr(unsafe.Pointer(&cpus[0])))
	if e != 0 {
		return e
	}
	return nil
}

// Online returns the List of CPUs the kernel currently considers to be online.
func Online() (List, error) {
	b, err := os.ReadFile(OnlinePath)
	if err != nil {
		return nil, err
	}
	return NewList(b)
}
