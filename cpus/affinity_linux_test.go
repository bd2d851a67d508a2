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
	"bytes"
	"os"
	"runtime"

	. "github.com/onsi/ginkgo/v2/dsl/core"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("task affinities", func() {

	It("gets this process's CPU affinity, consistent with /proc/self/status", func() {
		cpulist := Successful(Affinity(os.Getpid())).List()
		Expect(cpulist).NotTo(BeEmpty())
		Expect(setsize.Load()).NotTo(BeZero())

		prefix := []byte("Cpus_allowed_list:\t")
		var allowed List
		for _, line := range bytes.Split(Successful(os.ReadFile("/proc/self/status")), []byte("\n")) {
			if bytes.HasPrefix(line, prefix) {
				allowed = Successful(NewList(line[len(prefix):]))
			}
		}
		Expect(cpulist).To(Equal(allowed))
	})

	It("pins the calling thread to a single CPU", func() {
		done := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			defer close(done)
			runtime.LockOSThread() // don't unlock, throw away the tainted task

			cpu := Successful(Affinity(0)).List()[0][0]
			Expect(SetAffinity(0, Set{}.AddRange(cpu, cpu))).To(Succeed())
			Expect(Successful(Affinity(0)).List()).To(Equal(List{{cpu, cpu}}))
		}()
		Eventually(done).Should(BeClosed())
	})

	It("cannot set empty affinities", func() {
		Expect(SetAffinity(0, Set{})).NotTo(Succeed())
		Expect(SetAffinity(0, Set{0})).NotTo(Succeed())
	})

	It("reads the online CPUs", func() {
		online := Successful(Online())
		Expect(online.Len()).To(BeNumerically(">=", runtime.NumCPU()))
	})

})
