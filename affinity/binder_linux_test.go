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
	"os"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/thediveo/cpuscale/cpus"

	. "github.com/onsi/ginkgo/v2/dsl/core"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("hard binding", func() {

	It("reports the online and allowed CPUs", func() {
		topo := Successful(Detect())
		Expect(topo.Logical).To(Equal(Successful(cpus.Online()).Len()))
		Expect(topo.Allowed).To(Equal(Successful(cpus.Affinity(os.Getpid())).List()))
	})

	It("pins threads to the allowed CPUs, wrapping around", func() {
		b := Successful(New(1, logr.Discard()))
		Expect(b.Mode()).To(Equal(Hard))
		allowed := Successful(Detect()).Allowed.CPUs()

		for _, processor := range []uint{0, uint(len(allowed)) - 1, uint(len(allowed))} {
			done := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				defer close(done)
				runtime.LockOSThread() // don't unlock, throw away the tainted thread

				Expect(b.Bind(processor)).To(Succeed())
				cpu := allowed[processor%uint(len(allowed))]
				Expect(Successful(cpus.Affinity(0)).List()).To(Equal(cpus.List{{cpu, cpu}}))
			}()
			Eventually(done).Should(BeClosed())
		}
	})

})
