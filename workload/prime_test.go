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


package workload

import (
	. "github.com/onsi/ginkgo/v2/dsl/core"
	. "github.com/onsi/ginkgo/v2/dsl/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("prime counting", func() {

	DescribeTable("counting primes in [3, n)",
		func(n uint64, expected uint64) {
			Expect(CountPrimes(n)).To(Equal(expected))
		},
		Entry("empty range [3,0)", uint64(0), uint64(0)),
		Entry("empty range [3,3)", uint64(3), uint64(0)),
		Entry("3 only", uint64(4), uint64(1)),
		Entry("3, 5, 7, 11", uint64(12), uint64(4)),
		Entry("squares of primes aren't primes", uint64(26), uint64(8)),
		Entry("below 100", uint64(100), uint64(24)),
		Entry("below 1000", uint64(1000), uint64(167)),
	)

})
