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

// CountPrimes returns the number of primes in the range [3, n), using trial
// division by all divisors from 2 up to the square root of each candidate. The
// cost grows roughly proportionally with n, which is what makes it a useful
// CPU-bound kernel; the count itself is only a byproduct.
func CountPrimes(n uint64) uint64 {
	var count uint64
	for c := uint64(3); c < n; c++ {
		prime := true
		for l := uint64(2); l <= c/l; l++ {
			if c%l == 0 {
				prime = false
				break
			}
		}
		if prime {
			count++
		}
	}
	return count
}
