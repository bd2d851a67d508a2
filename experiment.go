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


package cpuscale

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/thediveo/cpuscale/affinity"
	"github.com/thediveo/cpuscale/workload"
)

// ErrInvalidThreadCount is returned for thread counts less than one.
var ErrInvalidThreadCount = errors.New("thread count must be positive")

// Request describes a single experiment.
type Request struct {
	Threads       int    // number of worker threads
	PerThreadWork uint64 // work count passed to each worker's kernel
	Workload      workload.Workload
}

// Result is the outcome of a single experiment.
type Result struct {
	Workload      string
	Threads       int
	PerThreadWork uint64
	Elapsed       time.Duration
	Sum           uint64 // sum of the kernel results of all workers
}

// Seconds returns the elapsed wall-clock time in seconds.
func (r Result) Seconds() float64 { return r.Elapsed.Seconds() }

// TotalWork returns the work count summed over all threads.
func (r Result) TotalWork() uint64 { return uint64(r.Threads) * r.PerThreadWork }

// Throughput returns the total work units processed per second, or zero if
// no time elapsed.
func (r Result) Throughput() float64 {
	secs := r.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.TotalWork()) / secs
}

// Runner runs experiments, binding workers to processors using its Binder.
type Runner struct {
	binder affinity.Binder
}

// NewRunner returns a new Runner using the specified Binder.
func NewRunner(binder affinity.Binder) *Runner {
	return &Runner{binder: binder}
}

// Run the experiment described by req and return its result. Run blocks until
// all worker threads have finished; there is no timeout. If any worker fails to
// bind to its processor, Run returns an error after all workers have finished
// and the experiment must be considered invalid.
func (r *Runner) Run(req Request) (Result, error) {
	if req.Threads < 1 {
		return Result{}, fmt.Errorf("%w, got %d", ErrInvalidThreadCount, req.Threads)
	}
	if req.Workload.Kernel == nil {
		return Result{}, fmt.Errorf("workload %q without kernel", req.Workload.Name)
	}
	// Locked go routines can only run in parallel when there are enough Ps.
	if procs := runtime.GOMAXPROCS(0); procs < req.Threads {
		runtime.GOMAXPROCS(req.Threads)
		defer runtime.GOMAXPROCS(procs)
	}

	sums := make([]uint64, req.Threads)
	errs := make([]error, req.Threads)
	var wg sync.WaitGroup
	start := time.Now()
	for idx := range req.Threads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Never unlock, so the OS thread with its changed affinity gets
			// thrown away when this go routine ends.
			runtime.LockOSThread()
			if err := r.binder.Bind(uint(idx)); err != nil {
				errs[idx] = fmt.Errorf("worker %d: %w", idx, err)
				return
			}
			sums[idx] = req.Workload.Kernel(req.PerThreadWork)
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if err := errors.Join(errs...); err != nil {
		return Result{}, err
	}
	res := Result{
		Workload:      req.Workload.Name,
		Threads:       req.Threads,
		PerThreadWork: req.PerThreadWork,
		Elapsed:       elapsed,
	}
	for _, sum := range sums {
		res.Sum += sum
	}
	return res, nil
}
