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
	"context"
	"fmt"
	"time"

	"github.com/eapache/queue"
	"github.com/go-logr/logr"
	"github.com/thediveo/cpuscale/workload"
)

// DefaultSettle is the default delay before each experiment, letting the
// system calm down from the previous one.
const DefaultSettle = time.Second

// PerThreadWork returns each thread's share of the total work of a sweep phase
// with the specified maximum thread count and total work base, when running
// with the specified number of threads. The total work threads×share stays
// constant across the sweep, up to an integer truncation of less than threads.
func PerThreadWork(maxThreads int, base uint64, threads int) uint64 {
	return uint64(maxThreads) * base / uint64(threads)
}

// Sweep runs experiments for thread counts 1 to MaxThreads.
type Sweep struct {
	MaxThreads int
	Settle     time.Duration // delay before each experiment
	Runner     *Runner
	Reporter   Reporter // optional
	Log        logr.Logger
}

// plan returns the queue of experiments to run for the specified workload, in
// ascending thread count order.
func (s *Sweep) plan(w workload.Workload) *queue.Queue {
	q := queue.New()
	for threads := 1; threads <= s.MaxThreads; threads++ {
		q.Add(Request{
			Threads:       threads,
			PerThreadWork: PerThreadWork(s.MaxThreads, w.Base, threads),
			Workload:      w,
		})
	}
	return q
}

// Run the sweep phase for the specified workload, reporting each result as soon
// as it is available. Run returns the results in ascending order of thread
// counts. Cancelling the context stops the sweep before the next experiment,
// but never interrupts a running experiment.
func (s *Sweep) Run(ctx context.Context, w workload.Workload) ([]Result, error) {
	if s.MaxThreads < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidThreadCount, s.MaxThreads)
	}
	if w.Base < uint64(s.MaxThreads) {
		s.Log.Info("warning: total work base smaller than thread count, per-thread work gets truncated",
			"workload", w.Name, "base", w.Base, "threads", s.MaxThreads)
	}
	if s.Reporter != nil {
		s.Reporter.Phase(w)
	}
	plan := s.plan(w)
	results := make([]Result, 0, plan.Length())
	for plan.Length() > 0 {
		req := plan.Remove().(Request)
		if err := settle(ctx, s.Settle); err != nil {
			return results, err
		}
		s.Log.V(1).Info("running experiment",
			"workload", w.Name, "threads", req.Threads, "work", req.PerThreadWork)
		res, err := s.Runner.Run(req)
		if err != nil {
			return results, fmt.Errorf("%s with %d threads: %w", w.Name, req.Threads, err)
		}
		results = append(results, res)
		if s.Reporter != nil {
			s.Reporter.Result(res)
		}
	}
	return results, nil
}

// RunAll runs the sweep phases for the specified workloads one after another.
func (s *Sweep) RunAll(ctx context.Context, ws ...workload.Workload) ([][]Result, error) {
	all := make([][]Result, 0, len(ws))
	for _, w := range ws {
		results, err := s.Run(ctx, w)
		if err != nil {
			return all, err
		}
		all = append(all, results)
	}
	return all, nil
}

// settle blocks for the specified delay, unless the context gets cancelled
// first.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
