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


package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"github.com/thediveo/cpuscale"
	"github.com/thediveo/cpuscale/affinity"
	"github.com/thediveo/cpuscale/workload"
	"github.com/thediveo/enumflag/v2"
	"go.uber.org/automaxprocs/maxprocs"
)

// Format of the results written to stdout.
type Format enumflag.Flag

const (
	Text Format = iota
	JSON
)

// FormatIds maps Format values to their textual flag representations.
var FormatIds = map[Format][]string{
	Text: {"text"},
	JSON: {"json"},
}

// usageError signals an invalid command line.
type usageError struct{ error }

// options are the tunables of a benchmark run.
type options struct {
	settle    time.Duration
	primeBase uint64
	loopBase  uint64
	matrixDim int
	seed      uint64
	format    Format
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := options{
		settle:    cpuscale.DefaultSettle,
		primeBase: workload.DefaultPrimeBase,
		loopBase:  workload.DefaultLoopBase,
		matrixDim: workload.DefaultMatrixDim,
	}
	cmd := &cobra.Command{
		Use:   "cpuscale [flags] MAXTHREADS",
		Short: "measure CPU and memory scaling across 1..MAXTHREADS pinned threads",
		Long: `cpuscale runs a CPU-bound prime counting workload and two memory-bound
matrix scanning workloads, each first on a single thread, then on two threads,
and so on up to MAXTHREADS threads. The total amount of work stays the same
for all thread counts of a workload, so the times show how well the workload
scales on this machine.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{fmt.Errorf("expected exactly one MAXTHREADS argument, got %d", len(args))}
			}
			if _, err := parseMaxThreads(args[0]); err != nil {
				return usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			maxThreads, _ := parseMaxThreads(args[0])
			return run(cmd, maxThreads, opts)
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})
	flags := cmd.Flags()
	flags.DurationVar(&opts.settle, "settle", opts.settle,
		"settling delay before each experiment")
	flags.Uint64Var(&opts.primeBase, "prime-base", opts.primeBase,
		"total work base of the CPU workload, in primes per thread")
	flags.Uint64Var(&opts.loopBase, "loop-base", opts.loopBase,
		"total work base of the memory workloads, in matrix scans per thread")
	flags.IntVar(&opts.matrixDim, "matrix-dim", opts.matrixDim,
		"number of rows and columns of the shared matrix")
	flags.Uint64Var(&opts.seed, "seed", 0,
		"seed for the matrix contents; 0 seeds from the current time")
	flags.Var(enumflag.New(&opts.format, "format", FormatIds, enumflag.EnumCaseInsensitive),
		"format", "result output format; can be 'text' or 'json'")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"log diagnostic details")
	return cmd
}

// parseMaxThreads returns the maximum thread count from its textual form,
// rejecting anything that isn't a positive integer.
func parseMaxThreads(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid MAXTHREADS %q", s)
	}
	if n < 1 {
		return 0, errors.New("MAXTHREADS must be positive")
	}
	return n, nil
}

// newLogger returns a logger writing to w.
func newLogger(w io.Writer, verbose bool) logr.Logger {
	verbosity := 0
	if verbose {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}

func run(cmd *cobra.Command, maxThreads int, opts options) error {
	out := cmd.OutOrStdout()
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)
	transcript := out
	if opts.format != Text {
		transcript = io.Discard
	}

	fmt.Fprint(transcript, "  1 memory allocating... ")
	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m, err := workload.NewMatrix(opts.matrixDim, rand.NewPCG(seed, seed>>1))
	if err != nil {
		log.Error(err, "cannot allocate matrix")
		return err
	}
	fmt.Fprintln(transcript, "OK.")

	fmt.Fprintf(transcript, "  2 setting affinity for %d cpu's... ", maxThreads)
	binder, err := affinity.New(uint(maxThreads), log)
	if err != nil {
		log.Error(err, "cannot set up processor binding")
		return err
	}
	topo, err := affinity.Detect()
	if err != nil {
		log.Error(err, "cannot detect processors")
		return err
	}
	fmt.Fprintln(transcript, "OK.")
	checkCPUQuota(log, maxThreads, topo.Usable())

	fmt.Fprintln(transcript, "\nDetected CPU configuration:")
	fmt.Fprintf(transcript, "  Logical CPUs: %d\n", topo.Logical)
	if topo.Physical > 0 {
		fmt.Fprintf(transcript, "  Physical CPUs: %d\n", topo.Physical)
		fmt.Fprintf(transcript, "  Cores per CPU: %d\n", topo.Logical/topo.Physical)
	}
	if len(topo.Allowed) > 0 {
		fmt.Fprintf(transcript, "  Allowed CPUs: %s\n", topo.Allowed)
	}
	switch binder.Mode() {
	case affinity.Hint:
		fmt.Fprintln(transcript, "\nNote: this platform does not support hard CPU affinity. Using QoS optimizations instead.")
	case affinity.None:
		fmt.Fprintln(transcript, "\nNote: no CPU affinity support, threads are not pinned to CPUs.")
	}

	var reporter cpuscale.Reporter = cpuscale.NewTextReporter(out)
	if opts.format == JSON {
		reporter = cpuscale.NewJSONReporter(out)
	}
	sweep := &cpuscale.Sweep{
		MaxThreads: maxThreads,
		Settle:     opts.settle,
		Runner:     cpuscale.NewRunner(binder),
		Reporter:   reporter,
		Log:        log,
	}
	if _, err := sweep.RunAll(cmd.Context(),
		workload.Phases(m, opts.primeBase, opts.loopBase)...); err != nil {
		log.Error(err, "sweep aborted")
		return err
	}
	return nil
}

// checkCPUQuota warns when a container CPU quota allows fewer processors than
// the thread count needs, as then not all threads run in parallel even when
// pinned. GOMAXPROCS is left as it was.
func checkCPUQuota(log logr.Logger, maxThreads int, usable int) {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.V(1).Info(fmt.Sprintf(format, args...))
	}))
	quota := runtime.GOMAXPROCS(0)
	undo()
	if err != nil {
		log.V(1).Info("cannot determine CPU quota", "error", err.Error())
		return
	}
	if quota < usable && maxThreads > quota {
		log.Info("warning: requested thread count exceeds CPU quota",
			"requested", maxThreads, "quota", quota)
	}
}
