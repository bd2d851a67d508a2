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
	"fmt"
	"io"

	"github.com/sugawarayuuta/sonnet"
	"github.com/thediveo/cpuscale/workload"
)

// Reporter receives the results of a sweep while it progresses.
type Reporter interface {
	// Phase gets called when a sweep phase for the specified workload starts.
	Phase(w workload.Workload)
	// Result gets called for each experiment as soon as it has finished.
	Result(r Result)
}

// TextReporter writes a human-readable transcript.
type TextReporter struct {
	w    io.Writer
	unit string
}

var _ Reporter = (*TextReporter)(nil)

// NewTextReporter returns a Reporter writing a human-readable transcript to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func (t *TextReporter) Phase(w workload.Workload) {
	t.unit = w.Unit
	fmt.Fprintf(t.w, "\nStarting %s...\n", w.Title)
}

func (t *TextReporter) Result(r Result) {
	fmt.Fprintf(t.w, "%d threads, %d %s per thread, total time = %f seconds (%.0f %s/s)\n",
		r.Threads, r.PerThreadWork, t.unit, r.Seconds(), r.Throughput(), t.unit)
}

// JSONReporter writes one JSON object per result and line.
type JSONReporter struct {
	w io.Writer
}

var _ Reporter = (*JSONReporter)(nil)

// NewJSONReporter returns a Reporter writing JSON lines to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// jsonResult is the JSON representation of a Result.
type jsonResult struct {
	Workload       string  `json:"workload"`
	Threads        int     `json:"threads"`
	PerThreadWork  uint64  `json:"per_thread_work"`
	TotalWork      uint64  `json:"total_work"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Throughput     float64 `json:"throughput"`
}

func (j *JSONReporter) Phase(workload.Workload) {}

func (j *JSONReporter) Result(r Result) {
	b, err := sonnet.Marshal(jsonResult{
		Workload:       r.Workload,
		Threads:        r.Threads,
		PerThreadWork:  r.PerThreadWork,
		TotalWork:      r.TotalWork(),
		ElapsedSeconds: r.Seconds(),
		Throughput:     r.Throughput(),
	})
	if err != nil {
		// only plain numbers and strings, so this can't fail.
		panic(err)
	}
	_, _ = j.w.Write(append(b, '\n'))
}
