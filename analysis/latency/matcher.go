//
// Copyright 2024 The latviz Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
//
package latency

import (
	"github.com/latviz/latviz/tracedata/trace"
)

// IntervalKind tags the two interval variants derived by this package.
type IntervalKind int8

const (
	// WakeLatency intervals span a task's wake event to its switch-in.
	WakeLatency IntervalKind = iota
	// Preemption intervals span a runnable task's switch-out to its next
	// switch-in.
	Preemption
)

func (k IntervalKind) String() string {
	switch k {
	case WakeLatency:
		return "wake-latency"
	case Preemption:
		return "preemption"
	default:
		return "unknown"
	}
}

// Interval is a matched open/close record pair.  Open never follows Close
// in stream order.
type Interval struct {
	Kind  IntervalKind
	Open  *trace.Record
	Close *trace.Record
}

// Duration returns the interval's elapsed time.
func (iv Interval) Duration() trace.Timestamp {
	return iv.Close.Timestamp - iv.Open.Timestamp
}

// Predicate reports whether the entry at index i of the provided container
// applies to the task being analyzed.  The task is an explicit parameter
// rather than captured state.
type Predicate func(c *trace.FieldContainer, i int, pid trace.PID) bool

// matchIntervals scans the open- and close-side containers in stream order
// and emits one Interval per matched pair: the earliest applicable open
// entry is paired with the first applicable close record following it, and
// any further open entries inside the emitted interval are discarded.  The
// result is chronological and non-overlapping.
func matchIntervals(kind IntervalKind, pid trace.PID,
	openC *trace.FieldContainer, isOpen Predicate,
	closeC *trace.FieldContainer, isClose Predicate) []Interval {
	var out []Interval
	ci := 0
	oi := 0
	for oi < openC.Len() {
		if !isOpen(openC, oi, pid) {
			oi++
			continue
		}
		open := openC.At(oi).Record
		matched := false
		for ; ci < closeC.Len(); ci++ {
			cl := closeC.At(ci).Record
			if cl.Index <= open.Index || !isClose(closeC, ci, pid) {
				continue
			}
			out = append(out, Interval{Kind: kind, Open: open, Close: cl})
			// Drop opens overtaken by this interval.
			for oi < openC.Len() && openC.At(oi).Record.Index <= cl.Index {
				oi++
			}
			ci++
			matched = true
			break
		}
		if !matched {
			// No close remains for this or any later open.
			break
		}
	}
	return out
}

// Intervals returns, in chronological order, first the wake-up latency and
// then the preemption intervals of the provided task.  A zero PID yields no
// intervals.  The first call runs the trailing-record correction; see
// Prepare.
func (c *StreamContext) Intervals(pid trace.PID) []Interval {
	if pid == trace.NoPID {
		return nil
	}
	c.Prepare()
	ivs := matchIntervals(WakeLatency, pid, c.waking, WakeOpen, c.switches, TaskClose)
	return append(ivs, matchIntervals(Preemption, pid, c.switches, PreemptionOpen, c.switches, TaskClose)...)
}
