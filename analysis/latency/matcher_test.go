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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/latviz/latviz/tracedata/streambuilder"
	"github.com/latviz/latviz/tracedata/trace"
)

// span is a comparable projection of an Interval for test expectations.
type span struct {
	Kind  IntervalKind
	Open  trace.Timestamp
	Close trace.Timestamp
}

func spansOf(ivs []Interval) []span {
	var out []span
	for _, iv := range ivs {
		out = append(out, span{Kind: iv.Kind, Open: iv.Open.Timestamp, Close: iv.Close.Timestamp})
	}
	return out
}

func TestIntervals(t *testing.T) {
	tests := []struct {
		description string
		builder     *streambuilder.Builder
		pid         trace.PID
		want        []span
	}{{
		description: "wake latency from waking to switch-in",
		builder: streambuilder.NewBuilder().
			WithWaking(10, 0, 100, 5).
			WithSwitch(25, 0, 100, 1, 5),
		pid:  5,
		want: []span{{WakeLatency, 10, 25}},
	}, {
		description: "preemption from runnable switch-out to switch-in",
		builder: streambuilder.NewBuilder().
			WithSwitch(10, 0, 5, 0, 7).
			WithSwitch(40, 0, 7, 1, 5),
		pid:  5,
		want: []span{{Preemption, 10, 40}},
	}, {
		description: "blocked switch-out opens no preemption interval",
		builder: streambuilder.NewBuilder().
			WithSwitch(10, 0, 5, 1, 7).
			WithSwitch(40, 0, 7, 1, 5),
		pid:  5,
		want: nil,
	}, {
		description: "repeated wakes before one switch-in yield one interval",
		builder: streambuilder.NewBuilder().
			WithWaking(10, 0, 100, 5).
			WithWaking(15, 0, 101, 5).
			WithSwitch(25, 0, 100, 1, 5).
			WithWaking(30, 0, 100, 5).
			WithSwitch(45, 0, 100, 1, 5),
		pid:  5,
		want: []span{{WakeLatency, 10, 25}, {WakeLatency, 30, 45}},
	}, {
		description: "both kinds over one run queue cycle",
		builder: streambuilder.NewBuilder().
			WithWaking(5, 0, 100, 5).
			WithSwitch(10, 0, 100, 1, 5).
			WithSwitch(20, 0, 5, 0, 7).
			WithSwitch(40, 0, 7, 1, 5),
		pid: 5,
		want: []span{
			{WakeLatency, 5, 10},
			{Preemption, 20, 40},
		},
	}, {
		description: "open without a close is discarded",
		builder: streambuilder.NewBuilder().
			WithWaking(10, 0, 100, 5).
			WithSwitch(25, 0, 100, 1, 9),
		pid:  5,
		want: nil,
	}, {
		description: "other task's events are ignored",
		builder: streambuilder.NewBuilder().
			WithWaking(10, 0, 100, 6).
			WithSwitch(25, 0, 100, 1, 6),
		pid:  5,
		want: nil,
	}, {
		description: "zero pid yields nothing",
		builder: streambuilder.NewBuilder().
			WithWaking(10, 0, 100, 0).
			WithSwitch(25, 0, 100, 1, 0),
		pid:  0,
		want: nil,
	}}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			tr := test.builder.TestTrace(t)
			c := NewStreamContext(tr.Stream, tr.Waking, tr.Switch)
			got := c.Intervals(test.pid)
			if diff := cmp.Diff(test.want, spansOf(got)); diff != "" {
				t.Errorf("unexpected intervals; Diff -want +got %s", diff)
			}
			for _, iv := range got {
				if iv.Open.Timestamp > iv.Close.Timestamp {
					t.Errorf("interval %v opens after it closes", iv)
				}
			}
		})
	}
}

func TestIntervalsSpanTrailingRecords(t *testing.T) {
	// Task 5 is preempted at t=1 but emits trailing printks at t=2 and
	// t=3. Only the next genuine switch-in of task 5 closes the interval.
	tr := streambuilder.NewBuilder().
		WithSwitch(1, 0, 5, 0, 7).
		WithOther(2, 0, 5, "printk").
		WithOther(3, 0, 5, "printk").
		WithSwitch(4, 0, 7, 1, 9).
		WithSwitch(10, 0, 9, 1, 5).
		TestTrace(t)
	c := NewStreamContext(tr.Stream, tr.Waking, tr.Switch)
	got := spansOf(c.Intervals(5))
	want := []span{{Preemption, 1, 10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected intervals; Diff -want +got %s", diff)
	}
}

func TestNormalizeTimestamps(t *testing.T) {
	tr := streambuilder.NewBuilder().
		WithWaking(1000, 0, 100, 5).
		WithSwitch(1025, 0, 100, 1, 5).
		TestTrace(t)
	c := NewStreamContext(tr.Stream, tr.Waking, tr.Switch, NormalizeTimestamps(true))
	if start, end := c.Stream().Interval(); start != 0 || end != 25 {
		t.Errorf("normalized stream spans (%d, %d), want (0, 25)", start, end)
	}
	got := spansOf(c.Intervals(5))
	want := []span{{WakeLatency, 0, 25}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected intervals; Diff -want +got %s", diff)
	}
}

func TestPredicates(t *testing.T) {
	tr := streambuilder.NewBuilder().
		WithWaking(10, 0, 100, 5).
		WithSwitch(20, 0, 5, 0x80, 7).
		WithSwitch(30, 0, 7, 0, 5).
		TestTrace(t)

	if !WakeOpen(tr.Waking, 0, 5) {
		t.Errorf("WakeOpen(waking[0], 5) = false, want true")
	}
	if WakeOpen(tr.Waking, 0, 7) {
		t.Errorf("WakeOpen(waking[0], 7) = true, want false")
	}
	// Entry 0's prev-state has only bits outside the runnable mask set, so
	// the switch-out still counts as a preemption.
	if !PreemptionOpen(tr.Switch, 0, 5) {
		t.Errorf("PreemptionOpen(switch[0], 5) = false, want true")
	}
	if PreemptionOpen(tr.Switch, 0, 7) {
		t.Errorf("PreemptionOpen(switch[0], 7) = true, want false")
	}
	if !PreemptionOpen(tr.Switch, 1, 7) {
		t.Errorf("PreemptionOpen(switch[1], 7) = false, want true")
	}
	// switch[1] switches task 5 in; its record PID is 5 after the first
	// pass.
	if !TaskClose(tr.Switch, 1, 5) {
		t.Errorf("TaskClose(switch[1], 5) = false, want true")
	}
	if TaskClose(tr.Switch, 0, 5) {
		t.Errorf("TaskClose(switch[0], 5) = true, want false")
	}
}
