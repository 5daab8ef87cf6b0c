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
// Package traceload turns raw tracer output into the in-memory form latency
// analysis consumes: a timestamp-ordered record stream plus the waking and
// switch field containers.  Loading performs the first attribution pass,
// rewriting each sched_switch record's PID from the outgoing to the
// incoming task so that a task's graph ends at the switch record itself;
// the pre-edit attribution is preserved in the switch container's field.
package traceload

import (
	"sort"

	"github.com/latviz/latviz/tracedata/trace"
)

// Event names traceload recognizes as container kinds.
const (
	SwitchEventName = "sched_switch"
	WakingEventName = "sched_waking"
)

// Event is one raw parsed trace event, before loading.
type Event struct {
	Timestamp trace.Timestamp
	CPU       int64
	// PID is the task the tracer attributed the event to.
	PID  trace.PID
	Name string
	// Switch events only.
	PrevPID   trace.PID
	PrevState int64
	NextPID   trace.PID
	// Waking events only.
	WakingPID trace.PID
}

// Trace is a loaded stream and its field containers, ready for analysis.
type Trace struct {
	Stream *trace.Stream
	Waking *trace.FieldContainer
	Switch *trace.FieldContainer
}

// Assemble orders the provided events by timestamp and loads them into a
// Trace, applying the first attribution pass to switch records.  The input
// slice is not modified.
func Assemble(events []Event) (*Trace, error) {
	ordered := make([]Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Timestamp < ordered[b].Timestamp
	})
	t := &Trace{
		Stream: trace.NewStream(),
		Waking: trace.NewFieldContainer(trace.KindWaking),
		Switch: trace.NewFieldContainer(trace.KindSwitch),
	}
	for _, ev := range ordered {
		switch ev.Name {
		case SwitchEventName:
			// First pass: the switch record is attributed to the incoming
			// task; the outgoing task and its prev-state are kept in the
			// container field.
			r, err := t.Stream.Append(ev.Timestamp, ev.CPU, ev.NextPID, trace.KindSwitch)
			if err != nil {
				return nil, err
			}
			t.Switch.Append(r, trace.PackSwitchField(ev.PrevPID, ev.PrevState))
		case WakingEventName:
			r, err := t.Stream.Append(ev.Timestamp, ev.CPU, ev.PID, trace.KindWaking)
			if err != nil {
				return nil, err
			}
			t.Waking.Append(r, int64(ev.WakingPID))
		default:
			if _, err := t.Stream.Append(ev.Timestamp, ev.CPU, ev.PID, trace.KindOther); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Load parses a JSON trace dump and assembles it.
func Load(data []byte) (*Trace, error) {
	events, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Assemble(events)
}
