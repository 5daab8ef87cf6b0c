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
// Package streambuilder provides utilities for programmatically assembling
// trace streams.  Construct streams by creating a Builder (NewBuilder),
// chaining With* calls for each event, then calling Build, or in tests,
// TestTrace with the test object.
package streambuilder

import (
	"testing"

	"github.com/latviz/latviz/tracedata/trace"
	"github.com/latviz/latviz/tracedata/traceload"
)

// Builder allows successive programmatic assembly of trace streams.
type Builder struct {
	events []traceload.Event
}

// NewBuilder constructs and returns a new, empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithSwitch adds a sched_switch event to the receiving Builder, returning
// that Builder to facilitate chaining.
func (b *Builder) WithSwitch(ts trace.Timestamp, cpu int64, prevPID trace.PID, prevState int64, nextPID trace.PID) *Builder {
	b.events = append(b.events, traceload.Event{
		Timestamp: ts,
		CPU:       cpu,
		PID:       prevPID,
		Name:      traceload.SwitchEventName,
		PrevPID:   prevPID,
		PrevState: prevState,
		NextPID:   nextPID,
	})
	return b
}

// WithWaking adds a sched_waking event, attributed to the waker, for the
// woken task.
func (b *Builder) WithWaking(ts trace.Timestamp, cpu int64, wakerPID, wakingPID trace.PID) *Builder {
	b.events = append(b.events, traceload.Event{
		Timestamp: ts,
		CPU:       cpu,
		PID:       wakerPID,
		Name:      traceload.WakingEventName,
		WakingPID: wakingPID,
	})
	return b
}

// WithOther adds a record of no special event kind, such as a printk.
func (b *Builder) WithOther(ts trace.Timestamp, cpu int64, pid trace.PID, name string) *Builder {
	b.events = append(b.events, traceload.Event{
		Timestamp: ts,
		CPU:       cpu,
		PID:       pid,
		Name:      name,
	})
	return b
}

// Build assembles the accumulated events into a loaded Trace, applying the
// loader's first attribution pass.
func (b *Builder) Build() (*traceload.Trace, error) {
	return traceload.Assemble(b.events)
}

// TestTrace assembles the accumulated events, failing on the provided
// testing.T if assembly fails.
func (b *Builder) TestTrace(t *testing.T) *traceload.Trace {
	t.Helper()
	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Failed to assemble trace: %s", err)
	}
	return tr
}
