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
// Package latency derives wake-up latency and preemption intervals for a
// single task from a loaded trace stream.  It correlates asynchronous,
// interleaved records into well-formed, non-overlapping open/close pairs,
// after repairing the task-attribution drift that trailing records inherit
// from a context switch.
//
// All operations on a StreamContext are synchronous and assume
// single-threaded access to the underlying stream while any of them runs;
// once Prepare has returned, interval queries no longer mutate the stream
// and may be issued from multiple goroutines.
package latency

import (
	"github.com/latviz/latviz/tracedata/trace"
)

// StreamContext holds the per-stream state latency analysis needs: the
// record stream, the two field containers populated at load time, and the
// one-shot marker for the second attribution pass.
type StreamContext struct {
	stream   *trace.Stream
	waking   *trace.FieldContainer
	switches *trace.FieldContainer
	// secondPassDone guards the trailing-record correction; the pass runs
	// exactly once per context, lazily, on the first draw or query.
	secondPassDone bool
}

type contextOptions struct {
	normalizeTimestamps bool
}

// An Option configures a StreamContext at creation.
type Option func(o *contextOptions)

// NormalizeTimestamps, if normalize is true, rebases the stream's record
// timestamps to start at 0.  The rebasing happens once, at context
// construction, before any reader can observe the stream.
func NormalizeTimestamps(normalize bool) Option {
	return func(o *contextOptions) {
		o.normalizeTimestamps = normalize
	}
}

// NewStreamContext returns a StreamContext over the provided stream and its
// waking and switch field containers.  Nil containers are treated as empty.
func NewStreamContext(stream *trace.Stream, waking, switches *trace.FieldContainer, options ...Option) *StreamContext {
	o := &contextOptions{}
	for _, option := range options {
		option(o)
	}
	if waking == nil {
		waking = trace.NewFieldContainer(trace.KindWaking)
	}
	if switches == nil {
		switches = trace.NewFieldContainer(trace.KindSwitch)
	}
	if o.normalizeTimestamps {
		if start, _ := stream.Interval(); start > 0 {
			for i := 0; i < stream.Len(); i++ {
				r := stream.Record(i)
				r.Timestamp -= start
			}
		}
	}
	return &StreamContext{
		stream:   stream,
		waking:   waking,
		switches: switches,
	}
}

// Stream returns the context's record stream.
func (c *StreamContext) Stream() *trace.Stream {
	return c.stream
}

// Prepare runs the trailing-record attribution correction if it has not run
// yet.  It is invoked lazily by Intervals and Plotter.Draw; callers that
// intend to fan interval queries out across goroutines should call it once
// beforehand, since the correction mutates shared record state.
func (c *StreamContext) Prepare() {
	if c.secondPassDone {
		return
	}
	c.secondPass()
	c.secondPassDone = true
}
