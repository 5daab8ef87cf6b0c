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
// Package trace models a loaded, time-ordered kernel scheduling trace as an
// append-only arena of records, plus per-event-kind field containers pairing
// records with one pre-extracted attribute each.  The arena replaces raw
// next-pointer chasing: "the next record" is index+1, bounds-checked.
//
// Streams are single-writer: the loader populates them, and analysis passes
// may subsequently mutate only a record's PID and its untouched flag.
// Callers must not issue concurrent mutating passes over one Stream.
package trace

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Timestamp describes a trace record timestamp, in nanoseconds under the
// usual trace clocks.  Stream order is nondecreasing Timestamp order.
type Timestamp int64

// UnknownTimestamp represents an unspecified record timestamp.
const UnknownTimestamp Timestamp = -1

// PID specifies a kernel thread ID.  PID 0 is the idle thread, and means
// "no task" wherever a task attribution is expected.
type PID int64

// NoPID is the zero task attribution.
const NoPID PID = 0

func (p PID) String() string {
	return fmt.Sprintf("PID %d", int64(p))
}

// EventKind identifies the field container, if any, a record belongs to.
type EventKind int8

const (
	// KindOther covers records of no special interest to latency analysis,
	// such as printk events trailing a context switch.
	KindOther EventKind = iota
	// KindSwitch marks sched_switch records.
	KindSwitch
	// KindWaking marks sched_waking records.
	KindWaking
)

func (k EventKind) String() string {
	switch k {
	case KindSwitch:
		return "sched_switch"
	case KindWaking:
		return "sched_waking"
	default:
		return "other"
	}
}

// Record visibility flags.
const (
	// FlagUntouched is set on every freshly loaded record, and cleared by
	// analysis passes that rewrite the record's task attribution.  A record
	// without it has already been fixed and must not be reprocessed.
	FlagUntouched uint8 = 1 << iota
)

// Record is a single trace record.  The loader owns Record lifetime through
// the Stream arena; analysis holds non-owning references and may mutate only
// PID and the FlagUntouched bit of Visible.
type Record struct {
	// Index is the record's position in its Stream, fixed at append time.
	Index int
	// Timestamp orders the stream.  Mutated only by whole-stream timestamp
	// normalization, which preserves the order.
	Timestamp Timestamp
	// CPU that logged the record.
	CPU int64
	// PID is the record's task attribution.  Mutable: the loader's first
	// pass rewrites switch records to their incoming task, and the second
	// pass repairs trailing records.
	PID PID
	// Kind identifies the record's event kind.
	Kind EventKind
	// Visible holds the record's visibility flag bits.
	Visible uint8
}

func (r *Record) String() string {
	return fmt.Sprintf("%-18d (CPU %d) %s %s", r.Timestamp, r.CPU, r.Kind, r.PID)
}

// Stream is an append-only, timestamp-ordered record arena.
type Stream struct {
	records []*Record
}

// NewStream returns a new, empty Stream.
func NewStream() *Stream {
	return &Stream{}
}

// Append adds a record with the provided fields to the end of the stream,
// returning it.  Records must be appended in nondecreasing timestamp order.
func (s *Stream) Append(timestamp Timestamp, cpu int64, pid PID, kind EventKind) (*Record, error) {
	if last := s.Record(len(s.records) - 1); last != nil && last.Timestamp > timestamp {
		return nil, status.Errorf(codes.InvalidArgument,
			"out-of-order append at %d; stream is at %d", timestamp, last.Timestamp)
	}
	r := &Record{
		Index:     len(s.records),
		Timestamp: timestamp,
		CPU:       cpu,
		PID:       pid,
		Kind:      kind,
		Visible:   FlagUntouched,
	}
	s.records = append(s.records, r)
	return r, nil
}

// Len returns the number of records in the stream.
func (s *Stream) Len() int {
	return len(s.records)
}

// Record returns the record at the provided index, or nil if there is no
// such record.
func (s *Stream) Record(index int) *Record {
	if index < 0 || index >= len(s.records) {
		return nil
	}
	return s.records[index]
}

// Next returns the record chronologically following r, or nil if r is the
// last record in the stream.
func (s *Stream) Next(r *Record) *Record {
	if r == nil {
		return nil
	}
	return s.Record(r.Index + 1)
}

// Interval returns the first and last timestamps of the stream's records,
// or UnknownTimestamp for both if the stream is empty.
func (s *Stream) Interval() (startTimestamp, endTimestamp Timestamp) {
	if len(s.records) == 0 {
		return UnknownTimestamp, UnknownTimestamp
	}
	return s.records[0].Timestamp, s.records[len(s.records)-1].Timestamp
}
