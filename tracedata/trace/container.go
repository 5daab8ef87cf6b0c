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
package trace

// FieldEntry pairs a non-owning record reference with one pre-extracted
// integer attribute whose meaning depends on the container's event kind:
// for KindSwitch, the packed outgoing PID and prev-state bitmask (see
// PackSwitchField); for KindWaking, the woken PID.
type FieldEntry struct {
	Record *Record
	Field  int64
}

// FieldContainer is an ordered collection of FieldEntries of a single event
// kind, populated during loading in stream order.
type FieldContainer struct {
	kind    EventKind
	entries []FieldEntry
}

// NewFieldContainer returns a new, empty FieldContainer for the provided
// event kind.
func NewFieldContainer(kind EventKind) *FieldContainer {
	return &FieldContainer{kind: kind}
}

// Kind returns the event kind this container collects.
func (c *FieldContainer) Kind() EventKind {
	return c.kind
}

// Append adds an entry pairing the provided record and field value.
func (c *FieldContainer) Append(r *Record, field int64) {
	c.entries = append(c.entries, FieldEntry{Record: r, Field: field})
}

// Len returns the number of entries in the container.
func (c *FieldContainer) Len() int {
	return len(c.entries)
}

// At returns the entry at the provided index.  The index must be in
// [0, Len()).
func (c *FieldContainer) At(i int) FieldEntry {
	return c.entries[i]
}
