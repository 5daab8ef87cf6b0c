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
package plot

import (
	"github.com/latviz/latviz/tracedata/trace"
)

// MarkerState selects one of the host UI's two comparison markers.
type MarkerState int8

const (
	// MarkerA is the "before" marker of a comparison pair.
	MarkerA MarkerState = iota
	// MarkerB is the "after" marker.
	MarkerB
)

func (m MarkerState) String() string {
	if m == MarkerA {
		return "A"
	}
	return "B"
}

// UIContext holds the host UI's record selection state: the two comparison
// markers a double-clicked shape populates.  One UIContext is created at
// startup, handed to the Plotter, and read-only thereafter except through
// MarkRecord; draw requests and clicks are not issued concurrently.
type UIContext struct {
	markA *trace.Record
	markB *trace.Record
}

// NewUIContext returns a UIContext with no marked records.
func NewUIContext() *UIContext {
	return &UIContext{}
}

// MarkRecord sets the provided marker to the provided record.
func (ui *UIContext) MarkRecord(r *trace.Record, m MarkerState) {
	if m == MarkerA {
		ui.markA = r
	} else {
		ui.markB = r
	}
}

// Marked returns the record held by the provided marker, or nil.
func (ui *UIContext) Marked(m MarkerState) *trace.Record {
	if m == MarkerA {
		return ui.markA
	}
	return ui.markB
}
