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

// Ideally a sched_switch record would be the last record the outgoing task
// emits.  The loader's first pass rewrites each switch record's PID to the
// incoming task so that a task's graph ends at the switch itself, but in
// reality a switch may be followed by trailing records (printk, for example)
// emitted microseconds later under the outgoing task's now-stale
// attribution, which extends the task's graph past its actual end.
//
// secondPass repairs this.  For every switch container entry it locates the
// contiguous run of trailing records still carrying the outgoing task's PID
// and reattributes the run's last record to the switch record's corrected
// PID.  Only the last record moves: the drawn boundary of the outgoing task
// is determined by where the stale run ends, and the intermediate trailing
// records intentionally keep the stale PID.
func (c *StreamContext) secondPass() {
	ss := c.switches
	for i := 0; i < ss.Len(); i++ {
		e := ss.At(i)
		pidRec := trace.SwitchFieldPID(e.Field)
		sw := e.Record
		next := c.stream.Next(sw)
		// Nothing to repair when the switch ends the stream, carries no
		// task, is immediately followed by another switch, or the following
		// record is not stale.
		if next == nil || sw.PID == trace.NoPID ||
			next.Kind == sw.Kind || next.PID != pidRec {
			continue
		}
		// Find the very last record in the stale run.
		r := sw
		for next != nil && next.PID == pidRec {
			r, next = next, c.stream.Next(next)
		}
		// A run terminated by a record whose untouched bit is already
		// cleared was repaired by an earlier pass; leave it alone.
		if next != nil && next.Visible&trace.FlagUntouched == 0 {
			continue
		}
		r.PID = sw.PID
		r.Visible &^= trace.FlagUntouched
	}
}
