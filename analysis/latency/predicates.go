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

// WakeOpen opens a wake-latency interval: the waking entry's field is the
// woken task's PID.
func WakeOpen(c *trace.FieldContainer, i int, pid trace.PID) bool {
	return trace.PID(c.At(i).Field) == pid
}

// PreemptionOpen opens a preemption interval: the switch entry's recorded
// outgoing task is pid, and its prev-state bitmask shows the task was still
// runnable at switch-out, i.e. genuinely preempted rather than blocked.
func PreemptionOpen(c *trace.FieldContainer, i int, pid trace.PID) bool {
	f := c.At(i).Field
	return trace.SwitchFieldPrevState(f)&trace.RunnableStateMask == 0 &&
		trace.SwitchFieldPID(f) == pid
}

// TaskClose closes either interval kind: the entry's record carries the
// task's (corrected) attribution, which for a switch record means the task
// is switching in.
func TaskClose(c *trace.FieldContainer, i int, pid trace.PID) bool {
	return c.At(i).Record.PID == pid
}
