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

// A switch container entry's field packs the two attributes the tracer
// recorded before any attribution editing: the outgoing task's PID in the
// low 32 bits, and the outgoing task's prev-state bitmask above them.
const (
	switchPIDBits = 32
	switchPIDMask = int64(1)<<switchPIDBits - 1
)

// RunnableStateMask selects the prev-state bits that distinguish a blocked
// task from a runnable one: a task whose prev-state has none of these bits
// set was still runnable at switch-out, i.e. was preempted.
const RunnableStateMask int64 = 0x7f

// PackSwitchField packs an outgoing PID and prev-state bitmask into a
// switch container field value.
func PackSwitchField(prevPID PID, prevState int64) int64 {
	return prevState<<switchPIDBits | int64(prevPID)&switchPIDMask
}

// SwitchFieldPID returns the outgoing PID recorded in a switch field.
func SwitchFieldPID(field int64) PID {
	return PID(field & switchPIDMask)
}

// SwitchFieldPrevState returns the prev-state bitmask recorded in a switch
// field.
func SwitchFieldPrevState(field int64) int64 {
	return field >> switchPIDBits
}
