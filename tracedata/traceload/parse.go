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
package traceload

import (
	"bytes"

	"github.com/valyala/fastjson"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/latviz/latviz/tracedata/trace"
)

var parsers fastjson.ParserPool

// Parse reads a JSON trace dump into raw events.  The dump is either a JSON
// array of event objects or newline-delimited event objects.  Every event
// carries "ts", "cpu", "pid", and "event"; sched_switch events additionally
// carry "prev_pid", "prev_state", and "next_pid", and sched_waking events
// "waking_pid".  Unrecognized event names load as plain records.
func Parse(data []byte) ([]Event, error) {
	p := parsers.Get()
	defer parsers.Put(p)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var events []Event
	if trimmed[0] == '[' {
		v, err := p.ParseBytes(trimmed)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "malformed trace dump: %v", err)
		}
		arr, err := v.Array()
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "malformed trace dump: %v", err)
		}
		for _, val := range arr {
			ev, err := parseEvent(val)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
		return events, nil
	}
	for lineNo, line := range bytes.Split(trimmed, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		v, err := p.ParseBytes(line)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "malformed trace dump line %d: %v", lineNo+1, err)
		}
		ev, err := parseEvent(v)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseEvent(v *fastjson.Value) (Event, error) {
	name := string(v.GetStringBytes("event"))
	if name == "" {
		return Event{}, status.Errorf(codes.InvalidArgument, "trace event lacks an event name")
	}
	ev := Event{
		Timestamp: trace.Timestamp(v.GetInt64("ts")),
		CPU:       v.GetInt64("cpu"),
		PID:       trace.PID(v.GetInt64("pid")),
		Name:      name,
	}
	switch name {
	case SwitchEventName:
		ev.PrevPID = trace.PID(v.GetInt64("prev_pid"))
		ev.PrevState = v.GetInt64("prev_state")
		ev.NextPID = trace.PID(v.GetInt64("next_pid"))
	case WakingEventName:
		ev.WakingPID = trace.PID(v.GetInt64("waking_pid"))
	}
	return ev, nil
}
