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
// Package models holds the JSON request and response types of the latviz
// HTTP API.
package models

// Metadata describes one stored trace collection.
type Metadata struct {
	// CollectionName is the unique, server-assigned collection name.
	CollectionName string `json:"collectionName"`
	// CreationTime is the upload time in nanoseconds since the epoch.
	CreationTime int64 `json:"creationTime"`
	// EventCount is the number of records in the collection's stream.
	EventCount int `json:"eventCount"`
	// StartTimestampNs and EndTimestampNs bound the stream.
	StartTimestampNs int64 `json:"startTimestampNs"`
	EndTimestampNs   int64 `json:"endTimestampNs"`
}

// LatencyIntervalsRequest is a request for a collection's wake-latency and
// preemption intervals for a set of PIDs.
type LatencyIntervalsRequest struct {
	CollectionName string `json:"collectionName"`
	// The PIDs to request intervals for.
	Pids []int64 `json:"pids"`
}

// LatencyInterval is one derived interval.
type LatencyInterval struct {
	// Kind is "wake-latency" or "preemption".
	Kind             string `json:"kind"`
	StartTimestampNs int64  `json:"startTimestampNs"`
	EndTimestampNs   int64  `json:"endTimestampNs"`
	DurationNs       int64  `json:"durationNs"`
	// OpenIndex and CloseIndex identify the interval's defining records
	// within the collection's stream.
	OpenIndex  int `json:"openIndex"`
	CloseIndex int `json:"closeIndex"`
}

// PIDLatencyIntervals is a tuple holding a PID and its derived intervals.
type PIDLatencyIntervals struct {
	PID       int64             `json:"pid"`
	Intervals []LatencyInterval `json:"intervals"`
}

// LatencyIntervalsResponse is a response for a latency intervals request.
type LatencyIntervalsResponse struct {
	CollectionName string                `json:"collectionName"`
	PIDIntervals   []PIDLatencyIntervals `json:"pidIntervals"`
}

// CreateCollectionResponse returns the name assigned to an uploaded trace.
type CreateCollectionResponse struct {
	CollectionName string `json:"collectionName"`
}
