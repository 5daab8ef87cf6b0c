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
package apiservice

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/latviz/latviz/server/models"
	"github.com/latviz/latviz/server/storageservice"
)

const testDump = `[
	{"ts": 100, "cpu": 0, "pid": 100, "event": "sched_waking", "waking_pid": 5},
	{"ts": 150, "cpu": 0, "pid": 100, "event": "sched_switch", "prev_pid": 100, "prev_state": 1, "next_pid": 5},
	{"ts": 300, "cpu": 0, "pid": 5, "event": "sched_switch", "prev_pid": 5, "prev_state": 0, "next_pid": 7},
	{"ts": 600, "cpu": 0, "pid": 7, "event": "sched_switch", "prev_pid": 7, "prev_state": 1, "next_pid": 5}
]`

func testService(t *testing.T) (*APIService, string) {
	t.Helper()
	fs, err := storageservice.CreateFSStorage(t.TempDir(), 4)
	if err != nil {
		t.Fatalf("CreateFSStorage yielded unexpected error %v", err)
	}
	name, err := fs.UploadFile(context.Background(), strings.NewReader(testDump))
	if err != nil {
		t.Fatalf("UploadFile yielded unexpected error %v", err)
	}
	return &APIService{StorageService: fs}, name
}

func TestGetLatencyIntervals(t *testing.T) {
	as, name := testService(t)
	res, err := as.GetLatencyIntervals(context.Background(), &models.LatencyIntervalsRequest{
		CollectionName: name,
		Pids:           []int64{5, 7, 12345},
	})
	if err != nil {
		t.Fatalf("GetLatencyIntervals yielded unexpected error %v", err)
	}
	want := &models.LatencyIntervalsResponse{
		CollectionName: name,
		PIDIntervals: []models.PIDLatencyIntervals{{
			PID: 5,
			Intervals: []models.LatencyInterval{{
				Kind:             "wake-latency",
				StartTimestampNs: 100,
				EndTimestampNs:   150,
				DurationNs:       50,
				OpenIndex:        0,
				CloseIndex:       1,
			}, {
				Kind:             "preemption",
				StartTimestampNs: 300,
				EndTimestampNs:   600,
				DurationNs:       300,
				OpenIndex:        2,
				CloseIndex:       3,
			}},
		}, {
			PID:       7,
			Intervals: []models.LatencyInterval{},
		}, {
			PID:       12345,
			Intervals: []models.LatencyInterval{},
		}},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("unexpected response; Diff -want +got %s", diff)
	}
}

func TestGetLatencyIntervalsRequiresCollectionName(t *testing.T) {
	as, _ := testService(t)
	_, err := as.GetLatencyIntervals(context.Background(), &models.LatencyIntervalsRequest{
		Pids: []int64{5},
	})
	if err == nil {
		t.Fatalf("GetLatencyIntervals succeeded without a collection name")
	}
	if got := status.Code(err); got != codes.InvalidArgument {
		t.Errorf("GetLatencyIntervals yielded code %v, want %v", got, codes.InvalidArgument)
	}
}

func TestGetCollectionMetadata(t *testing.T) {
	as, name := testService(t)
	md, err := as.GetCollectionMetadata(context.Background(), name)
	if err != nil {
		t.Fatalf("GetCollectionMetadata yielded unexpected error %v", err)
	}
	if md.CollectionName != name || md.EventCount != 4 ||
		md.StartTimestampNs != 100 || md.EndTimestampNs != 600 {
		t.Errorf("unexpected metadata %+v", md)
	}
	if _, err := as.GetCollectionMetadata(context.Background(), ""); status.Code(err) != codes.InvalidArgument {
		t.Errorf("GetCollectionMetadata(\"\") yielded %v, want %v", err, codes.InvalidArgument)
	}
	if _, err := as.GetCollectionMetadata(context.Background(), "missing"); status.Code(err) != codes.NotFound {
		t.Errorf("GetCollectionMetadata of a missing collection yielded %v, want %v", err, codes.NotFound)
	}
}

func TestListCollections(t *testing.T) {
	as, name := testService(t)
	mds, err := as.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections yielded unexpected error %v", err)
	}
	if len(mds) != 1 || mds[0].CollectionName != name {
		t.Errorf("ListCollections returned %v, want the one uploaded collection", mds)
	}
}
