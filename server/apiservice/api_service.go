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
// Package apiservice wraps the latency analysis library for the HTTP API.
package apiservice

import (
	"context"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/latviz/latviz/analysis/latency"
	"github.com/latviz/latviz/server/models"
	"github.com/latviz/latviz/server/storageservice"
	"github.com/latviz/latviz/tracedata/trace"
)

// APIService contains wrappers around the analysis library.
type APIService struct {
	StorageService storageservice.StorageService
}

func missingFieldError(field string) error {
	return status.Errorf(codes.InvalidArgument, "missing required field %q", field)
}

func (as *APIService) fetchContext(ctx context.Context, collectionName string) (*storageservice.CachedContext, error) {
	if len(collectionName) == 0 {
		return nil, missingFieldError("collectionName")
	}
	return as.StorageService.GetContext(ctx, collectionName)
}

func convertInterval(iv latency.Interval) models.LatencyInterval {
	return models.LatencyInterval{
		Kind:             iv.Kind.String(),
		StartTimestampNs: int64(iv.Open.Timestamp),
		EndTimestampNs:   int64(iv.Close.Timestamp),
		DurationNs:       int64(iv.Duration()),
		OpenIndex:        iv.Open.Index,
		CloseIndex:       iv.Close.Index,
	}
}

// GetLatencyIntervals returns wake-latency and preemption intervals for the
// specified collection and PIDs.  The per-PID queries are independent and
// read-only (the stored context is already prepared), so they are fanned
// out across goroutines.
func (as *APIService) GetLatencyIntervals(ctx context.Context, req *models.LatencyIntervalsRequest) (*models.LatencyIntervalsResponse, error) {
	c, err := as.fetchContext(ctx, req.CollectionName)
	if err != nil {
		return nil, err
	}
	res := &models.LatencyIntervalsResponse{
		CollectionName: req.CollectionName,
		PIDIntervals:   make([]models.PIDLatencyIntervals, len(req.Pids)),
	}

	var g errgroup.Group
	for i, pid := range req.Pids {
		i, pid := i, pid
		g.Go(func() error {
			// Force initialize as an empty, not nil, slice for JSON.
			intervals := []models.LatencyInterval{}
			for _, iv := range c.Context.Intervals(trace.PID(pid)) {
				intervals = append(intervals, convertInterval(iv))
			}
			res.PIDIntervals[i] = models.PIDLatencyIntervals{
				PID:       pid,
				Intervals: intervals,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// GetCollectionMetadata returns the metadata of the named collection.
func (as *APIService) GetCollectionMetadata(ctx context.Context, collectionName string) (models.Metadata, error) {
	if len(collectionName) == 0 {
		return models.Metadata{}, missingFieldError("collectionName")
	}
	return as.StorageService.GetMetadata(ctx, collectionName)
}

// ListCollections returns the metadata of all stored collections.
func (as *APIService) ListCollections(ctx context.Context) ([]models.Metadata, error) {
	return as.StorageService.ListMetadata(ctx)
}
