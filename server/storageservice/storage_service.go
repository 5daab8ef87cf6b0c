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
// Package storageservice stores uploaded trace dumps and serves parsed,
// analysis-ready stream contexts from an LRU cache.
package storageservice

import (
	"context"
	"io"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/latviz/latviz/analysis/latency"
	"github.com/latviz/latviz/server/models"
)

// CachedContext is a parsed stream context and its metadata, as stored in
// the LRU cache.
type CachedContext struct {
	Context  *latency.StreamContext
	Metadata models.Metadata
	// ready blocks until the context is ready to be read.
	ready chan struct{}
	// Any error encountered while creating the context.
	err error
}

func newCachedContext() *CachedContext {
	return &CachedContext{
		ready: make(chan struct{}),
	}
}

// wait blocks until release() has been called on the receiver.  At that
// point, the receiver should no longer be modified.  Returns the
// CachedContext's error, if returning because release was called, or the
// context's error, if the context was cancelled.
func (cc *CachedContext) wait(ctx context.Context) error {
	select {
	case <-cc.ready:
		return cc.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release unblocks any outstanding or future wait calls on the receiver.
// It should only be called when the receiver is fully populated and will no
// longer be modified.
func (cc *CachedContext) release() {
	close(cc.ready)
}

type storageBase struct {
	lruCache *simplelru.LRU
	mu       sync.Mutex
}

func newStorageBase(cacheSize int) (*storageBase, error) {
	lru, err := simplelru.NewLRU(cacheSize, nil)
	if err != nil {
		return nil, err
	}
	return &storageBase{
		lruCache: lru,
	}, nil
}

func (sb *storageBase) dropContextFromCache(collectionName string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.lruCache.Remove(collectionName)
}

// getContextFromCache returns the named context, if it is stored in the
// cache.  It also returns a bool signifying whether the context was in the
// cache at the start of the call.
// If addContext is true, a new, empty, CachedContext will be placed in the
// cache under the provided name.  Note that if this occurs, the returned
// bool will still be false, though the returned CachedContext will be in
// the cache.  release() should be called on the returned CachedContext when
// it will no longer be modified.
func (sb *storageBase) getContextFromCache(collectionName string, addContext bool) (*CachedContext, bool, error) {
	sb.mu.Lock()
	cachedValue, ok := sb.lruCache.Get(collectionName)
	if !ok && addContext {
		defer sb.mu.Unlock()
		cachedContext := newCachedContext()
		sb.lruCache.Add(collectionName, cachedContext)
		return cachedContext, false, nil
	}
	sb.mu.Unlock()
	var cachedContext *CachedContext
	if ok {
		cachedContext, ok = cachedValue.(*CachedContext)
		if !ok {
			return nil, false, status.Error(codes.Internal, "unknown type stored in context cache")
		}
	}
	return cachedContext, ok, nil
}

// StorageService is an interface containing the APIs that storage services
// expose.
type StorageService interface {
	// UploadFile validates and stores a raw trace dump, returning the
	// unique collection name assigned to it.
	UploadFile(ctx context.Context, dump io.Reader) (string, error)
	// GetContext returns the specified collection's parsed stream context,
	// or any error encountered procuring it.  If the context exists in the
	// cache, the cached version is returned; otherwise it is parsed,
	// prepared for interval queries, and added to the cache first.
	GetContext(ctx context.Context, collectionName string) (*CachedContext, error)
	// GetMetadata returns the metadata of the named collection.
	GetMetadata(ctx context.Context, collectionName string) (models.Metadata, error)
	// ListMetadata returns the metadata of all stored collections.
	ListMetadata(ctx context.Context) ([]models.Metadata, error)
	// DeleteCollection removes the named collection's dump and evicts its
	// cached context.
	DeleteCollection(ctx context.Context, collectionName string) error
}
