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
package storageservice

import (
	"context"
	"io"
	"os"
	"path"
	"strings"
	"time"

	log "github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/latviz/latviz/analysis/latency"
	"github.com/latviz/latviz/server/models"
	"github.com/latviz/latviz/tracedata/traceload"
)

const dumpSuffix = ".latviz.zst"

// FsStorage is a storage service that saves trace dumps zstd-compressed on
// local disk.  Implements StorageService.
type FsStorage struct {
	*storageBase
	StoragePath string
}

// CreateFSStorage creates a new file system storage service that stores its
// files at storagePath and has an LRU cache of size cacheSize.
func CreateFSStorage(storagePath string, cacheSize int) (*FsStorage, error) {
	sb, err := newStorageBase(cacheSize)
	if err != nil {
		return nil, err
	}
	return &FsStorage{
		storageBase: sb,
		StoragePath: storagePath,
	}, nil
}

func (fs *FsStorage) dumpPath(collectionName string) string {
	return path.Join(fs.StoragePath, collectionName+dumpSuffix)
}

func (fs *FsStorage) collectionNameFromFileName(fileName string) string {
	return strings.TrimSuffix(fileName, dumpSuffix)
}

func (fs *FsStorage) writeDump(collectionName string, data []byte) error {
	f, err := os.Create(fs.dumpPath(collectionName))
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (fs *FsStorage) readDump(collectionName string) ([]byte, error) {
	f, err := os.Open(fs.dumpPath(collectionName))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func (fs *FsStorage) metadataFor(collectionName string, creationTime time.Time, tr *traceload.Trace) models.Metadata {
	start, end := tr.Stream.Interval()
	return models.Metadata{
		CollectionName:   collectionName,
		CreationTime:     creationTime.UnixNano(),
		EventCount:       tr.Stream.Len(),
		StartTimestampNs: int64(start),
		EndTimestampNs:   int64(end),
	}
}

// UploadFile validates the dump by parsing it, stores it compressed under a
// fresh unique name, and returns that name.
func (fs *FsStorage) UploadFile(_ context.Context, dump io.Reader) (string, error) {
	data, err := io.ReadAll(dump)
	if err != nil {
		return "", err
	}
	if _, err := traceload.Load(data); err != nil {
		return "", err
	}
	collectionName := uuid.New().String()
	if err := fs.writeDump(collectionName, data); err != nil {
		return "", err
	}
	log.Infof("stored collection %s (%d bytes raw)", collectionName, len(data))
	return collectionName, nil
}

// GetContext returns an already-saved collection's parsed stream context,
// parsing and caching it on first access.  The returned context has already
// been prepared, so interval queries against it do not mutate shared state
// and may be issued concurrently.
func (fs *FsStorage) GetContext(ctx context.Context, collectionName string) (*CachedContext, error) {
	cachedContext, ok, err := fs.getContextFromCache(collectionName, true /*=addContext*/)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := cachedContext.wait(ctx); err != nil {
			return nil, err
		}
		return cachedContext, cachedContext.err
	}
	defer func() {
		cachedContext.err = err
		cachedContext.release()
	}()
	fi, err := os.Stat(fs.dumpPath(collectionName))
	if err != nil {
		err = status.Errorf(codes.NotFound, "collection %q not found", collectionName)
		return nil, err
	}
	data, err := fs.readDump(collectionName)
	if err != nil {
		return nil, err
	}
	tr, err := traceload.Load(data)
	if err != nil {
		return nil, err
	}
	c := latency.NewStreamContext(tr.Stream, tr.Waking, tr.Switch)
	// Run the attribution correction once, before the context becomes
	// visible to concurrent readers.
	c.Prepare()
	cachedContext.Context = c
	cachedContext.Metadata = fs.metadataFor(collectionName, fi.ModTime(), tr)
	return cachedContext, nil
}

// GetMetadata returns the metadata of the named collection.
func (fs *FsStorage) GetMetadata(ctx context.Context, collectionName string) (models.Metadata, error) {
	cc, err := fs.GetContext(ctx, collectionName)
	if err != nil {
		return models.Metadata{}, err
	}
	return cc.Metadata, nil
}

// ListMetadata returns the metadata of all stored collections.
func (fs *FsStorage) ListMetadata(ctx context.Context) ([]models.Metadata, error) {
	files, err := os.ReadDir(fs.StoragePath)
	if err != nil {
		return nil, err
	}
	// Force initialize as an empty, not nil, slice, so an empty listing
	// serializes to [] rather than null.
	var ret = []models.Metadata{}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), dumpSuffix) {
			continue
		}
		md, err := fs.GetMetadata(ctx, fs.collectionNameFromFileName(file.Name()))
		if err != nil {
			return nil, err
		}
		ret = append(ret, md)
	}
	return ret, nil
}

// DeleteCollection deletes the collection with the given name.
func (fs *FsStorage) DeleteCollection(_ context.Context, collectionName string) error {
	fs.dropContextFromCache(collectionName)
	if err := os.Remove(fs.dumpPath(collectionName)); err != nil {
		if os.IsNotExist(err) {
			return status.Errorf(codes.NotFound, "collection %q not found", collectionName)
		}
		return err
	}
	return nil
}
