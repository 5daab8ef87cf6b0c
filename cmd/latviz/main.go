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
// Package main contains the latviz HTTP server: upload kernel trace dumps,
// then query per-task wake-latency and preemption intervals.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"

	log "github.com/golang/glog"
	"github.com/gorilla/mux"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/latviz/latviz/server/apiservice"
	"github.com/latviz/latviz/server/models"
	"github.com/latviz/latviz/server/storageservice"
)

var (
	port        = flag.Int("port", 7402, "The latviz HTTP port.")
	storagePath = flag.String("storage_path", "", "The folder where trace dumps are/will be stored.")
	cacheSize   = flag.Int("cache_size", 25, "The maximum number of parsed collections to keep open at once.")
)

// httpCode maps a service error to an HTTP status code.
func httpCode(err error) int {
	switch status.Code(err) {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

type server struct {
	api *apiservice.APIService
}

func (s *server) handleUpload(w http.ResponseWriter, req *http.Request) {
	// Dumps are bounded by the tracer's buffer; 100 MB is generous.
	req.Body = http.MaxBytesReader(w, req.Body, 100<<20)
	name, err := s.api.StorageService.UploadFile(req.Context(), req.Body)
	if err != nil {
		http.Error(w, "Failed to store collection: "+err.Error(), httpCode(err))
		return
	}
	writeJSON(w, models.CreateCollectionResponse{CollectionName: name})
}

func (s *server) handleListCollections(w http.ResponseWriter, req *http.Request) {
	mds, err := s.api.ListCollections(req.Context())
	if err != nil {
		http.Error(w, "Failed to list collections: "+err.Error(), httpCode(err))
		return
	}
	writeJSON(w, mds)
}

func (s *server) handleGetMetadata(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	md, err := s.api.GetCollectionMetadata(req.Context(), name)
	if err != nil {
		http.Error(w, "Failed to fetch collection metadata: "+err.Error(), httpCode(err))
		return
	}
	writeJSON(w, md)
}

func (s *server) handleDeleteCollection(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	if err := s.api.StorageService.DeleteCollection(req.Context(), name); err != nil {
		http.Error(w, "Failed to delete collection: "+err.Error(), httpCode(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleLatencyIntervals(w http.ResponseWriter, req *http.Request) {
	var r models.LatencyIntervalsRequest
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		http.Error(w, "Malformed request: "+err.Error(), http.StatusBadRequest)
		return
	}
	res, err := s.api.GetLatencyIntervals(req.Context(), &r)
	if err != nil {
		http.Error(w, "Failed to compute latency intervals: "+err.Error(), httpCode(err))
		return
	}
	writeJSON(w, res)
}

func main() {
	flag.Parse()

	storageService, err := storageservice.CreateFSStorage(*storagePath, *cacheSize)
	if err != nil {
		log.Exitf("Failed to create storage service: %s", err)
	}
	s := &server{
		api: &apiservice.APIService{StorageService: storageService},
	}

	r := mux.NewRouter()
	r.HandleFunc("/collections", s.handleUpload).Methods("POST")
	r.HandleFunc("/collections", s.handleListCollections).Methods("GET")
	r.HandleFunc("/collections/{name}", s.handleGetMetadata).Methods("GET")
	r.HandleFunc("/collections/{name}", s.handleDeleteCollection).Methods("DELETE")
	r.HandleFunc("/latency_intervals", s.handleLatencyIntervals).Methods("POST")

	log.Infof("latviz listening on port %d", *port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), r); err != nil {
		log.Exitf("Server failed: %s", err)
	}
}
