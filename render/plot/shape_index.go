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
package plot

import (
	"github.com/Workiva/go-datastructures/augmentedtree"
)

// shapeSpan adapts a BoundedObject's horizontal extent to
// augmentedtree.Interval.
type shapeSpan struct {
	object BoundedObject
	id     uint64
}

// The ID for augmentedtree.Intervals used in queries.  It's not clear from
// augmentedtree's godoc whether query IDs matter, but if they do, best to
// use a reserved one.
const queryID uint64 = 0

// LowAtDimension returns the shape's left bound.  Required to support
// augmentedtree.Interval.
func (ss *shapeSpan) LowAtDimension(d uint64) int64 {
	left, _ := ss.object.XSpan()
	return int64(left)
}

// HighAtDimension returns the shape's right bound.  Required to support
// augmentedtree.Interval.
func (ss *shapeSpan) HighAtDimension(d uint64) int64 {
	_, right := ss.object.XSpan()
	return int64(right)
}

// OverlapsAtDimension returns true if an interval overlaps this interval at
// the specified dimension.  Required to support augmentedtree.Interval.
func (ss *shapeSpan) OverlapsAtDimension(j augmentedtree.Interval, d uint64) bool {
	return ss.HighAtDimension(d) >= j.LowAtDimension(d) &&
		j.HighAtDimension(d) >= ss.LowAtDimension(d)
}

// ID returns the unique identifier for this interval.  Required to support
// augmentedtree.Interval.
func (ss *shapeSpan) ID() uint64 {
	return ss.id
}

// pointSpan is a degenerate interval used to query the tree at one x
// coordinate.
type pointSpan int64

func (ps pointSpan) LowAtDimension(d uint64) int64  { return int64(ps) }
func (ps pointSpan) HighAtDimension(d uint64) int64 { return int64(ps) }
func (ps pointSpan) OverlapsAtDimension(j augmentedtree.Interval, d uint64) bool {
	return ps.HighAtDimension(d) >= j.LowAtDimension(d) &&
		j.HighAtDimension(d) >= ps.LowAtDimension(d)
}
func (ps pointSpan) ID() uint64 { return queryID }

// ShapeIndex indexes plotted shapes by their horizontal extent so a click
// can be resolved without scanning every shape.
type ShapeIndex struct {
	tree   augmentedtree.Tree
	nextID uint64
}

// NewShapeIndex returns a new, empty ShapeIndex.
func NewShapeIndex() *ShapeIndex {
	return &ShapeIndex{
		tree:   augmentedtree.New(1),
		nextID: queryID + 1,
	}
}

// Add indexes the provided shape.
func (si *ShapeIndex) Add(o BoundedObject) {
	si.tree.Add(&shapeSpan{object: o, id: si.nextID})
	si.nextID++
}

// At returns the shapes whose Distance to (x, y) is zero, i.e. the shapes a
// click at that point lands inside.
func (si *ShapeIndex) At(x, y int) []PlotObject {
	var hits []PlotObject
	for _, iv := range si.tree.Query(pointSpan(x)) {
		ss, ok := iv.(*shapeSpan)
		if !ok {
			continue
		}
		if ss.object.Distance(x, y) == 0 {
			hits = append(hits, ss.object)
		}
	}
	return hits
}
