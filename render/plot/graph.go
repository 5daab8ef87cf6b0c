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
	"github.com/latviz/latviz/tracedata/trace"
)

// Graph is one task's row in the rendered view: a horizontal sequence of
// time bins over a fixed timestamp range, anchored at a baseline point.
type Graph struct {
	startTimestamp trace.Timestamp
	endTimestamp   trace.Timestamp
	// base is the baseline point of bin 0: the row's left end, at the
	// bottom of the row.
	base Point
	// height is the row height in pixels.
	height int
	// binCount and binWidth fix the horizontal discretization.
	binCount int
	binWidth int
}

// NewGraph returns a Graph covering [startTimestamp, endTimestamp] with the
// provided baseline, row height, and bin discretization.  binCount and
// binWidth must be positive, and endTimestamp must not precede
// startTimestamp.
func NewGraph(startTimestamp, endTimestamp trace.Timestamp, base Point, height, binCount, binWidth int) *Graph {
	if binCount < 1 {
		binCount = 1
	}
	if binWidth < 1 {
		binWidth = 1
	}
	if endTimestamp < startTimestamp {
		endTimestamp = startTimestamp
	}
	return &Graph{
		startTimestamp: startTimestamp,
		endTimestamp:   endTimestamp,
		base:           base,
		height:         height,
		binCount:       binCount,
		binWidth:       binWidth,
	}
}

// Height returns the row height in pixels.
func (g *Graph) Height() int {
	return g.height
}

// BinCount returns the number of bins in the graph.
func (g *Graph) BinCount() int {
	return g.binCount
}

// BinBase returns the baseline point of the provided bin.  Out-of-range
// bins are clamped to the graph's ends.
func (g *Graph) BinBase(bin int) Point {
	if bin < 0 {
		bin = 0
	}
	if bin >= g.binCount {
		bin = g.binCount - 1
	}
	return Point{X: g.base.X + bin*g.binWidth, Y: g.base.Y}
}

// BinOf returns the bin containing the provided timestamp.  Timestamps
// outside the graph's range are clamped to the first or last bin.
func (g *Graph) BinOf(ts trace.Timestamp) int {
	if ts <= g.startTimestamp {
		return 0
	}
	if ts >= g.endTimestamp {
		return g.binCount - 1
	}
	span := int64(g.endTimestamp - g.startTimestamp)
	bin := int(int64(ts-g.startTimestamp) * int64(g.binCount) / span)
	if bin >= g.binCount {
		bin = g.binCount - 1
	}
	return bin
}
