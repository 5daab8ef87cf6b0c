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
package latency

import (
	"math"

	"github.com/latviz/latviz/render/plot"
	"github.com/latviz/latviz/tracedata/trace"
)

// LatencyBox is the graphical element visualizing one interval between a
// matched open/close record pair: an outline-only rectangle spanning the
// two records' bins and the top 30% of the task graph's row.  The variant
// (wake latency or preemption) is carried as a tag and encoded on screen by
// color alone.
type LatencyBox struct {
	plot.Rectangle
	// Kind tags the interval variant this box visualizes.
	Kind IntervalKind
	// Data holds the interval's defining records: Data[0] the open side,
	// Data[1] the close side.
	Data [2]*trace.Record
}

// NewLatencyBox constructs the box for a matched pair.  bins holds the
// open- and close-side screen bins as supplied by the matcher; they are
// mapped to the rectangle directly, without re-sorting, on the upstream
// guarantee that matches are chronological.
func NewLatencyBox(kind IntervalKind, g *plot.Graph, bins [2]int, recs [2]*trace.Record, col plot.Color, size float64) *LatencyBox {
	b := &LatencyBox{
		Kind: kind,
		Data: recs,
	}
	p0 := g.BinBase(bins[0])
	p1 := g.BinBase(bins[1])
	height := g.Height() * 3 / 10

	b.Fill = false
	b.SetPoint(0, p0.X-1, p0.Y-height)
	b.SetPoint(1, p0.X-1, p0.Y-1)

	b.SetPoint(3, p1.X-1, p1.Y-height)
	b.SetPoint(2, p1.X-1, p1.Y-1)

	b.Size = size
	b.Color = col

	return b
}

// Distance returns zero if the click at (x, y) is inside the box, bounds
// inclusive, and the maximal distance otherwise: the box has no graded
// proximity.
func (b *LatencyBox) Distance(x, y int) float64 {
	if x < b.PointX(0) || x > b.PointX(2) {
		return math.MaxFloat64
	}
	if y < b.PointY(0) || y > b.PointY(1) {
		return math.MaxFloat64
	}
	return 0
}

// DoubleClick marks the box's close-side record as comparison marker B and
// its open-side record as marker A, in that order, enabling a paired
// before/after inspection in the host UI.
func (b *LatencyBox) DoubleClick(ui *plot.UIContext) {
	ui.MarkRecord(b.Data[1], plot.MarkerB)
	ui.MarkRecord(b.Data[0], plot.MarkerA)
}
