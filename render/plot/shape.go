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

// PlotObject is a plotted shape the UI can interact with.
type PlotObject interface {
	// Distance returns the distance between a click at (x, y) and the
	// shape, used to decide whether a double-click action applies.
	Distance(x, y int) float64
	// DoubleClick performs the shape's double-click action against the
	// host UI state.
	DoubleClick(ui *UIContext)
}

// BoundedObject is a PlotObject with a known horizontal extent, which makes
// it indexable for click lookup.
type BoundedObject interface {
	PlotObject
	// XSpan returns the shape's inclusive left and right pixel bounds.
	XSpan() (left, right int)
}

// Rectangle is a four-cornered shape.  Its points are indexed from the
// top-left: 0 top-left, 1 bottom-left, 2 bottom-right, 3 top-right.
type Rectangle struct {
	points [4]Point
	// Fill selects filled or outline-only rendering.
	Fill bool
	// Color is the rectangle's plotting color.
	Color Color
	// Size is the outline line size; DefaultSize defers to the renderer.
	Size float64
}

// SetPoint places corner i of the rectangle at (x, y).
func (r *Rectangle) SetPoint(i, x, y int) {
	r.points[i] = Point{X: x, Y: y}
}

// PointX returns the x coordinate of corner i.
func (r *Rectangle) PointX(i int) int {
	return r.points[i].X
}

// PointY returns the y coordinate of corner i.
func (r *Rectangle) PointY(i int) int {
	return r.points[i].Y
}

// XSpan returns the rectangle's inclusive horizontal bounds.
func (r *Rectangle) XSpan() (left, right int) {
	return r.PointX(0), r.PointX(2)
}
