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

// PlotArgs bundles the destination of one draw request: the task graph
// being drawn and the shape set the request populates.  A fresh PlotArgs is
// created for every redraw; shapes are not cached across draw requests.
type PlotArgs struct {
	// Graph is the task row being drawn.
	Graph *Graph

	shapes []PlotObject
	index  *ShapeIndex
}

// NewPlotArgs returns a PlotArgs drawing onto the provided graph.
func NewPlotArgs(g *Graph) *PlotArgs {
	return &PlotArgs{
		Graph: g,
		index: NewShapeIndex(),
	}
}

// Append registers a plotted shape with the draw request, indexing it for
// click lookup if it is bounded.
func (a *PlotArgs) Append(o PlotObject) {
	a.shapes = append(a.shapes, o)
	if bo, ok := o.(BoundedObject); ok {
		a.index.Add(bo)
	}
}

// Shapes returns the shapes registered so far, in registration order.
func (a *PlotArgs) Shapes() []PlotObject {
	return a.shapes
}

// ObjectsAt returns the registered shapes a click at (x, y) lands inside.
func (a *PlotArgs) ObjectsAt(x, y int) []PlotObject {
	return a.index.At(x, y)
}
