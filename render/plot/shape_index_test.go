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
	"math"
	"testing"
)

// boxAt returns an outline rectangle with the provided inclusive bounds.
func boxAt(left, top, right, bottom int) *testRect {
	r := &testRect{}
	r.SetPoint(0, left, top)
	r.SetPoint(1, left, bottom)
	r.SetPoint(2, right, bottom)
	r.SetPoint(3, right, top)
	return r
}

// testRect gives Rectangle the axis-aligned containment semantics the
// latency boxes use, so the index can be exercised without importing them.
type testRect struct {
	Rectangle
	clicks int
}

func (r *testRect) Distance(x, y int) float64 {
	if x < r.PointX(0) || x > r.PointX(2) || y < r.PointY(0) || y > r.PointY(1) {
		return math.MaxFloat64
	}
	return 0
}

func (r *testRect) DoubleClick(ui *UIContext) {
	r.clicks++
}

func TestShapeIndexAt(t *testing.T) {
	a := boxAt(0, 10, 50, 20)
	b := boxAt(40, 10, 90, 20)
	c := boxAt(200, 10, 250, 20)
	si := NewShapeIndex()
	si.Add(a)
	si.Add(b)
	si.Add(c)

	tests := []struct {
		description string
		x, y        int
		want        []*testRect
	}{{
		description: "click inside one shape",
		x:           20,
		y:           15,
		want:        []*testRect{a},
	}, {
		description: "click where two shapes overlap",
		x:           45,
		y:           15,
		want:        []*testRect{a, b},
	}, {
		description: "click within a shape's x span but outside it vertically",
		x:           220,
		y:           5,
		want:        nil,
	}, {
		description: "click in empty space",
		x:           150,
		y:           15,
		want:        nil,
	}}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			got := si.At(test.x, test.y)
			if len(got) != len(test.want) {
				t.Fatalf("At(%d, %d) returned %d shapes, want %d", test.x, test.y, len(got), len(test.want))
			}
			for _, w := range test.want {
				found := false
				for _, g := range got {
					if g == PlotObject(w) {
						found = true
					}
				}
				if !found {
					t.Errorf("At(%d, %d) is missing shape spanning [%d, %d]", test.x, test.y, w.PointX(0), w.PointX(2))
				}
			}
		})
	}
}

func TestPlotArgsIndexesBoundedShapes(t *testing.T) {
	a := NewPlotArgs(NewGraph(0, 100, Point{}, 50, 10, 10))
	r := boxAt(10, 0, 30, 50)
	a.Append(r)
	if got := len(a.Shapes()); got != 1 {
		t.Fatalf("Shapes() has %d entries, want 1", got)
	}
	hits := a.ObjectsAt(20, 25)
	if len(hits) != 1 || hits[0] != PlotObject(r) {
		t.Fatalf("ObjectsAt(20, 25) = %v, want the appended shape", hits)
	}
	hits[0].DoubleClick(NewUIContext())
	if r.clicks != 1 {
		t.Errorf("DoubleClick reached the shape %d times, want 1", r.clicks)
	}
}
