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
// Package plot provides the rendering primitives latency analysis draws
// with: screen points and colors, per-task graphs with discretized time
// bins, clickable plot objects, the dual-marker UI selection state, and a
// click-lookup index over plotted shapes.
//
// Screen coordinates follow the usual raster convention: x grows rightward,
// y grows downward, and a graph's base point sits on its row baseline.
package plot

import "fmt"

// Point is a screen position in pixels.
type Point struct {
	X int
	Y int
}

// Color is an RGB plotting color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// The colors latency analysis plots with.
var (
	// Green marks wake-up latency intervals.
	Green = Color{G: 255}
	// Red marks preemption intervals.
	Red = Color{R: 255}
)

// DefaultSize is the sentinel line size meaning "use the renderer's
// default".
const DefaultSize float64 = -1
