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
	log "github.com/golang/glog"

	"github.com/latviz/latviz/render/plot"
	"github.com/latviz/latviz/tracedata/trace"
)

// StreamID identifies one loaded data stream within a Plotter.
type StreamID int

// DrawAction is the bitmask of draw request kinds.
type DrawAction int

const (
	// TaskDraw requests drawing of a single task's graph.  Latency boxes
	// are only plotted for task draws.
	TaskDraw DrawAction = 1 << iota
	// CPUDraw requests drawing of a CPU's graph; latency analysis
	// contributes nothing to it.
	CPUDraw
)

// Plotter is the host-lifecycle entry point for latency plotting.  It is
// created once at startup with the host's UI context and holds the
// registered per-stream analysis contexts.
type Plotter struct {
	ui       *plot.UIContext
	contexts map[StreamID]*StreamContext
}

// NewPlotter returns a Plotter bound to the provided host UI context.
func NewPlotter(ui *plot.UIContext) *Plotter {
	return &Plotter{
		ui:       ui,
		contexts: map[StreamID]*StreamContext{},
	}
}

// UI returns the host UI context double-click actions are delivered to.
func (p *Plotter) UI() *plot.UIContext {
	return p.ui
}

// RegisterStream associates a loaded stream context with a stream ID,
// replacing any previous registration.
func (p *Plotter) RegisterStream(sd StreamID, c *StreamContext) {
	p.contexts[sd] = c
}

// Context returns the stream context registered under sd, or nil.
func (p *Plotter) Context(sd StreamID) *StreamContext {
	return p.contexts[sd]
}

// Draw plots the latency boxes of the provided task onto argv.  It is a
// no-op unless drawAction has the TaskDraw bit set and pid is nonzero; it
// returns without effect if no context is registered under sd.  The first
// draw against a stream runs the trailing-record correction.
func (p *Plotter) Draw(argv *plot.PlotArgs, sd StreamID, pid trace.PID, drawAction DrawAction) {
	if drawAction&TaskDraw == 0 || pid == trace.NoPID {
		return
	}
	c := p.contexts[sd]
	if c == nil {
		log.V(1).Infof("no stream context for stream %d; nothing to draw", sd)
		return
	}
	for _, iv := range c.Intervals(pid) {
		col := plot.Green
		if iv.Kind == Preemption {
			col = plot.Red
		}
		bins := [2]int{argv.Graph.BinOf(iv.Open.Timestamp), argv.Graph.BinOf(iv.Close.Timestamp)}
		recs := [2]*trace.Record{iv.Open, iv.Close}
		argv.Append(NewLatencyBox(iv.Kind, argv.Graph, bins, recs, col, plot.DefaultSize))
	}
}
