package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/TFMV/driftgraph/graph"
)

// NewFrame snapshots g at the given tick. Edge lengths are measured at
// snapshot time.
func NewFrame(g *graph.Graph, tick int, width, height float64) *Frame {
	points := g.Points()
	conns := g.Connections()

	frame := &Frame{
		ID:        uuid.New().String(),
		Tick:      tick,
		Width:     width,
		Height:    height,
		Nodes:     make([]Node, 0, len(points)),
		Edges:     make([]Edge, 0, conns.Count()),
		CreatedAt: time.Now(),
	}

	for i, p := range points {
		frame.Nodes = append(frame.Nodes, Node{
			ID:       p.ID(),
			Index:    i,
			X:        p.X(),
			Y:        p.Y(),
			Angle:    p.Angle(),
			Velocity: p.Velocity(),
			Degree:   conns.Degree(i),
		})
	}

	for _, pair := range conns.Pairs() {
		a, b := points[pair.I], points[pair.J]
		frame.Edges = append(frame.Edges, Edge{
			Source:   pair.I,
			Target:   pair.J,
			SourceID: a.ID(),
			TargetID: b.ID(),
			Length:   graph.Distance(a, b),
		})
	}

	return frame
}

// EdgeEndpoints returns the two nodes joined by e, or false if either index
// is outside the frame.
func (f *Frame) EdgeEndpoints(e Edge) (Node, Node, bool) {
	if e.Source < 0 || e.Target < 0 || e.Source >= len(f.Nodes) || e.Target >= len(f.Nodes) {
		return Node{}, Node{}, false
	}
	return f.Nodes[e.Source], f.Nodes[e.Target], true
}
