// Package models provides data structures for the driftgraph application.
// It defines the frame snapshot handed from the simulation to the drawers.
package models

import (
	"time"
)

// Node is a snapshot of a single point
type Node struct {
	ID       string  `json:"id"`
	Index    int     `json:"index"` // Position in the graph's point order
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Angle    float64 `json:"angle"`
	Velocity float64 `json:"velocity"`
	Degree   int     `json:"degree"`
}

// Edge represents an undirected connection between two nodes
type Edge struct {
	Source   int     `json:"source"` // Index of the lower node
	Target   int     `json:"target"` // Index of the higher node
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id"`
	Length   float64 `json:"length"`
}

// Frame is the state of the graph at one tick
type Frame struct {
	ID        string    `json:"id"`
	Tick      int       `json:"tick"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
}
