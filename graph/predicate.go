package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ConnectionFunc decides whether two points are linked. It must be a pure
// function of the points' current fields and must not call back into the Graph.
type ConnectionFunc func(a, b *Point) bool

// CandidateFinder narrows the pairs a ConnectionFunc is evaluated on. The
// result must include every pair the predicate would accept.
type CandidateFinder interface {
	Candidates(points []*Point) []Pair
}

// AlwaysConnected is the default predicate.
func AlwaysConnected(a, b *Point) bool {
	return true
}

// NeverConnected links nothing.
func NeverConnected(a, b *Point) bool {
	return false
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b *Point) float64 {
	return planar.Distance(orb.Point{a.X(), a.Y()}, orb.Point{b.X(), b.Y()})
}

// WithinDistance links points strictly closer than threshold.
func WithinDistance(threshold float64) ConnectionFunc {
	return func(a, b *Point) bool {
		return Distance(a, b) < threshold
	}
}
