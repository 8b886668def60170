// Package spatial provides an R-tree broad phase for graph connectivity.
package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/TFMV/driftgraph/graph"
)

// pointTolerance pads each indexed point into a small box. Query rectangles
// are widened by reach, so points near the query edge are still reported.
const pointTolerance = 1e-9

// pointEntry wraps a point for R-tree storage
type pointEntry struct {
	index int
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *pointEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// RadiusIndex finds pairs of points whose axis-aligned distance is below
// Radius. Any pair closer than Radius in Euclidean distance is included, so
// it can front a graph.WithinDistance predicate with the same threshold.
// Points with non-finite coordinates are never candidates.
type RadiusIndex struct {
	Radius float64
}

// NewRadiusIndex creates a broad phase for the given radius.
func NewRadiusIndex(radius float64) *RadiusIndex {
	return &RadiusIndex{Radius: radius}
}

// Candidates implements graph.CandidateFinder. The tree is rebuilt from the
// current positions on every call.
func (ri *RadiusIndex) Candidates(points []*graph.Point) []graph.Pair {
	if ri.Radius <= 0 || len(points) < 2 {
		return nil
	}

	entries := make([]rtreego.Spatial, 0, len(points))
	for i, p := range points {
		if !finite(p.X()) || !finite(p.Y()) {
			continue
		}
		entries = append(entries, &pointEntry{
			index: i,
			bbox:  rtreego.Point{p.X(), p.Y()}.ToRect(pointTolerance),
		})
	}
	if len(entries) < 2 {
		return nil
	}
	tree := rtreego.NewTree(2, 25, 50, entries...) // 2D, min 25, max 50 entries per node

	var pairs []graph.Pair
	for _, entry := range entries {
		i := entry.(*pointEntry).index
		x, y := points[i].X(), points[i].Y()
		h := reach(ri.Radius, math.Max(math.Abs(x), math.Abs(y)))
		query, err := rtreego.NewRect(rtreego.Point{x - h, y - h}, []float64{2 * h, 2 * h})
		if err != nil {
			continue
		}
		for _, item := range tree.SearchIntersect(query) {
			j := item.(*pointEntry).index
			if j > i {
				pairs = append(pairs, graph.Pair{I: i, J: j})
			}
		}
	}
	return pairs
}

// reach is the query half-width for radius r around a point whose largest
// coordinate has magnitude m. It exceeds r by the rounding error that
// subtracting and re-adding r can introduce at that magnitude.
func reach(r, m float64) float64 {
	m += r
	ulp := math.Nextafter(m, math.Inf(1)) - m
	return r*(1+1e-12) + 8*ulp
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
