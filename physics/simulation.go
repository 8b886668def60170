// Package physics drives a proximity graph frame by frame: it spawns points on
// clicks, advances them each tick and culls those that leave the canvas.
package physics

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/paulmach/orb"

	"github.com/TFMV/driftgraph/graph"
	"github.com/TFMV/driftgraph/models"
	"github.com/TFMV/driftgraph/spatial"
)

// DefaultThreshold is the distance under which two points are connected.
const DefaultThreshold = 200.0

// Click is a scripted spawn request applied at the start of Tick.
type Click struct {
	Tick int
	X, Y float64
}

// Config holds the settings for a Simulation
type Config struct {
	Width     float64
	Height    float64
	Threshold float64       // Connection distance; DefaultThreshold when zero
	UseIndex  bool          // Front the distance predicate with an R-tree broad phase
	Headings  HeadingSource // Heading for clicked points; random when nil
	Seed      int64
	Logger    *log.Logger // Debug output; silent when nil

	// FrameEvery limits Run to building a frame on ticks divisible by it.
	// Zero or one builds a frame every tick.
	FrameEvery int
}

// Simulation owns a graph and the canvas it lives on
type Simulation struct {
	graph    *graph.Graph
	bounds   orb.Bound
	headings HeadingSource
	speeds   *rand.Rand
	pending  []Click
	tick     int
	every    int
	logger   *log.Logger
}

// NewSimulation creates a simulation seeded with the initial points
func NewSimulation(cfg Config, initial []*graph.Point) *Simulation {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	opts := graph.Options{
		Points:       initial,
		ConnectionFn: graph.WithinDistance(threshold),
	}
	if cfg.UseIndex {
		opts.Candidates = spatial.NewRadiusIndex(threshold)
	}

	headings := cfg.Headings
	if headings == nil {
		headings = NewRandomHeading(cfg.Seed)
	}

	return &Simulation{
		graph:    graph.New(opts),
		bounds:   orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{cfg.Width, cfg.Height}},
		headings: headings,
		speeds:   rand.New(rand.NewSource(cfg.Seed + 1)),
		every:    max(cfg.FrameEvery, 1),
		logger:   cfg.Logger,
	}
}

// HeadingName names the source of headings for new points
func (s *Simulation) HeadingName() string {
	return s.headings.GetName()
}

// Graph returns the underlying graph
func (s *Simulation) Graph() *graph.Graph {
	return s.graph
}

// Bounds returns the canvas rectangle
func (s *Simulation) Bounds() orb.Bound {
	return s.bounds
}

// CurrentTick returns the number of completed steps
func (s *Simulation) CurrentTick() int {
	return s.tick
}

// Schedule queues clicks to be applied when their tick comes up in Run.
// Clicks for ticks already passed are applied at the next tick.
func (s *Simulation) Schedule(clicks ...Click) {
	s.pending = append(s.pending, clicks...)
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].Tick < s.pending[j].Tick
	})
}

// Click spawns a point at (x, y) with a heading from the heading source and
// a speed in [0, 1).
func (s *Simulation) Click(x, y float64) *graph.Point {
	p := graph.NewPoint(graph.PointOptions{
		X:        x,
		Y:        y,
		Angle:    s.headings.Heading(x, y, s.tick),
		Velocity: s.speeds.Float64(),
	})
	s.graph.AddPoint(p)
	if s.logger != nil {
		s.debugf("tick %d: spawned %s at (%.1f, %.1f) heading %.3f, linked to %v",
			s.tick, p.ID(), x, y, p.Angle(), s.graph.Connections().Neighbors(s.graph.Len()-1))
	}
	return p
}

// InBounds reports whether p lies strictly inside the canvas
func (s *Simulation) InBounds(p *graph.Point) bool {
	x, y := p.X(), p.Y()
	return x > s.bounds.Min.X() && x < s.bounds.Max.X() &&
		y > s.bounds.Min.Y() && y < s.bounds.Max.Y()
}

// Step moves every point, culls those that left the canvas and returns how
// many were culled.
func (s *Simulation) Step() int {
	before := s.graph.Len()
	s.graph.Tick(s.InBounds)
	culled := before - s.graph.Len()
	if culled > 0 {
		s.debugf("tick %d: culled %d points, %d remain", s.tick, culled, s.graph.Len())
	}
	s.tick++
	return culled
}

// Snapshot captures the current state as a frame
func (s *Simulation) Snapshot() *models.Frame {
	return models.NewFrame(s.graph, s.tick, s.bounds.Max.X(), s.bounds.Max.Y())
}

// Run advances the simulation by ticks steps. On each tick the due clicks are
// applied, fn receives the frame when the tick is a multiple of
// Config.FrameEvery, and then the points move. A nil fn builds no frames.
// It stops early if ctx is cancelled or fn fails.
func (s *Simulation) Run(ctx context.Context, ticks int, fn func(*models.Frame) error) error {
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.applyPending()

		if fn != nil && s.tick%s.every == 0 {
			if err := fn(s.Snapshot()); err != nil {
				return fmt.Errorf("frame handler failed at tick %d: %w", s.tick, err)
			}
		}

		s.Step()
	}
	return nil
}

func (s *Simulation) applyPending() {
	due := 0
	for due < len(s.pending) && s.pending[due].Tick <= s.tick {
		c := s.pending[due]
		s.Click(c.X, c.Y)
		due++
	}
	s.pending = s.pending[due:]
}

func (s *Simulation) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// RandomClicks returns n tick-0 clicks spread uniformly over the open canvas
func RandomClicks(n int, width, height float64, seed int64) []Click {
	if n <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	clicks := make([]Click, 0, n)
	for len(clicks) < n {
		x := rng.Float64() * width
		y := rng.Float64() * height
		if x == 0 || y == 0 {
			continue
		}
		clicks = append(clicks, Click{X: x, Y: y})
	}
	return clicks
}
