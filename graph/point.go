package graph

import (
	"math"

	"github.com/google/uuid"
)

// PointOptions holds the construction parameters for a Point.
type PointOptions struct {
	X, Y     float64
	Angle    float64 // heading in radians
	Velocity float64
}

// Point is a vertex drifting across the canvas along a fixed heading.
// Heading and velocity are fixed at construction; the position changes only
// through Move.
type Point struct {
	x, y     float64
	id       string
	angle    float64
	velocity float64
}

// NewPoint creates a point with a fresh ID.
func NewPoint(opts PointOptions) *Point {
	return &Point{
		x:        opts.X,
		y:        opts.Y,
		id:       uuid.New().String(),
		angle:    opts.Angle,
		velocity: opts.Velocity,
	}
}

// X returns the horizontal position.
func (p *Point) X() float64 {
	return p.x
}

// Y returns the vertical position.
func (p *Point) Y() float64 {
	return p.y
}

// ID returns the label assigned at construction. It is not used for equality.
func (p *Point) ID() string {
	return p.id
}

// Angle returns the heading in radians.
func (p *Point) Angle() float64 {
	return p.angle
}

// Velocity returns the speed the point was created with.
// Move does not scale the step by it.
func (p *Point) Velocity() float64 {
	return p.velocity
}

// Move advances the point one unit along its heading.
func (p *Point) Move() {
	p.x += math.Cos(p.angle)
	p.y += math.Sin(p.angle)
}
