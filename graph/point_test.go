package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointMoveHeadingZero(t *testing.T) {
	p := NewPoint(PointOptions{X: 0, Y: 0, Angle: 0, Velocity: 0})
	p.Move()
	assert.InDelta(t, 1.0, p.X(), 1e-12)
	assert.InDelta(t, 0.0, p.Y(), 1e-12)
}

func TestPointMoveHeadingPi(t *testing.T) {
	p := NewPoint(PointOptions{Angle: math.Pi})
	p.Move()
	assert.InDelta(t, -1.0, p.X(), 1e-12)
	assert.InDelta(t, 0.0, p.Y(), 1e-12)
}

func TestPointMoveIgnoresVelocity(t *testing.T) {
	slow := NewPoint(PointOptions{Angle: math.Pi / 2, Velocity: 0.1})
	fast := NewPoint(PointOptions{Angle: math.Pi / 2, Velocity: 50})
	for i := 0; i < 3; i++ {
		slow.Move()
		fast.Move()
	}
	assert.InDelta(t, 3.0, slow.Y(), 1e-12)
	assert.Equal(t, slow.Y(), fast.Y())
	assert.Equal(t, 50.0, fast.Velocity())
	assert.Equal(t, math.Pi/2, fast.Angle())
}

func TestNewPointAssignsDistinctIDs(t *testing.T) {
	a := NewPoint(PointOptions{})
	b := NewPoint(PointOptions{})
	require.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestPointPositionChangesOnlyThroughMove(t *testing.T) {
	p := NewPoint(PointOptions{X: 3, Y: 4, Angle: math.Pi / 2})
	g := New(Options{Points: []*Point{p, NewPoint(PointOptions{X: 3, Y: 6})}, ConnectionFn: WithinDistance(2)})

	assert.Equal(t, 3.0, p.X())
	assert.Equal(t, 4.0, p.Y())
	assert.Zero(t, g.Connections().Count())

	g.Move()

	assert.InDelta(t, 3.0, p.X(), 1e-12)
	assert.InDelta(t, 5.0, p.Y(), 1e-12)
	assert.Equal(t, 1, g.Connections().Count())
}
