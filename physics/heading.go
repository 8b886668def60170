package physics

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// HeadingSource picks the heading for a point spawned at (x, y) on the given tick.
// Returned angles are in [0, 2π).
type HeadingSource interface {
	Heading(x, y float64, tick int) float64
	GetName() string
}

// RandomHeading draws uniformly distributed headings
type RandomHeading struct {
	rng *rand.Rand
}

// NewRandomHeading creates a random heading source with the given seed
func NewRandomHeading(seed int64) *RandomHeading {
	return &RandomHeading{rng: rand.New(rand.NewSource(seed))}
}

// GetName returns the name of the heading source
func (rh *RandomHeading) GetName() string {
	return "Random Heading"
}

// Heading returns a uniform angle, ignoring position and tick
func (rh *RandomHeading) Heading(x, y float64, tick int) float64 {
	return rh.rng.Float64() * 2 * math.Pi
}

// NoiseHeading derives headings from an OpenSimplex field, so clicks close
// together in space and time drift in similar directions.
type NoiseHeading struct {
	noiseGenerator opensimplex.Noise
	noiseScale     float64
	timeScale      float64
}

// NewNoiseHeading creates a noise heading source. scale controls how quickly
// the field varies across the canvas.
func NewNoiseHeading(seed int64, scale float64) *NoiseHeading {
	return &NoiseHeading{
		noiseGenerator: opensimplex.New(seed),
		noiseScale:     scale,
		timeScale:      0.01,
	}
}

// GetName returns the name of the heading source
func (nh *NoiseHeading) GetName() string {
	return "Noise Heading"
}

// Heading maps the noise value at (x, y, tick) onto a full turn
func (nh *NoiseHeading) Heading(x, y float64, tick int) float64 {
	v := nh.noiseGenerator.Eval3(x*nh.noiseScale, y*nh.noiseScale, float64(tick)*nh.timeScale)
	angle := math.Mod((v+1)*math.Pi, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
