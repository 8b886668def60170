package ingest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/driftgraph/physics"
)

func TestJSONProcessor(t *testing.T) {
	data := []byte(`{
		"name": "triangle",
		"width": 1024,
		"height": 768,
		"threshold": 150,
		"points": [
			{"x": 10, "y": 20, "angle": 1.5, "velocity": 0.25},
			{"x": 110, "y": 20}
		],
		"clicks": [{"tick": 30, "x": 500, "y": 400}]
	}`)

	scene, err := (&JSONProcessor{}).ProcessData(data)
	require.NoError(t, err)

	assert.Equal(t, "triangle", scene.Name)
	assert.Equal(t, 1024.0, scene.Width)
	assert.Equal(t, 150.0, scene.Threshold)
	require.Len(t, scene.Points, 2)
	assert.Equal(t, PointSpec{X: 10, Y: 20, Angle: 1.5, Velocity: 0.25}, scene.Points[0])
	assert.Equal(t, []physics.Click{{Tick: 30, X: 500, Y: 400}}, scene.SimulationClicks())

	points := scene.NewPoints()
	require.Len(t, points, 2)
	assert.Equal(t, 10.0, points[0].X())
	assert.Equal(t, 1.5, points[0].Angle())
	assert.Equal(t, 0.25, points[0].Velocity())
	assert.NotEqual(t, points[0].ID(), points[1].ID())
}

func TestDefaultsApplied(t *testing.T) {
	scene, err := (&JSONProcessor{}).ProcessData([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, DefaultWidth, scene.Width)
	assert.Equal(t, DefaultHeight, scene.Height)
	assert.Equal(t, physics.DefaultThreshold, scene.Threshold)
	assert.Empty(t, scene.NewPoints())
}

func TestYAMLProcessor(t *testing.T) {
	data := []byte(`
name: drift
width: 400
height: 300
points:
  - {x: 1, y: 2, angle: 3.14, velocity: 0.5}
clicks:
  - tick: 5
    x: 200
    y: 150
`)
	scene, err := (&YAMLProcessor{}).ProcessData(data)
	require.NoError(t, err)

	assert.Equal(t, "drift", scene.Name)
	assert.Equal(t, 400.0, scene.Width)
	assert.Equal(t, physics.DefaultThreshold, scene.Threshold)
	assert.Equal(t, []PointSpec{{X: 1, Y: 2, Angle: 3.14, Velocity: 0.5}}, scene.Points)
	assert.Equal(t, []ClickSpec{{Tick: 5, X: 200, Y: 150}}, scene.Clicks)
}

func TestCSVProcessor(t *testing.T) {
	data := []byte(`kind,x,y,angle,velocity,tick
canvas,640,480,,,
point,10,20,0.5,0.1,
point, 30, 40, 1, 0,
click,100,200,,,12
`)
	scene, err := (&CSVProcessor{}).ProcessData(data)
	require.NoError(t, err)

	assert.Equal(t, 640.0, scene.Width)
	assert.Equal(t, 480.0, scene.Height)
	assert.Equal(t, []PointSpec{{X: 10, Y: 20, Angle: 0.5, Velocity: 0.1}, {X: 30, Y: 40, Angle: 1}}, scene.Points)
	assert.Equal(t, []ClickSpec{{Tick: 12, X: 100, Y: 200}}, scene.Clicks)
}

func TestCSVProcessorErrors(t *testing.T) {
	cases := map[string]string{
		"bad header":   "a,b,c,d,e,f\n",
		"unknown kind": "kind,x,y,angle,velocity,tick\nblob,1,2,,,\n",
		"bad number":   "kind,x,y,angle,velocity,tick\npoint,one,2,,,\n",
		"bad tick":     "kind,x,y,angle,velocity,tick\nclick,1,2,,,\n",
		"short row":    "kind,x,y,angle,velocity,tick\npoint,1,2\n",
		"empty":        "",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := (&CSVProcessor{}).ProcessData([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestValidationRejectsBadScenes(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"negative width", "width: -5\n", "Scene.Width: must be greater than 0"},
		{"negative threshold", "threshold: -1\n", "Scene.Threshold: must be greater than 0"},
		{"negative velocity", "points:\n  - {x: 1, y: 1, velocity: -0.5}\n", "Scene.Points[0].Velocity: must be at least 0"},
		{"nan coordinate", "points:\n  - {x: .nan, y: 1}\n", "Scene.Points[0].X: must be a finite number"},
		{"infinite click", "clicks:\n  - {tick: 1, x: 1, y: .inf}\n", "Scene.Clicks[0].Y: must be a finite number"},
		{"negative tick", "clicks:\n  - {tick: -1, x: 1, y: 1}\n", "Scene.Clicks[0].Tick: must be at least 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := (&YAMLProcessor{}).ProcessData([]byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestMalformedDocuments(t *testing.T) {
	_, err := (&JSONProcessor{}).ProcessData([]byte(`{"points": 3}`))
	assert.ErrorContains(t, err, "error parsing JSON")

	_, err = (&YAMLProcessor{}).ProcessData([]byte("points: [x: 1"))
	assert.ErrorContains(t, err, "error parsing YAML")
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "corner.yml")
	require.NoError(t, os.WriteFile(path, []byte("points:\n  - {x: 5, y: 5}\n"), 0644))

	scene, err := ProcessFile(path)
	require.NoError(t, err)
	assert.Equal(t, "corner", scene.Name)
	assert.Len(t, scene.Points, 1)

	_, err = ProcessFile(filepath.Join(dir, "scene.toml"))
	assert.EqualError(t, err, "unsupported file type: .toml")

	_, err = ProcessFile(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read file")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"width": -1}`), 0644))
	_, err = ProcessFile(bad)
	assert.ErrorContains(t, err, "failed to process bad.json")
}

func TestGetProcessor(t *testing.T) {
	for ext, name := range map[string]string{
		".json": "JSON Processor",
		".YAML": "YAML Processor",
		".yml":  "YAML Processor",
		".csv":  "CSV Processor",
	} {
		p, err := GetProcessor(ext)
		require.NoError(t, err)
		assert.Equal(t, name, p.GetName())
	}
}

func TestFiniteValidationRegistered(t *testing.T) {
	assert.NoError(t, validate.Var(12.5, "finite"))
	assert.Error(t, validate.Var(math.NaN(), "finite"))
	assert.Error(t, validate.Var(math.Inf(-1), "finite"))
}
