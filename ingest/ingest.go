package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/TFMV/driftgraph/graph"
	"github.com/TFMV/driftgraph/physics"
)

// Scene defaults applied before validation
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	err := validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	if err != nil {
		panic(fmt.Sprintf("registering finite validation: %v", err))
	}
}

// PointSpec describes a point present when the scene starts
type PointSpec struct {
	X        float64 `json:"x" yaml:"x" validate:"finite"`
	Y        float64 `json:"y" yaml:"y" validate:"finite"`
	Angle    float64 `json:"angle" yaml:"angle" validate:"finite"`
	Velocity float64 `json:"velocity" yaml:"velocity" validate:"finite,gte=0"`
}

// ClickSpec describes a scripted click
type ClickSpec struct {
	Tick int     `json:"tick" yaml:"tick" validate:"gte=0"`
	X    float64 `json:"x" yaml:"x" validate:"finite"`
	Y    float64 `json:"y" yaml:"y" validate:"finite"`
}

// Scene is the declarative starting state of a simulation
type Scene struct {
	Name      string      `json:"name" yaml:"name"`
	Width     float64     `json:"width" yaml:"width" validate:"finite,gt=0"`
	Height    float64     `json:"height" yaml:"height" validate:"finite,gt=0"`
	Threshold float64     `json:"threshold" yaml:"threshold" validate:"finite,gt=0"`
	Points    []PointSpec `json:"points" yaml:"points" validate:"dive"`
	Clicks    []ClickSpec `json:"clicks" yaml:"clicks" validate:"dive"`
}

// NewPoints builds fresh graph points for the scene's initial state
func (s *Scene) NewPoints() []*graph.Point {
	points := make([]*graph.Point, 0, len(s.Points))
	for _, p := range s.Points {
		points = append(points, graph.NewPoint(graph.PointOptions{
			X:        p.X,
			Y:        p.Y,
			Angle:    p.Angle,
			Velocity: p.Velocity,
		}))
	}
	return points
}

// SimulationClicks converts the scripted clicks for physics.Simulation.Schedule
func (s *Scene) SimulationClicks() []physics.Click {
	clicks := make([]physics.Click, 0, len(s.Clicks))
	for _, c := range s.Clicks {
		clicks = append(clicks, physics.Click{Tick: c.Tick, X: c.X, Y: c.Y})
	}
	return clicks
}

// applyDefaults fills zero-valued canvas settings
func (s *Scene) applyDefaults() {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Threshold == 0 {
		s.Threshold = physics.DefaultThreshold
	}
}

// Validate checks the scene's ranges
func (s *Scene) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// SceneProcessor defines the interface that all scene processors must implement
type SceneProcessor interface {
	// ProcessData takes raw data bytes and returns a validated scene
	ProcessData(data []byte) (*Scene, error)

	// GetName returns the name of the processor
	GetName() string
}

// JSONProcessor handles JSON scenes
type JSONProcessor struct{}

// GetName returns the name of the processor
func (p *JSONProcessor) GetName() string {
	return "JSON Processor"
}

// ProcessData processes JSON data
func (p *JSONProcessor) ProcessData(data []byte) (*Scene, error) {
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	return finish(&scene)
}

// YAMLProcessor handles YAML scenes
type YAMLProcessor struct{}

// GetName returns the name of the processor
func (p *YAMLProcessor) GetName() string {
	return "YAML Processor"
}

// ProcessData processes YAML data
func (p *YAMLProcessor) ProcessData(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}
	return finish(&scene)
}

// CSVProcessor handles CSV scenes. Each row is one of:
//
//	canvas,<width>,<height>,,,
//	point,<x>,<y>,<angle>,<velocity>,
//	click,<x>,<y>,,,<tick>
//
// under the header kind,x,y,angle,velocity,tick.
type CSVProcessor struct{}

// GetName returns the name of the processor
func (p *CSVProcessor) GetName() string {
	return "CSV Processor"
}

var csvHeader = []string{"kind", "x", "y", "angle", "velocity", "tick"}

// ProcessData processes CSV data
func (p *CSVProcessor) ProcessData(data []byte) (*Scene, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = len(csvHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i, name := range csvHeader {
		if strings.ToLower(strings.TrimSpace(header[i])) != name {
			return nil, fmt.Errorf("unexpected CSV header %q, want %s", strings.Join(header, ","), strings.Join(csvHeader, ","))
		}
	}

	scene := &Scene{Name: "CSV Import"}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		fields := make([]float64, 4)
		for i, raw := range record[1:5] {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			if fields[i], err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("row %d: invalid %s %q: %w", row, csvHeader[i+1], raw, err)
			}
		}
		x, y, angle, velocity := fields[0], fields[1], fields[2], fields[3]

		switch kind := strings.ToLower(strings.TrimSpace(record[0])); kind {
		case "canvas":
			scene.Width, scene.Height = x, y
		case "point":
			scene.Points = append(scene.Points, PointSpec{X: x, Y: y, Angle: angle, Velocity: velocity})
		case "click":
			tick, err := strconv.Atoi(strings.TrimSpace(record[5]))
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid tick %q: %w", row, record[5], err)
			}
			scene.Clicks = append(scene.Clicks, ClickSpec{Tick: tick, X: x, Y: y})
		default:
			return nil, fmt.Errorf("row %d: unknown row kind %q", row, kind)
		}
	}

	return finish(scene)
}

func finish(scene *Scene) (*Scene, error) {
	scene.applyDefaults()
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return scene, nil
}

// GetProcessor returns the processor for a file extension
func GetProcessor(ext string) (SceneProcessor, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return &JSONProcessor{}, nil
	case ".yaml", ".yml":
		return &YAMLProcessor{}, nil
	case ".csv":
		return &CSVProcessor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// ProcessFile reads a scene file, choosing the processor by extension
func ProcessFile(filename string) (*Scene, error) {
	processor, err := GetProcessor(filepath.Ext(filename))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	scene, err := processor.ProcessData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", filepath.Base(filename), err)
	}
	if scene.Name == "" {
		scene.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return scene, nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "finite":
			return fmt.Errorf("%s: must be a finite number", field)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, e.Param())
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
