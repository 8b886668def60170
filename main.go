package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/TFMV/driftgraph/ingest"
	"github.com/TFMV/driftgraph/models"
	"github.com/TFMV/driftgraph/physics"
	"github.com/TFMV/driftgraph/render"
)

// Configuration represents all the settings for the application
type Configuration struct {
	Mode         string
	SceneFile    string
	OutputPrefix string
	Ticks        int
	Every        int
	Width        float64
	Height       float64
	Threshold    float64
	Spawn        int
	Noise        float64
	Seed         int64
	UseIndex     bool
	Labels       bool
	DebugMode    bool
}

func main() {
	// Create a context that can be canceled on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("Received shutdown signal, writing the current state and stopping...")
		cancel()
	}()

	config := parseConfig()

	if config.DebugMode {
		log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
		log.Println("Debug mode enabled")
	} else {
		log.SetFlags(log.LstdFlags)
	}

	scene, err := loadScene(config)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	sim := newSimulation(scene, config)
	log.Printf("Running %d ticks on a %gx%g canvas with %d points (threshold %g)",
		config.Ticks, scene.Width, scene.Height, sim.Graph().Len(), scene.Threshold)

	written, err := runSimulation(ctx, sim, config)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	log.Printf("Processing complete. %d frames written, %d points remain", written, sim.Graph().Len())
}

// parseConfig parses command-line flags and returns a Configuration object
func parseConfig() *Configuration {
	config := &Configuration{}

	flag.StringVar(&config.Mode, "mode", "svg", "Render mode: svg, ascii, json, dot")
	flag.StringVar(&config.SceneFile, "scene", "", "Path to scene file (JSON, YAML, CSV)")
	flag.StringVar(&config.OutputPrefix, "output", "frame", "Output path prefix; frames are written as <prefix>-<tick>.<ext>")
	flag.IntVar(&config.Ticks, "ticks", 600, "Number of ticks to simulate")
	flag.IntVar(&config.Every, "every", 60, "Write a frame every N ticks (0 writes only the final frame)")

	flag.Float64Var(&config.Width, "width", 0, "Canvas width (overrides the scene)")
	flag.Float64Var(&config.Height, "height", 0, "Canvas height (overrides the scene)")
	flag.Float64Var(&config.Threshold, "threshold", 0, "Connection distance (overrides the scene)")
	flag.IntVar(&config.Spawn, "spawn", 0, "Number of random clicks at tick 0")
	flag.Float64Var(&config.Noise, "noise", 0, "OpenSimplex heading field scale (0 uses random headings)")
	flag.Int64Var(&config.Seed, "seed", time.Now().UnixNano(), "Random seed")

	flag.BoolVar(&config.UseIndex, "index", false, "Use the R-tree broad phase for connections")
	flag.BoolVar(&config.Labels, "labels", false, "Label points with their IDs")
	flag.BoolVar(&config.DebugMode, "debug", false, "Enable debug logging")

	flag.Parse()

	if err := config.validate(); err != nil {
		fmt.Println(err)
		flag.Usage()
		os.Exit(1)
	}

	return config
}

func (c *Configuration) validate() error {
	if _, err := render.GetRenderer(c.Mode); err != nil {
		return err
	}
	if c.Ticks < 0 || c.Every < 0 || c.Spawn < 0 {
		return fmt.Errorf("-ticks, -every and -spawn must not be negative")
	}
	if c.Width < 0 || c.Height < 0 || c.Threshold < 0 {
		return fmt.Errorf("-width, -height and -threshold must not be negative")
	}
	if c.Noise < 0 {
		return fmt.Errorf("-noise must not be negative")
	}
	return nil
}

// loadScene reads the scene file, if any, and applies flag overrides
func loadScene(config *Configuration) (*ingest.Scene, error) {
	var scene *ingest.Scene
	var err error

	if config.SceneFile == "" {
		scene, err = (&ingest.JSONProcessor{}).ProcessData([]byte(`{"name": "empty"}`))
	} else {
		scene, err = ingest.ProcessFile(config.SceneFile)
	}
	if err != nil {
		return nil, err
	}

	if config.Width > 0 {
		scene.Width = config.Width
	}
	if config.Height > 0 {
		scene.Height = config.Height
	}
	if config.Threshold > 0 {
		scene.Threshold = config.Threshold
	}

	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene after overrides: %w", err)
	}
	return scene, nil
}

// newSimulation wires the scene and flags into a simulation
func newSimulation(scene *ingest.Scene, config *Configuration) *physics.Simulation {
	var headings physics.HeadingSource
	if config.Noise > 0 {
		headings = physics.NewNoiseHeading(config.Seed, config.Noise)
	}

	simConfig := physics.Config{
		Width:     scene.Width,
		Height:    scene.Height,
		Threshold: scene.Threshold,
		UseIndex:  config.UseIndex,
		Headings:  headings,
		Seed:      config.Seed,
		// Every == 0 disables intermediate frames in runSimulation
		FrameEvery: config.Every,
	}
	if config.DebugMode {
		simConfig.Logger = log.Default()
	}

	sim := physics.NewSimulation(simConfig, scene.NewPoints())
	sim.Schedule(scene.SimulationClicks()...)
	sim.Schedule(randomClicks(scene, config)...)

	if config.DebugMode {
		log.Printf("Scene %q: %d initial points, %d scripted clicks, %d random clicks",
			scene.Name, len(scene.Points), len(scene.Clicks), config.Spawn)
		log.Printf("Headings from %s", sim.HeadingName())
	}
	return sim
}

// randomClicks stands in for user input when -spawn is set
func randomClicks(scene *ingest.Scene, config *Configuration) []physics.Click {
	if config.Spawn == 0 {
		return nil
	}
	return physics.RandomClicks(config.Spawn, scene.Width, scene.Height, config.Seed)
}

// runSimulation drives the tick loop and writes frames to disk
func runSimulation(ctx context.Context, sim *physics.Simulation, config *Configuration) (int, error) {
	renderer, err := render.GetRenderer(config.Mode)
	if err != nil {
		return 0, err
	}

	if config.DebugMode {
		log.Printf("Using %s: %s", renderer.Name(), renderer.Description())
	}

	written := 0
	var onFrame func(*models.Frame) error
	if config.Every > 0 {
		onFrame = func(frame *models.Frame) error {
			if err := writeFrame(renderer, frame, config); err != nil {
				return err
			}
			written++
			return nil
		}
	}

	err = sim.Run(ctx, config.Ticks, onFrame)
	switch {
	case errors.Is(err, context.Canceled):
		log.Printf("Simulation interrupted at tick %d", sim.CurrentTick())
	case err != nil:
		return written, err
	}

	// The state after the last step is always written
	if err := writeFrame(renderer, sim.Snapshot(), config); err != nil {
		return written, err
	}
	written++

	return written, nil
}

// writeFrame renders a frame and saves it next to the output prefix
func writeFrame(renderer render.Renderer, frame *models.Frame, config *Configuration) error {
	options := render.NewDefaultOptions(config.Mode)
	options.Width = frame.Width
	options.Height = frame.Height
	options.ShowLabels = config.Labels

	output, err := renderer.Render(frame, options)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	path := fmt.Sprintf("%s-%05d.%s", config.OutputPrefix, frame.Tick, render.Extension(config.Mode))
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, output, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if config.DebugMode {
		log.Printf("Wrote %s (%d nodes, %d edges)", path, len(frame.Nodes), len(frame.Edges))
	}
	return nil
}
