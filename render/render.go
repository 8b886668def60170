package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/TFMV/driftgraph/models"
)

// OutputOptions defines rendering configuration options
type OutputOptions struct {
	Format     string  // Output format (svg, ascii, json, dot)
	Width      float64 // Width of the output
	Height     float64 // Height of the output
	Background string  // Background color
	PointColor string  // Fill color of point markers
	EdgeColor  string  // Stroke color of connections
	PointSize  float64 // Side length of the square point marker
	EdgeWidth  float64 // Stroke width of connections
	FontSize   float64 // Font size for labels
	ShowLabels bool    // Show point IDs
	Timestamp  bool    // Include timestamp in visualization
}

// Renderer interface defines methods that all rendering backends must implement
type Renderer interface {
	// Render draws the frame using the provided options
	Render(frame *models.Frame, options *OutputOptions) ([]byte, error)

	// Name returns the name of the renderer
	Name() string

	// Description returns a description of the renderer
	Description() string
}

// NewDefaultOptions creates a default set of output options
func NewDefaultOptions(format string) *OutputOptions {
	return &OutputOptions{
		Format:     format,
		Width:      800,
		Height:     600,
		Background: "black",
		PointColor: "#ff0000",
		EdgeColor:  "green",
		PointSize:  10.0,
		EdgeWidth:  1.0,
		FontSize:   10.0,
		ShowLabels: false,
		Timestamp:  false,
	}
}

// GetRenderer returns the appropriate renderer based on format
func GetRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "svg":
		return &SVGRenderer{}, nil
	case "ascii":
		return &ASCIIRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "dot":
		return &DOTRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension used for a format
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "ascii":
		return "txt"
	case "dot":
		return "dot"
	case "json":
		return "json"
	default:
		return "svg"
	}
}

// SVGRenderer outputs SVG format
type SVGRenderer struct{}

// Name returns the name of the renderer
func (r *SVGRenderer) Name() string {
	return "SVG Renderer"
}

// Description returns a description of the renderer
func (r *SVGRenderer) Description() string {
	return "Renders frames as Scalable Vector Graphics with square points and straight connections"
}

// Render creates an SVG representation of the frame
func (r *SVGRenderer) Render(frame *models.Frame, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%g" height="%g" viewBox="0 0 %g %g" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, options.Width, options.Height, options.Width, options.Height, options.Background))

	// Connections go underneath the points
	for _, edge := range frame.Edges {
		source, target, ok := frame.EdgeEndpoints(edge)
		if !ok {
			continue
		}
		buf.WriteString(fmt.Sprintf(`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g"/>
`, source.X, source.Y, target.X, target.Y, options.EdgeColor, options.EdgeWidth))
	}

	half := options.PointSize / 2
	for _, node := range frame.Nodes {
		buf.WriteString(fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>
`, node.X-half, node.Y-half, options.PointSize, options.PointSize, options.PointColor))

		if options.ShowLabels {
			buf.WriteString(fmt.Sprintf(`<text x="%g" y="%g" font-family="sans-serif" font-size="%g" fill="#808080">%s</text>
`, node.X+half+2, node.Y, options.FontSize, shortID(node.ID)))
		}
	}

	if options.Timestamp {
		timeStr := frame.CreatedAt.Format("2006-01-02 15:04:05")
		buf.WriteString(fmt.Sprintf(`<text x="5" y="%g" font-family="sans-serif" font-size="8" fill="#808080">tick %d · %s</text>
`, options.Height-5, frame.Tick, timeStr))
	}

	buf.WriteString(`</svg>`)

	return buf.Bytes(), nil
}

// ASCIIRenderer outputs ASCII art format
type ASCIIRenderer struct{}

// Name returns the name of the renderer
func (r *ASCIIRenderer) Name() string {
	return "ASCII Renderer"
}

// Description returns a description of the renderer
func (r *ASCIIRenderer) Description() string {
	return "Renders frames as ASCII art for terminal or text-based output"
}

// Render creates an ASCII representation of the frame
func (r *ASCIIRenderer) Render(frame *models.Frame, options *OutputOptions) ([]byte, error) {
	if options.Width <= 0 || options.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %gx%g", options.Width, options.Height)
	}

	// Scale down, with an adjustment for the aspect ratio of terminal cells
	width := max(int(options.Width/10), 40)
	height := max(int(options.Height/20), 20)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i := 0; i < width; i++ {
		grid[0][i] = '-'
		grid[height-1][i] = '-'
	}
	for i := 0; i < height; i++ {
		grid[i][0] = '|'
		grid[i][width-1] = '|'
	}
	grid[0][0] = '+'
	grid[0][width-1] = '+'
	grid[height-1][0] = '+'
	grid[height-1][width-1] = '+'

	toCell := func(x, y float64) (int, int) {
		cx := int(x*float64(width-2)/options.Width) + 1
		cy := int(y*float64(height-2)/options.Height) + 1
		return clamp(cx, 1, width-2), clamp(cy, 1, height-2)
	}

	for _, edge := range frame.Edges {
		source, target, ok := frame.EdgeEndpoints(edge)
		if !ok {
			continue
		}
		x1, y1 := toCell(source.X, source.Y)
		x2, y2 := toCell(target.X, target.Y)
		drawLine(grid, x1, y1, x2, y2)
	}

	for _, node := range frame.Nodes {
		x, y := toCell(node.X, node.Y)
		grid[y][x] = pointSymbol
	}

	if options.Timestamp && height > 4 {
		stamp := fmt.Sprintf("tick %d", frame.Tick)
		if len(stamp) < width-4 {
			for i, c := range stamp {
				grid[height-2][i+2] = c
			}
		}
	}

	var result strings.Builder
	for _, row := range grid {
		result.WriteString(string(row))
		result.WriteRune('\n')
	}

	return []byte(result.String()), nil
}

// JSONRenderer outputs raw JSON format
type JSONRenderer struct{}

// Name returns the name of the renderer
func (r *JSONRenderer) Name() string {
	return "JSON Renderer"
}

// Description returns a description of the renderer
func (r *JSONRenderer) Description() string {
	return "Renders frames as JSON data for machine consumption or custom visualizations"
}

// Render creates a JSON representation of the frame
func (r *JSONRenderer) Render(frame *models.Frame, options *OutputOptions) ([]byte, error) {
	type jsonFrame struct {
		*models.Frame
		Metadata map[string]interface{} `json:"metadata"`
	}

	doc := jsonFrame{
		Frame: frame,
		Metadata: map[string]interface{}{
			"width":     options.Width,
			"height":    options.Height,
			"nodeCount": len(frame.Nodes),
			"edgeCount": len(frame.Edges),
		},
	}
	if options.Timestamp {
		doc.Metadata["timestamp"] = time.Now().Format(time.RFC3339)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// DOTRenderer outputs Graphviz DOT format
type DOTRenderer struct{}

// Name returns the name of the renderer
func (r *DOTRenderer) Name() string {
	return "DOT Renderer"
}

// Description returns a description of the renderer
func (r *DOTRenderer) Description() string {
	return "Renders frames in Graphviz DOT format with pinned point positions"
}

// Render creates a DOT representation of the frame
func (r *DOTRenderer) Render(frame *models.Frame, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("graph G {\n")
	buf.WriteString(fmt.Sprintf("  graph [bgcolor=\"%s\", size=\"%g,%g\"];\n",
		options.Background, options.Width/72.0, options.Height/72.0))
	buf.WriteString(fmt.Sprintf("  node [shape=square, style=filled, fillcolor=\"%s\", label=\"\", width=%g];\n",
		options.PointColor, options.PointSize/72.0))
	buf.WriteString(fmt.Sprintf("  edge [color=\"%s\", penwidth=%g];\n",
		options.EdgeColor, options.EdgeWidth))

	// DOT's y axis points up
	for _, node := range frame.Nodes {
		buf.WriteString(fmt.Sprintf("  \"%s\" [pos=\"%g,%g!\"];\n",
			node.ID, node.X/72.0, (options.Height-node.Y)/72.0))
	}

	for _, edge := range frame.Edges {
		buf.WriteString(fmt.Sprintf("  \"%s\" -- \"%s\";\n", edge.SourceID, edge.TargetID))
	}

	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

// Helper functions

const (
	pointSymbol = 'O'
	edgeSymbol  = '·'
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Clamp a value between lo and hi
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Draw a line on the ASCII grid using Bresenham's algorithm
func drawLine(grid [][]rune, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}
	err := dx + dy

	for {
		if x1 >= 0 && x1 < len(grid[0]) && y1 >= 0 && y1 < len(grid) && grid[y1][x1] != pointSymbol {
			grid[y1][x1] = edgeSymbol
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 >= dy {
			if x1 == x2 {
				break
			}
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			if y1 == y2 {
				break
			}
			err += dx
			y1 += sy
		}
	}
}

// Absolute value of an integer
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
