package draw

import (
	"io"
	"slices"
	"strings"

	"github.com/chewxy/math32"
	"github.com/jakecoffman/fzx"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// maxChunkSize is the maximum bytes to write at once. It keeps frames
// flowing smoothly over SSH.
const maxChunkSize = 1400

// Canvas is a monochrome drawing buffer with 2x vertical resolution using
// half-block characters. World coordinates are scaled onto the terminal.
// It implements fzx.Drawer.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []bool

	world  fzx.AABB
	scaleX float32
	scaleY float32

	flags int

	renderBuf       strings.Builder
	scaledBuf       []fzx.Vector
	intersectionBuf []float32
}

// NewCanvas creates a canvas of termWidth columns and termHeight rows that
// shows the world region.
func NewCanvas(termWidth, termHeight int, world fzx.AABB) *Canvas {
	c := &Canvas{world: world, flags: fzx.DRAW_SHAPES}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// world region.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 1), max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
	}
	c.scaleX = float32(termWidth) / (2 * c.world.HW)
	c.scaleY = float32(c.subPixelHeight) / (2 * c.world.HH)
}

func (c *Canvas) SetFlags(flags int) {
	c.flags = flags
}

func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) Width() int {
	return c.termWidth
}

func (c *Canvas) Height() int {
	return c.termHeight
}

// toPixel maps a world point to sub-pixel coordinates.
func (c *Canvas) toPixel(p fzx.Vector) fzx.Vector {
	origin := c.world.Min()
	return fzx.Vector{(p[0] - origin[0]) * c.scaleX, (p[1] - origin[1]) * c.scaleY}
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Pixel reports whether the sub-pixel at x, y is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// line draws between two pixel space points using Bresenham's algorithm.
func (c *Canvas) line(p1, p2 fzx.Vector) {
	x1, y1 := int(math32.Round(p1[0])), int(math32.Round(p1[1]))
	x2, y2 := int(math32.Round(p2[0])), int(math32.Round(p2[1]))

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// polygon outlines and optionally fills world space points.
func (c *Canvas) polygon(points []fzx.Vector, filled bool) {
	if len(points) < 2 {
		return
	}
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]fzx.Vector, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = c.toPixel(p)
	}
	if filled && len(scaled) >= 3 {
		c.fill(scaled)
	}
	for i := range scaled {
		c.line(scaled[i], scaled[(i+1)%len(scaled)])
	}
}

// fill is a scanline fill in pixel space.
func (c *Canvas) fill(scaled []fzx.Vector) {
	minY, maxY := scaled[0][1], scaled[0][1]
	for _, p := range scaled {
		minY = math32.Min(minY, p[1])
		maxY = math32.Max(maxY, p[1])
	}
	yStart := max(int(math32.Floor(minY)), 0)
	yEnd := min(int(math32.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float32(y) + 0.5
		intersections := c.intersectionBuf[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1[1] <= scanY && p2[1] > scanY) || (p2[1] <= scanY && p1[1] > scanY) {
				t := (scanY - p1[1]) / (p2[1] - p1[1])
				intersections = append(intersections, p1[0]+t*(p2[0]-p1[0]))
			}
		}
		c.intersectionBuf = intersections
		slices.Sort(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math32.Ceil(intersections[i]))
			xEnd := int(math32.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

func (c *Canvas) DrawCircle(pos fzx.Vector, angle, radius float32, outline, fill fzx.FColor, data interface{}) {
	segments := max(8, min(32, int(radius*c.scaleX)))
	points := make([]fzx.Vector, segments)
	for i := range points {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		points[i] = pos.Add(fzx.Vector{radius * math32.Cos(a), radius * math32.Sin(a)})
	}
	c.polygon(points, fill.A > 0)
	// a spoke shows the rotation
	c.line(c.toPixel(pos), c.toPixel(pos.Add(fzx.Rotate(fzx.Vector{radius, 0}, angle))))
}

func (c *Canvas) DrawSegment(a, b fzx.Vector, fill fzx.FColor, data interface{}) {
	c.line(c.toPixel(a), c.toPixel(b))
}

func (c *Canvas) DrawPolygon(verts []fzx.Vector, outline, fill fzx.FColor, data interface{}) {
	c.polygon(verts, fill.A > 0)
}

func (c *Canvas) DrawDot(size float32, pos fzx.Vector, fill fzx.FColor, data interface{}) {
	p := c.toPixel(pos)
	c.setPixel(int(math32.Round(p[0])), int(math32.Round(p[1])))
}

func (c *Canvas) Flags() int {
	return c.flags
}

func (c *Canvas) OutlineColor() fzx.FColor {
	return fzx.FColor{R: 1, G: 1, B: 1, A: 1}
}

// ShapeColor fills dynamic bodies and leaves static bodies and sensors as
// outlines.
func (c *Canvas) ShapeColor(col *fzx.Collidable, body *fzx.RigidBody, data interface{}) fzx.FColor {
	color := fzx.DefaultShapeColor(col, body)
	if body == nil || body.IsStatic() {
		color.A = 0
	}
	return color
}

func (c *Canvas) Data() interface{} {
	return nil
}

// Lines returns the canvas as text, one string per terminal row.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.termHeight)
	var sb strings.Builder
	for row := range lines {
		sb.Reset()
		for col := 0; col < c.termWidth; col++ {
			sb.WriteRune(c.cell(col, row))
		}
		lines[row] = sb.String()
	}
	return lines
}

func (c *Canvas) cell(col, row int) rune {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := row*2+1 < c.subPixelHeight && c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	}
	return BlockEmpty
}

// Render outputs the canvas to w, one cursor move per row.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 3)
	for row, line := range c.Lines() {
		MoveCursor(&c.renderBuf, 1, row+1)
		c.renderBuf.WriteString(line)
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
