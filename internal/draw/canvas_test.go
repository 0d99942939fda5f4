package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jakecoffman/fzx"
)

func TestCanvas_DrawPolygon(t *testing.T) {
	world := fzx.NewAABBForExtents(fzx.Vec(0, 0), fzx.Vec(100, 100))
	c := NewCanvas(10, 5, world)

	box := []fzx.Vector{{20, 20}, {80, 20}, {80, 80}, {20, 80}}
	c.DrawPolygon(box, fzx.FColor{}, fzx.FColor{A: 1}, nil)

	// 10 columns by 10 sub-pixel rows: world units map 10:1
	if !c.Pixel(5, 5) {
		t.Error("filled polygon should cover its center")
	}
	if c.Pixel(0, 0) || c.Pixel(9, 9) {
		t.Error("pixels outside the polygon are set")
	}

	c.Clear()
	c.DrawPolygon(box, fzx.FColor{}, fzx.FColor{}, nil)
	if c.Pixel(5, 5) {
		t.Error("outline should leave the center empty")
	}
	if !c.Pixel(2, 5) {
		t.Error("outline should cover the left edge")
	}
}

func TestCanvas_Lines(t *testing.T) {
	world := fzx.NewAABBForExtents(fzx.Vec(0, 0), fzx.Vec(4, 4))
	c := NewCanvas(4, 2, world)
	c.DrawDot(1, fzx.Vec(0, 0), fzx.FColor{}, nil)
	c.DrawDot(1, fzx.Vec(1, 1), fzx.FColor{}, nil)
	c.DrawDot(1, fzx.Vec(3, 1), fzx.FColor{}, nil)

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	want := string([]rune{BlockUpperHalf, BlockLowerHalf, BlockEmpty, BlockLowerHalf})
	if lines[0] != want {
		t.Fatalf("line = %q, want %q", lines[0], want)
	}

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), want) || !strings.HasPrefix(buf.String(), "\033[1;1H") {
		t.Fatalf("unexpected render %q", buf.String())
	}
}

func TestCanvas_DrawSpace(t *testing.T) {
	space, err := fzx.NewSpace(nil)
	if err != nil {
		t.Fatal(err)
	}
	space.AddStaticBody(fzx.NewBox(1280, 40), fzx.NewTransform(fzx.Vec(640, 700), 0))
	space.AddDynamicBody(fzx.NewCircle(100, 0), fzx.NewTransform(fzx.Vec(640, 300), 0), 1)

	c := NewCanvas(64, 18, space.Config().BoardAABB())
	c.SetFlags(fzx.DRAW_SHAPES | fzx.DRAW_INDEX)
	fzx.DrawSpace(space, c)

	// circle center: 640/20 = 32 columns, 300/20 = 15 sub-pixels
	if !c.Pixel(32, 15) {
		t.Error("dynamic circle should be filled")
	}
	lines := c.Lines()
	if strings.TrimSpace(lines[len(lines)-1]) == "" {
		t.Error("floor should appear on the last row")
	}
}
