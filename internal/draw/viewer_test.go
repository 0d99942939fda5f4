package draw

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jakecoffman/fzx"
)

func fixedSize(w, h int) TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func TestRun_StepBudget(t *testing.T) {
	space, err := fzx.NewSpace(nil)
	if err != nil {
		t.Fatal(err)
	}
	space.AddDynamicBody(fzx.NewBox(100, 100), fzx.NewTransform(fzx.Vec(640, 360), 0), 1)

	recorded := 0
	var out bytes.Buffer
	err = Run(context.Background(), space, strings.NewReader(""), &out, ViewerOptions{
		FPS:      500,
		Steps:    3,
		SizeFunc: fixedSize(40, 12),
		OnStep: func(*fzx.Space) error {
			recorded++
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if space.Stats().Steps != 3 || recorded != 3 {
		t.Fatalf("steps %d, recorded %d", space.Stats().Steps, recorded)
	}
	if !strings.Contains(out.String(), "step 3") {
		t.Fatal("status line missing")
	}
	if !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Fatal("cursor should be restored")
	}
}

func TestRun_Quit(t *testing.T) {
	space, err := fzx.NewSpace(nil)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() {
		var out bytes.Buffer
		done <- Run(context.Background(), space, strings.NewReader("q"), &out, ViewerOptions{
			FPS:      1,
			SizeFunc: fixedSize(40, 12),
		})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not quit")
	}
}

func TestRun_Cancel(t *testing.T) {
	space, err := fzx.NewSpace(nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if err := Run(ctx, space, strings.NewReader(""), &out, ViewerOptions{SizeFunc: fixedSize(40, 12)}); err != nil {
		t.Fatal(err)
	}
}
