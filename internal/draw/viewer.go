package draw

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/fzx"
)

// ViewerOptions configures Run.
type ViewerOptions struct {
	FPS int
	DT  float32
	// Steps stops the viewer after that many steps. Zero runs until quit.
	Steps    uint
	Flags    int
	SizeFunc TermSizeFunc
	Logger   *log.Logger
	// OnStep runs after every step, for recording.
	OnStep func(space *fzx.Space) error
}

const (
	keyCtrlC = 3
	keyQuit  = 'q'
	keyPause = ' '
	keyStep  = 's'
)

// Run steps space in real time and renders every frame to out until ctx is
// done, the step budget is used up or the user quits. Keys read from in:
// q quits, space pauses, s single steps while paused, b c i toggle bounds,
// contacts and the index overlay.
func Run(ctx context.Context, space *fzx.Space, in io.Reader, out io.Writer, opts ViewerOptions) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.DT <= 0 {
		opts.DT = 1 / float32(opts.FPS)
	}
	if opts.SizeFunc == nil {
		opts.SizeFunc = DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Flags == 0 {
		opts.Flags = fzx.DRAW_SHAPES
	}

	keys := make(chan rune, 16)
	go readKeys(ctx, in, keys)

	width, height, err := opts.SizeFunc()
	if err != nil {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}
	// the last row is the status line
	canvas := NewCanvas(width, height-1, space.Config().BoardAABB())
	canvas.SetFlags(opts.Flags)

	cw := bufio.NewWriter(out)
	HideCursor(cw)
	ClearScreen(cw)
	defer func() {
		ShowCursor(cw)
		cw.Flush()
	}()

	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()

	paused := false
	for {
		step := false
		select {
		case <-ctx.Done():
			return nil
		case key := <-keys:
			switch key {
			case keyQuit, keyCtrlC:
				return nil
			case keyPause:
				paused = !paused
			case keyStep:
				step = paused
			case 'b':
				canvas.SetFlags(canvas.Flags() ^ fzx.DRAW_BOUNDS)
			case 'c':
				canvas.SetFlags(canvas.Flags() ^ fzx.DRAW_COLLISION_POINTS)
			case 'i':
				canvas.SetFlags(canvas.Flags() ^ fzx.DRAW_INDEX)
			}
			if !step {
				continue
			}
		case <-ticker.C:
			step = !paused
		}

		if step {
			space.Step(opts.DT)
			if opts.OnStep != nil {
				if err := opts.OnStep(space); err != nil {
					return err
				}
			}
		}

		if w, h, err := opts.SizeFunc(); err == nil && (w != canvas.Width() || h-1 != canvas.Height()) {
			canvas.Resize(w, h-1)
			ClearScreen(cw)
		}
		canvas.Clear()
		fzx.DrawSpace(space, canvas)
		if err := canvas.Render(cw); err != nil {
			return err
		}
		WriteStatus(cw, canvas.Height()+1, status(space, paused))
		if err := cw.Flush(); err != nil {
			return err
		}

		if opts.Steps > 0 && space.Stats().Steps >= opts.Steps {
			opts.Logger.Info("step budget reached", "steps", opts.Steps)
			return nil
		}
	}
}

func status(space *fzx.Space, paused bool) string {
	stats := space.Stats()
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf("step %d  t=%.2fs  bodies %d  awake %d  sleeping %d  pairs %d  contacts %d  [%s] q quit, space pause, s step, b/c/i overlays",
		stats.Steps, stats.Time, stats.Bodies, stats.Awake, stats.Sleeping, stats.Arbiters, stats.Contacts, state)
}

func readKeys(ctx context.Context, in io.Reader, keys chan<- rune) {
	reader := bufio.NewReader(in)
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return
		}
		select {
		case keys <- r:
		case <-ctx.Done():
			return
		}
	}
}
