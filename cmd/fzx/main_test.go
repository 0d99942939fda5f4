package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/fzx"
)

func TestRun_Record(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.msgpack")
	logger := fzx.NewLogger(io.Discard, "error")

	err := run(context.Background(), logger, fzx.DefaultConfig(), options{
		scene:  "pyramid",
		seed:   1,
		steps:  5,
		dt:     1.0 / 60,
		record: path,
	})
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	frames, err := fzx.ReadRecording(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 5 {
		t.Fatalf("Expected 5 frames, got %d", len(frames))
	}
}

func TestRun_FailureReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.msgpack")
	logger := fzx.NewLogger(io.Discard, "error")

	// headless runs need a step count
	err := run(context.Background(), logger, fzx.DefaultConfig(), options{
		scene:  "pyramid",
		seed:   1,
		dt:     1.0 / 60,
		record: path,
	})
	if err == nil {
		t.Fatal("Expected an error")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("recording should exist: %v", err)
	}

	if err := run(context.Background(), logger, fzx.DefaultConfig(), options{scene: "no-such-scene"}); err == nil {
		t.Fatal("Expected an unknown scene to fail")
	}
}
