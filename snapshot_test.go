package fzx

import (
	"bytes"
	"testing"
)

func TestSnapshot(t *testing.T) {
	space := newTestSpace(t, nil)
	space.AddStaticBody(NewBox(200, 20), NewTransform(Vec(100, 300), 0))
	ball := space.AddDynamicBody(NewCircle(10, 0), NewTransform(Vec(100, 100), 0), 1)
	space.AddCollidable(NewCircle(50, 0), NewTransform(Vec(0, 0), 0), ShapeFilterAll)
	space.Step(dt)

	data, err := EncodeSnapshot(space.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Step != 1 || len(snap.Bodies) != 2 || len(snap.Others) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	floor, state := snap.Bodies[0], snap.Bodies[1]
	if !floor.Static || floor.Shape.Kind != ShapePolygon || len(floor.Shape.Verts) != 4 {
		t.Fatalf("floor state %+v", floor)
	}
	if state.Shape.Kind != ShapeCircle || state.Shape.Radius != 10 {
		t.Fatalf("ball state %+v", state)
	}
	if state.Shape.Position != [2]float32(ball.Position()) || state.Velocity != [2]float32(ball.Velocity()) {
		t.Fatal("ball state does not match the body")
	}

	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Fatal("expected an error for garbage input")
	}
}

func TestRecorder(t *testing.T) {
	space := newTestSpace(t, nil)
	space.AddDynamicBody(NewBox(10, 10), NewTransform(Vec(100, 100), 0), 1)

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	for i := 0; i < 5; i++ {
		space.Step(dt)
		if err := rec.Record(space); err != nil {
			t.Fatal(err)
		}
	}
	frames, err := ReadRecording(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != rec.Frames() || len(frames) != 5 {
		t.Fatalf("read %d frames", len(frames))
	}
	if frames[4].Bodies[0].Shape.Position[1] <= frames[0].Bodies[0].Shape.Position[1] {
		t.Fatal("falling body should move down between frames")
	}
}
