package fzx

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the observable state of a Space after a step, compact enough
// to record every frame.
type Snapshot struct {
	Step   uint         `msgpack:"s"`
	Time   float32      `msgpack:"t"`
	Bodies []BodyState  `msgpack:"b"`
	Others []ShapeState `msgpack:"o,omitempty"`
}

type BodyState struct {
	ID       uint32     `msgpack:"id"`
	Shape    ShapeState `msgpack:"sh"`
	Velocity [2]float32 `msgpack:"v"`
	Angular  float32    `msgpack:"w"`
	Static   bool       `msgpack:"st,omitempty"`
	Sleeping bool       `msgpack:"sl,omitempty"`
}

// ShapeState is a collidable in world space.
type ShapeState struct {
	ID       uint32       `msgpack:"id"`
	Kind     ShapeKind    `msgpack:"k"`
	Position [2]float32   `msgpack:"p"`
	Rotation float32      `msgpack:"r"`
	Radius   float32      `msgpack:"rad,omitempty"`
	Verts    [][2]float32 `msgpack:"vs,omitempty"`
}

func shapeState(col *Collidable) ShapeState {
	geom := col.Geometry()
	state := ShapeState{
		ID:       col.id.index,
		Kind:     geom.Kind,
		Position: col.Transform.Position,
		Rotation: col.Transform.Rotation,
		Radius:   geom.Radius,
	}
	if geom.Kind == ShapePolygon {
		state.Verts = make([][2]float32, len(geom.Verts))
		for i, v := range geom.Verts {
			state.Verts[i] = v
		}
	}
	return state
}

// Snapshot captures bodies in creation order, followed by bodiless
// collidables.
func (space *Space) Snapshot() *Snapshot {
	snap := &Snapshot{
		Step:   space.stats.Steps,
		Time:   space.time,
		Bodies: make([]BodyState, 0, space.bodies.len()),
	}
	space.EachBody(func(body *RigidBody) {
		snap.Bodies = append(snap.Bodies, BodyState{
			ID:       body.id.index,
			Shape:    shapeState(body.collider),
			Velocity: body.v,
			Angular:  body.w,
			Static:   body.static,
			Sleeping: body.sleeping,
		})
	})
	space.EachCollidable(func(col *Collidable) {
		if !col.HasBody() {
			snap.Others = append(snap.Others, shapeState(col))
		}
	})
	return snap
}

func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Recorder streams snapshots to w, one msgpack value per step.
type Recorder struct {
	enc    *msgpack.Encoder
	frames int
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: msgpack.NewEncoder(w)}
}

func (r *Recorder) Record(space *Space) error {
	if err := r.enc.Encode(space.Snapshot()); err != nil {
		return fmt.Errorf("failed to record frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

func (r *Recorder) Frames() int {
	return r.frames
}

// ReadRecording decodes every snapshot written by a Recorder.
func ReadRecording(rd io.Reader) ([]*Snapshot, error) {
	dec := msgpack.NewDecoder(rd)
	var frames []*Snapshot
	for {
		var snap Snapshot
		err := dec.Decode(&snap)
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("failed to read frame %d: %w", len(frames), err)
		}
		frames = append(frames, &snap)
	}
}
