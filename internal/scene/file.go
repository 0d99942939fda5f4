package scene

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/jakecoffman/fzx"
	"gopkg.in/yaml.v3"
)

// Definition is a scene described in YAML.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Config overrides the defaults for this scene only.
	Config  yaml.Node    `yaml:"config,omitempty"`
	Walls   float32      `yaml:"walls,omitempty"`
	Objects []ObjectSpec `yaml:"objects"`

	config *fzx.Config
}

// ObjectSpec places one object, or Count copies at random positions
// inside Spread when Count > 1.
type ObjectSpec struct {
	Shape    string       `yaml:"shape"`
	Radius   float32      `yaml:"radius,omitempty"`
	Size     [2]float32   `yaml:"size,omitempty"`
	Sides    int          `yaml:"sides,omitempty"`
	Verts    [][2]float32 `yaml:"verts,omitempty"`
	Position [2]float32   `yaml:"position"`
	Rotation float32      `yaml:"rotation,omitempty"`
	Scale    [2]float32   `yaml:"scale,omitempty"`

	// Mass 0 makes a static body.
	Mass     float32    `yaml:"mass"`
	Sensor   bool       `yaml:"sensor,omitempty"`
	Velocity [2]float32 `yaml:"velocity,omitempty"`

	Restitution  *float32 `yaml:"restitution,omitempty"`
	Friction     *float32 `yaml:"friction,omitempty"`
	GravityScale *float32 `yaml:"gravity_scale,omitempty"`

	Count  int        `yaml:"count,omitempty"`
	Spread [2]float32 `yaml:"spread,omitempty"`
}

// LoadFile reads a scene definition.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	for i, obj := range def.Objects {
		if _, err := obj.shape(); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}
	if def.Config.Kind != 0 {
		cfg := fzx.DefaultConfig()
		if err := def.Config.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse scene config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		def.config = cfg
	}
	if def.Name == "" {
		def.Name = "custom"
	}
	return &def, nil
}

func (obj ObjectSpec) shape() (fzx.Shape, error) {
	switch obj.Shape {
	case "circle":
		if obj.Radius <= 0 {
			return fzx.Shape{}, fmt.Errorf("circle needs a positive radius")
		}
		return fzx.NewCircle(obj.Radius, 0), nil
	case "box":
		if obj.Size[0] <= 0 || obj.Size[1] <= 0 {
			return fzx.Shape{}, fmt.Errorf("box needs a positive size")
		}
		return fzx.NewBox(obj.Size[0], obj.Size[1]), nil
	case "regular":
		if obj.Radius <= 0 || obj.Sides < 3 {
			return fzx.Shape{}, fmt.Errorf("regular polygon needs a radius and at least 3 sides")
		}
		return fzx.NewRegularPolygon(obj.Radius, obj.Sides), nil
	case "polygon":
		verts := make([]fzx.Vector, len(obj.Verts))
		for i, v := range obj.Verts {
			verts[i] = v
		}
		shape := fzx.NewPolygon(verts)
		if shape.Degenerate() {
			return fzx.Shape{}, fmt.Errorf("polygon needs at least 3 non collinear vertices")
		}
		return shape, nil
	}
	return fzx.Shape{}, fmt.Errorf("unknown shape %q", obj.Shape)
}

// Scene turns the definition into a buildable scene.
func (def *Definition) Scene() Scene {
	return Scene{
		Name:        def.Name,
		Description: def.Description,
		Configure: func(cfg *fzx.Config) {
			if def.config != nil {
				*cfg = *def.config
			}
		},
		Build: def.build,
	}
}

func (def *Definition) build(space *fzx.Space, r *rand.Rand) error {
	for _, obj := range def.Objects {
		shape, err := obj.shape()
		if err != nil {
			return err
		}
		for i := 0; i < max(obj.Count, 1); i++ {
			xf := fzx.Transform{
				Position: obj.Position,
				Rotation: obj.Rotation,
				Scale:    obj.Scale,
			}
			if xf.Scale == (fzx.Vector{}) {
				xf.Scale = fzx.Vec(1, 1)
			}
			if obj.Count > 1 {
				xf.Position = xf.Position.Add(fzx.Vec(randomIn(r, -obj.Spread[0], obj.Spread[0]), randomIn(r, -obj.Spread[1], obj.Spread[1])))
			}
			def.place(space, shape, xf, obj)
		}
	}
	if def.Walls > 0 {
		walls(space, def.Walls)
	}
	return nil
}

func (def *Definition) place(space *fzx.Space, shape fzx.Shape, xf fzx.Transform, obj ObjectSpec) {
	if obj.Sensor {
		space.AddCollidable(shape, xf, fzx.ShapeFilterAll)
		return
	}
	cfg := space.Config()
	opts := cfg.BodyOptions(obj.Mass)
	if obj.Mass <= 0 {
		opts = cfg.StaticOptions()
	}
	if obj.Restitution != nil {
		opts.Restitution = *obj.Restitution
	}
	if obj.Friction != nil {
		opts.Friction = *obj.Friction
	}
	if obj.GravityScale != nil {
		opts.GravityScale = *obj.GravityScale
	}
	body := space.AddBody(shape, xf, opts)
	if obj.Velocity != [2]float32{} {
		body.SetVelocity(obj.Velocity)
	}
}
