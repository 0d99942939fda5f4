// Package scene builds demo worlds for the command line tools.
package scene

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/jakecoffman/fzx"
)

// Scene populates a Space. Configure runs before the Space is created and
// may be nil.
type Scene struct {
	Name        string
	Description string
	Configure   func(cfg *fzx.Config)
	Build       func(space *fzx.Space, r *rand.Rand) error
}

var builtin = map[string]Scene{}

func register(s Scene) {
	builtin[s.Name] = s
}

// Names lists the builtin scenes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns a builtin scene by name.
func Get(name string) (Scene, error) {
	s, ok := builtin[strings.ToLower(name)]
	if !ok {
		return Scene{}, fmt.Errorf("unknown scene %q, want one of %s", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Load resolves a builtin name or a path to a YAML scene file.
func Load(nameOrPath string) (Scene, error) {
	if s, err := Get(nameOrPath); err == nil {
		return s, nil
	}
	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") {
		def, err := LoadFile(nameOrPath)
		if err != nil {
			return Scene{}, err
		}
		return def.Scene(), nil
	}
	return Get(nameOrPath)
}

// New configures and builds a Space for s. seed drives every random
// placement so runs are reproducible.
func New(s Scene, cfg *fzx.Config, seed int64) (*fzx.Space, error) {
	if cfg == nil {
		cfg = fzx.DefaultConfig()
	}
	if s.Configure != nil {
		s.Configure(cfg)
	}
	space, err := fzx.NewSpace(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Build(space, rand.New(rand.NewSource(seed))); err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", s.Name, err)
	}
	return space, nil
}

// walls encloses the board with static boxes of the given thickness placed
// just outside it.
func walls(space *fzx.Space, thickness float32) {
	board := space.Config().BoardAABB()
	min, max := board.Min(), board.Max()
	w, h := board.HW*2, board.HH*2
	ht := thickness / 2

	space.AddStaticBody(fzx.NewBox(w, thickness), fzx.NewTransform(fzx.Vec(board.Center[0], max[1]+ht), 0))
	space.AddStaticBody(fzx.NewBox(w, thickness), fzx.NewTransform(fzx.Vec(board.Center[0], min[1]-ht), 0))
	space.AddStaticBody(fzx.NewBox(thickness, h), fzx.NewTransform(fzx.Vec(min[0]-ht, board.Center[1]), 0))
	space.AddStaticBody(fzx.NewBox(thickness, h), fzx.NewTransform(fzx.Vec(max[0]+ht, board.Center[1]), 0))
}

func randomIn(r *rand.Rand, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}

func init() {
	register(Scene{
		Name:        "boxes",
		Description: "500 weightless boxes pushed in random directions inside four walls",
		Build: func(space *fzx.Space, r *rand.Rand) error {
			board := space.Config().BoardAABB()
			min, max := board.Min(), board.Max()
			for i := 0; i < 500; i++ {
				pos := fzx.Vec(randomIn(r, min[0]+10, max[0]-10), randomIn(r, min[1]+10, max[1]-10))
				body := space.AddBody(fzx.NewBox(25, 25), fzx.NewTransform(pos, 0), fzx.BodyOptions{
					Mass:           1,
					Restitution:    1,
					Friction:       1,
					GravityScale:   0,
					LinearDamping:  0.01,
					AngularDamping: 0.01,
				})
				body.ApplyForce(fzx.Vec(board.HW*randomIn(r, -1, 1)*30, board.HH*randomIn(r, -1, 1)*30), fzx.Vector{})
			}
			// a rotated, scaled sensor in the corner
			space.AddCollidable(fzx.NewBox(10, 10), fzx.Transform{
				Position: fzx.Vec(min[0]+100, min[1]+100),
				Scale:    fzx.Vec(5, 5),
				Rotation: 45,
			}, fzx.ShapeFilterAll)
			walls(space, 50)
			return nil
		},
	})

	register(Scene{
		Name:        "pyramid",
		Description: "a pyramid of boxes resting on the floor",
		Build: func(space *fzx.Space, r *rand.Rand) error {
			board := space.Config().BoardAABB()
			max := board.Max()
			const rows, size = 14, 30
			for i := 0; i < rows; i++ {
				for j := 0; j <= i; j++ {
					x := board.Center[0] + float32(j*32-i*16)
					y := max[1] - size/2 - float32((rows-1-i)*32)
					opts := space.Config().BodyOptions(1)
					opts.Restitution = 0
					opts.Friction = 0.8
					space.AddBody(fzx.NewBox(size, size), fzx.NewTransform(fzx.Vec(x, y), 0), opts)
				}
			}
			walls(space, 50)
			return nil
		},
	})

	register(Scene{
		Name:        "rain",
		Description: "circles falling onto a tilted ramp",
		Build: func(space *fzx.Space, r *rand.Rand) error {
			board := space.Config().BoardAABB()
			min, max := board.Min(), board.Max()
			space.AddStaticBody(fzx.NewBox(board.HW, 20), fzx.NewTransform(fzx.Vec(board.Center[0], board.Center[1]+board.HH/3), 15))
			for i := 0; i < 150; i++ {
				pos := fzx.Vec(randomIn(r, min[0]+50, max[0]-50), randomIn(r, min[1]+10, board.Center[1]))
				radius := randomIn(r, 5, 15)
				opts := space.Config().BodyOptions(radius * radius / 25)
				opts.Restitution = 0.5
				space.AddBody(fzx.NewCircle(radius, 0), fzx.NewTransform(pos, 0), opts)
			}
			walls(space, 50)
			return nil
		},
	})

	register(Scene{
		Name:        "mixed",
		Description: "boxes, circles and polygons under gravity",
		Build: func(space *fzx.Space, r *rand.Rand) error {
			board := space.Config().BoardAABB()
			min, max := board.Min(), board.Max()
			for i := 0; i < 200; i++ {
				pos := fzx.Vec(randomIn(r, min[0]+40, max[0]-40), randomIn(r, min[1]+40, max[1]-200))
				var shape fzx.Shape
				switch i % 3 {
				case 0:
					shape = fzx.NewBox(randomIn(r, 10, 40), randomIn(r, 10, 40))
				case 1:
					shape = fzx.NewCircle(randomIn(r, 5, 20), 0)
				default:
					shape = fzx.NewRegularPolygon(randomIn(r, 8, 20), 3+r.Intn(5))
				}
				space.AddDynamicBody(shape, fzx.NewTransform(pos, randomIn(r, 0, 360)), 1)
			}
			walls(space, 50)
			return nil
		},
	})
}
