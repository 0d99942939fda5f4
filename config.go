package fzx

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	BroadPhaseQuadTree = "quadtree"
	BroadPhaseGrid     = "grid"
	BroadPhaseBBTree   = "bbtree"
)

// Config holds every tunable of a Space.
type Config struct {
	// Gravity is an acceleration magnitude along GravityDirection. The
	// default direction is +y, screen space pointing down.
	Gravity          float32    `yaml:"gravity"`
	GravityDirection [2]float32 `yaml:"gravity_direction"`

	// Board is the root region of the quadtree.
	Board BoardConfig `yaml:"board"`

	BroadPhase string         `yaml:"broad_phase"`
	QuadTree   QuadTreeConfig `yaml:"quadtree"`
	Grid       GridConfig     `yaml:"grid"`

	Bodies BodyDefaults `yaml:"bodies"`
	Solver SolverConfig `yaml:"solver"`
	Sleep  SleepConfig  `yaml:"sleep"`

	LogLevel string `yaml:"log_level"`
}

type BoardConfig struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type QuadTreeConfig struct {
	Capacity int `yaml:"capacity"`
	MaxDepth int `yaml:"max_depth"`
}

type GridConfig struct {
	CellSize float32 `yaml:"cell_size"`
}

// BodyDefaults seed BodyOptions for new bodies.
type BodyDefaults struct {
	Restitution    float32 `yaml:"restitution"`
	Friction       float32 `yaml:"friction"`
	LinearDamping  float32 `yaml:"linear_damping"`
	AngularDamping float32 `yaml:"angular_damping"`
	GravityScale   float32 `yaml:"gravity_scale"`
	CanSleep       bool    `yaml:"can_sleep"`
}

type SolverConfig struct {
	// Baumgarte is the fraction of penetration corrected per step.
	Baumgarte float32 `yaml:"baumgarte"`
	// Slop is the penetration left uncorrected.
	Slop float32 `yaml:"slop"`
	// RestitutionThreshold is the approach speed below which restitution
	// fades toward zero.
	RestitutionThreshold float32 `yaml:"restitution_threshold"`
	// WakeImpulse is the impulse that wakes a sleeping body.
	WakeImpulse float32 `yaml:"wake_impulse"`
}

type SleepConfig struct {
	LinearThreshold  float32 `yaml:"linear_threshold"`
	AngularThreshold float32 `yaml:"angular_threshold"`
	// Time a body must stay below both thresholds before sleeping.
	Time float32 `yaml:"time"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:          980,
		GravityDirection: [2]float32{0, 1},
		Board:            BoardConfig{X: 0, Y: 0, Width: 1280, Height: 720},
		BroadPhase:       BroadPhaseQuadTree,
		QuadTree: QuadTreeConfig{
			Capacity: DefaultQuadTreeCapacity,
			MaxDepth: DefaultQuadTreeMaxDepth,
		},
		Grid: GridConfig{CellSize: DefaultCellSize},
		Bodies: BodyDefaults{
			Restitution:    0.2,
			Friction:       0.4,
			LinearDamping:  0.01,
			AngularDamping: 0.01,
			GravityScale:   1,
			CanSleep:       true,
		},
		Solver: SolverConfig{
			Baumgarte:            0.2,
			Slop:                 0.01,
			RestitutionThreshold: 30,
			WakeImpulse:          50,
		},
		Sleep: SleepConfig{
			LinearThreshold:  5,
			AngularThreshold: 0.1,
			Time:             0,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overlays FZX_* environment variables.
func (cfg *Config) ApplyEnv() error {
	cfg.LogLevel = GetEnv("FZX_LOG_LEVEL", cfg.LogLevel)
	cfg.BroadPhase = GetEnv("FZX_BROAD_PHASE", cfg.BroadPhase)

	floats := []struct {
		key string
		dst *float32
	}{
		{"FZX_GRAVITY", &cfg.Gravity},
		{"FZX_CELL_SIZE", &cfg.Grid.CellSize},
		{"FZX_BAUMGARTE", &cfg.Solver.Baumgarte},
		{"FZX_SLOP", &cfg.Solver.Slop},
	}
	for _, f := range floats {
		raw, ok := os.LookupEnv(f.key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.key, err)
		}
		*f.dst = float32(v)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"FZX_QUADTREE_CAPACITY", &cfg.QuadTree.Capacity},
		{"FZX_QUADTREE_MAX_DEPTH", &cfg.QuadTree.MaxDepth},
	}
	for _, i := range ints {
		raw, ok := os.LookupEnv(i.key)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", i.key, err)
		}
		*i.dst = v
	}
	return nil
}

// Validate reports the first setting a Space cannot run with.
func (cfg *Config) Validate() error {
	unit := func(name string, v float32) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidConfig, name, v)
		}
		return nil
	}
	switch {
	case cfg.BroadPhase != BroadPhaseQuadTree && cfg.BroadPhase != BroadPhaseGrid && cfg.BroadPhase != BroadPhaseBBTree:
		return fmt.Errorf("%w: unknown broad phase %q", ErrInvalidConfig, cfg.BroadPhase)
	case cfg.QuadTree.Capacity < 1:
		return fmt.Errorf("%w: quadtree capacity must be positive, got %d", ErrInvalidConfig, cfg.QuadTree.Capacity)
	case cfg.QuadTree.MaxDepth < 0 || cfg.QuadTree.MaxDepth > 16:
		return fmt.Errorf("%w: quadtree max depth must be within [0, 16], got %d", ErrInvalidConfig, cfg.QuadTree.MaxDepth)
	case cfg.Grid.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %v", ErrInvalidConfig, cfg.Grid.CellSize)
	case cfg.Board.Width <= 0 || cfg.Board.Height <= 0:
		return fmt.Errorf("%w: board must have a positive size", ErrInvalidConfig)
	case cfg.Gravity != 0 && cfg.GravityDirection == [2]float32{}:
		return fmt.Errorf("%w: gravity direction is zero", ErrInvalidConfig)
	case cfg.Solver.Slop < 0:
		return fmt.Errorf("%w: slop must not be negative, got %v", ErrInvalidConfig, cfg.Solver.Slop)
	case cfg.Sleep.LinearThreshold < 0 || cfg.Sleep.AngularThreshold < 0 || cfg.Sleep.Time < 0:
		return fmt.Errorf("%w: sleep settings must not be negative", ErrInvalidConfig)
	}
	for _, c := range []struct {
		name string
		v    float32
	}{
		{"restitution", cfg.Bodies.Restitution},
		{"friction", cfg.Bodies.Friction},
		{"baumgarte", cfg.Solver.Baumgarte},
	} {
		if err := unit(c.name, c.v); err != nil {
			return err
		}
	}
	return nil
}

// BoardAABB returns the board as a bounding box.
func (cfg *Config) BoardAABB() AABB {
	b := cfg.Board
	return NewAABBForExtents(Vector{b.X, b.Y}, Vector{b.X + b.Width, b.Y + b.Height})
}

// GravityVector is the gravitational acceleration.
func (cfg *Config) GravityVector() Vector {
	dir := Normalize(Vector{cfg.GravityDirection[0], cfg.GravityDirection[1]})
	return dir.Mul(cfg.Gravity)
}

// BodyOptions returns options for a body of the given mass seeded from the
// configured defaults.
func (cfg *Config) BodyOptions(mass float32) BodyOptions {
	d := cfg.Bodies
	return BodyOptions{
		Mass:           mass,
		Restitution:    d.Restitution,
		Friction:       d.Friction,
		LinearDamping:  d.LinearDamping,
		AngularDamping: d.AngularDamping,
		GravityScale:   d.GravityScale,
		CanSleep:       d.CanSleep,
		Filter:         ShapeFilterAll,
	}
}

// StaticOptions returns options for an immovable body.
func (cfg *Config) StaticOptions() BodyOptions {
	opts := cfg.BodyOptions(0)
	opts.Static = true
	return opts
}
