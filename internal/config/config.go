// Package config loads the simulator configuration and holds the runtime
// settings shared by the loop.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"heli-sim/internal/flight"
	"heli-sim/internal/world"
)

// ErrInvalidLoop is returned for bad loop settings.
var ErrInvalidLoop = errors.New("invalid loop config")

// LoopConfig holds frame pacing and diagnostics settings.
type LoopConfig struct {
	FPSLimit      int     `json:"fpsLimit"`      // 0 means unlimited
	MaxFrameDelta float64 `json:"maxFrameDelta"` // seconds
	Profiling     bool    `json:"profiling"`
	SlowFrameMS   float64 `json:"slowFrameMs"` // frames slower than this are logged
}

// Config is the whole simulator configuration.
type Config struct {
	World  world.Config  `json:"world"`
	Flight flight.Config `json:"flight"`
	Loop   LoopConfig    `json:"loop"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		World:  world.DefaultConfig(),
		Flight: flight.DefaultConfig(),
		Loop: LoopConfig{
			FPSLimit:      60,
			MaxFrameDelta: 0.1,
			SlowFrameMS:   50,
		},
	}
}

// Load reads a JSON file over the defaults. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Bind attaches the most common settings to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	g := &c.World.Generator
	fs.Int64Var(&g.Seed, "seed", g.Seed, "terrain seed")
	fs.StringVar(&g.Kind, "terrain", g.Kind, "terrain generator: fbm, diamond-square, perlin-diamond")
	fs.StringVar(&g.Noise, "noise", g.Noise, "noise primitive: perlin, value")
	fs.Float64Var(&g.Fbm.Scale, "scale", g.Fbm.Scale, "noise scale")
	fs.IntVar(&g.Fbm.Octaves, "octaves", g.Fbm.Octaves, "noise octaves")
	fs.IntVar(&c.World.Resolution, "resolution", c.World.Resolution, "heightmap cells per side")
	fs.Float64Var(&c.World.Size, "size", c.World.Size, "world size per side")
	fs.IntVar(&c.World.Structures, "structures", c.World.Structures, "number of random obstacles")
	fs.IntVar(&c.Loop.FPSLimit, "fps", c.Loop.FPSLimit, "frame rate cap, 0 for none")
	fs.Float64Var(&c.Loop.MaxFrameDelta, "max-dt", c.Loop.MaxFrameDelta, "largest simulation step in seconds")
	fs.BoolVar(&c.Loop.Profiling, "profile", c.Loop.Profiling, "log per-frame timings of slow frames")
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	if err := c.Flight.Validate(); err != nil {
		return err
	}
	if c.Loop.FPSLimit < 0 {
		return fmt.Errorf("%w: fps limit %d", ErrInvalidLoop, c.Loop.FPSLimit)
	}
	if !(c.Loop.MaxFrameDelta > 0) {
		return fmt.Errorf("%w: max frame delta %g", ErrInvalidLoop, c.Loop.MaxFrameDelta)
	}
	return nil
}

// Apply pushes the loop settings into the runtime settings.
func (c *Config) Apply() {
	SetFPSLimit(c.Loop.FPSLimit)
	SetMaxFrameDelta(c.Loop.MaxFrameDelta)
	SetProfiling(c.Loop.Profiling)
}

// ParseArgs parses args into a Config. Callers may define their own flags on
// fs beforehand. When -config names a file it is loaded first and every flag
// set explicitly on the command line is applied over it. -write-config saves
// the resolved configuration.
func ParseArgs(fs *flag.FlagSet, args []string) (*Config, error) {
	path := fs.String("config", "", "JSON config file")
	dump := fs.String("write-config", "", "write the resolved config to this JSON file")
	cfg := Default()
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := resolve(fs, cfg, *path)
	if err != nil {
		return nil, err
	}
	if *dump != "" {
		if err := cfg.Save(*dump); err != nil {
			return nil, fmt.Errorf("write config: %w", err)
		}
	}
	return cfg, nil
}

func resolve(fs *flag.FlagSet, cfg *Config, path string) (*Config, error) {
	if path == "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	loaded, err := Load(path)
	if err != nil {
		return nil, err
	}
	overrides := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
	loaded.Bind(overrides)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if overrides.Lookup(f.Name) == nil || setErr != nil {
			return
		}
		setErr = overrides.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return nil, setErr
	}
	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}
