package terrain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidScale   = errors.New("noise scale must be positive")
	ErrInvalidOctaves = errors.New("noise octaves must be at least 1")
)

// NoiseConfig holds the fractal noise parameters.
type NoiseConfig struct {
	Scale       float64 `json:"scale"`       // larger values give smoother, wider features
	Octaves     int     `json:"octaves"`     // number of layers
	Persistence float64 `json:"persistence"` // amplitude multiplier per octave
	Lacunarity  float64 `json:"lacunarity"`  // frequency multiplier per octave
	OffsetX     float64 `json:"offsetX"`
	OffsetY     float64 `json:"offsetY"`
}

// DefaultNoiseConfig returns the parameters the flight world ships with.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Scale:       500,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// NewNoiseConfig builds and validates a config in one step.
func NewNoiseConfig(scale float64, octaves int, persistence, lacunarity, offsetX, offsetY float64) (NoiseConfig, error) {
	cfg := NoiseConfig{
		Scale:       scale,
		Octaves:     octaves,
		Persistence: persistence,
		Lacunarity:  lacunarity,
		OffsetX:     offsetX,
		OffsetY:     offsetY,
	}
	if err := cfg.Validate(); err != nil {
		return NoiseConfig{}, err
	}
	return cfg, nil
}

// Validate rejects non-positive scale and octave counts.
func (c NoiseConfig) Validate() error {
	if !(c.Scale > 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidScale, c.Scale)
	}
	if c.Octaves < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidOctaves, c.Octaves)
	}
	return nil
}
