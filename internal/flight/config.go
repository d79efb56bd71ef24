package flight

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig wraps every flight configuration error.
var ErrInvalidConfig = errors.New("invalid flight config")

// Config holds the handling and collision-response constants. Rates given
// "per frame" are calibrated against 60 Hz and scaled by dt*60 at runtime.
type Config struct {
	MouseSensitivity float64 `json:"mouseSensitivity"` // radians per pointer unit, not scaled by dt
	YawRate          float64 `json:"yawRate"`          // radians per 60 Hz frame
	RotationalLerp   float64 `json:"rotationalLerp"`   // slerp fraction per 60 Hz frame
	PitchLimit       float64 `json:"pitchLimit"`

	Thrust        float64 `json:"thrust"`
	ReverseThrust float64 `json:"reverseThrust"`
	Gravity       float64 `json:"gravity"`
	Mass          float64 `json:"mass"`
	LinearDamping float64 `json:"linearDamping"` // velocity factor per 60 Hz frame
	ForwardTilt   float64 `json:"forwardTilt"`   // thrust axis leans this far towards -Z
	Radius        float64 `json:"radius"`

	ObstacleRestitution float64 `json:"obstacleRestitution"`
	ObstacleFriction    float64 `json:"obstacleFriction"` // exponential decay rate on floor-like contacts
	FloorNormalY        float64 `json:"floorNormalY"`     // contact normals above this are floor-like
	FlatFloorNormalY    float64 `json:"flatFloorNormalY"` // contact normals above this can hold the vehicle at rest
	RestSpeed           float64 `json:"restSpeed"`

	TerrainBounce   float64 `json:"terrainBounce"`
	TerrainFriction float64 `json:"terrainFriction"` // horizontal velocity factor per terrain contact
	LiftoffUpright  float64 `json:"liftoffUpright"`
	SettleSpeed     float64 `json:"settleSpeed"`

	BoundaryRestitution float64 `json:"boundaryRestitution"`

	SpawnClearance float64 `json:"spawnClearance"` // spawn height above the terrain, excluding Radius
}

// DefaultConfig returns the stock helicopter handling.
func DefaultConfig() Config {
	return Config{
		MouseSensitivity: 0.001,
		YawRate:          0.025,
		RotationalLerp:   0.05,
		PitchLimit:       math.Pi / 2 * 0.9,

		Thrust:        17,
		ReverseThrust: 15,
		Gravity:       9.8,
		Mass:          0.8,
		LinearDamping: 0.997,
		ForwardTilt:   0.25,
		Radius:        2,

		ObstacleRestitution: 0.15,
		ObstacleFriction:    8,
		FloorNormalY:        0.5,
		FlatFloorNormalY:    0.9,
		RestSpeed:           0.5,

		TerrainBounce:   0.2,
		TerrainFriction: 0.8,
		LiftoffUpright:  0.1,
		SettleSpeed:     0.1,

		BoundaryRestitution: 0.3,

		SpawnClearance: 21.5,
	}
}

// Validate rejects values that would make the integration undefined.
func (c Config) Validate() error {
	switch {
	case !(c.Mass > 0):
		return fmt.Errorf("%w: mass %g", ErrInvalidConfig, c.Mass)
	case !(c.Radius > 0):
		return fmt.Errorf("%w: radius %g", ErrInvalidConfig, c.Radius)
	case !(c.LinearDamping > 0) || c.LinearDamping > 1:
		return fmt.Errorf("%w: linear damping %g outside (0,1]", ErrInvalidConfig, c.LinearDamping)
	case c.PitchLimit < 0 || c.PitchLimit >= math.Pi/2:
		return fmt.Errorf("%w: pitch limit %g", ErrInvalidConfig, c.PitchLimit)
	}
	return nil
}
