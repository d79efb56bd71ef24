package config

import (
	"sync"

	"heli-sim/internal/profiling"
)

// RuntimeSettings holds the loop settings that can change while running
type RuntimeSettings struct {
	mu            sync.RWMutex
	fpsLimit      int     // 0 means unlimited
	maxFrameDelta float64 // seconds
	profiling     bool
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit:      60,
	maxFrameDelta: 0.1,
}

// GetFPSLimit returns the frame rate cap, 0 when uncapped
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Values <= 0 remove the cap.
func SetFPSLimit(fps int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	// Clamp to reasonable values
	switch {
	case fps <= 0:
		fps = 0
	case fps < 15:
		fps = 15
	case fps > 500:
		fps = 500
	}

	globalRuntimeSettings.fpsLimit = fps
}

// GetMaxFrameDelta returns the largest dt handed to the simulation, in seconds
func GetMaxFrameDelta() float64 {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.maxFrameDelta
}

// SetMaxFrameDelta sets the dt clamp
func SetMaxFrameDelta(seconds float64) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if !(seconds >= 0.001) {
		seconds = 0.001
	}
	if seconds > 0.25 {
		seconds = 0.25
	}

	globalRuntimeSettings.maxFrameDelta = seconds
}

// GetProfiling returns whether per-frame profiling is on
func GetProfiling() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.profiling
}

// SetProfiling turns per-frame profiling on or off
func SetProfiling(enabled bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.profiling = enabled
	profiling.SetEnabled(enabled)
}

// ToggleProfiling flips profiling and returns the new state
func ToggleProfiling() bool {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.profiling = !globalRuntimeSettings.profiling
	profiling.SetEnabled(globalRuntimeSettings.profiling)
	return globalRuntimeSettings.profiling
}
