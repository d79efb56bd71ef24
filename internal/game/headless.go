package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"heli-sim/internal/input"
)

// Script drives the input manager before each headless frame.
type Script func(frame int, in *input.Manager)

// RunFixed steps the session frames times at a fixed dt without a window or
// wall clock. observe, when set, sees the pose after every step.
func RunFixed(s *Session, dt float64, frames int, script Script, observe func(frame int, p Pose)) Pose {
	for i := 0; i < frames; i++ {
		if script != nil {
			script(i, s.Input)
		}
		s.Step(dt)
		if observe != nil {
			observe(i, s.Pose())
		}
	}
	return s.Pose()
}

// ErrBadScript is returned for a malformed input script.
var ErrBadScript = errors.New("bad input script")

type scriptSpan struct {
	action     input.Action
	start, end int
}

// ParseScript reads a comma separated list of "action:start-end" spans,
// e.g. "thrust:0-120,yaw-left:60-90". Each action is held for frames
// start <= f < end; an empty end holds it to the end of the run.
func ParseScript(s string) (Script, error) {
	var spans []scriptSpan
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rng, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q lacks a frame range", ErrBadScript, part)
		}
		action, ok := input.ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown action %q", ErrBadScript, name)
		}
		from, to, _ := strings.Cut(rng, "-")
		start, err := strconv.Atoi(from)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadScript, part, err)
		}
		end := math.MaxInt
		if to != "" {
			if end, err = strconv.Atoi(to); err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrBadScript, part, err)
			}
		}
		if start < 0 || end < start {
			return nil, fmt.Errorf("%w: %q: empty range", ErrBadScript, part)
		}
		spans = append(spans, scriptSpan{action: action, start: start, end: end})
	}

	return func(frame int, in *input.Manager) {
		var held [input.ActionCount]bool
		for _, s := range spans {
			if frame >= s.start && frame < s.end {
				held[s.action] = true
			}
		}
		for a := range input.ActionCount {
			if held[a] {
				in.Press(a)
			} else {
				in.Release(a)
			}
		}
	}, nil
}
