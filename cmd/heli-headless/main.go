// Command heli-headless flies a scripted session without a window and logs
// the vehicle pose at a fixed interval.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/xlab/closer"

	"heli-sim/internal/config"
	"heli-sim/internal/game"
	"heli-sim/internal/input"
	"heli-sim/internal/profiling"
)

func main() {
	defer closer.Close()

	fs := flag.NewFlagSet("heli-headless", flag.ExitOnError)
	frames := fs.Int("frames", 600, "number of simulation steps")
	dt := fs.Float64("dt", 1.0/60, "fixed step in seconds")
	every := fs.Int("log-every", 60, "log the pose every N frames, 0 for the final pose only")
	scriptArg := fs.String("script", "thrust:0-180,yaw-left:120-240", `held actions as "action:start-end,..."`)
	cfg, err := config.ParseArgs(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("heli-headless: %v", err)
	}
	cfg.Apply()

	step := min(*dt, config.GetMaxFrameDelta())
	if step != *dt {
		log.Printf("heli-headless: dt %g clamped to %g", *dt, step)
	}

	script, err := game.ParseScript(*scriptArg)
	if err != nil {
		log.Fatalf("heli-headless: %v", err)
	}

	session, err := game.NewSession(cfg, input.NewManager())
	if err != nil {
		log.Fatalf("heli-headless: %v", err)
	}
	closer.Bind(func() {
		log.Printf("heli-headless: stopped after %d frames", session.Frames)
	})

	logPose := func(frame int, p game.Pose) {
		log.Printf("frame %5d  pos (%8.2f %8.2f %8.2f)  vel (%6.2f %6.2f %6.2f)  alt %7.2f  grounded %v",
			frame, p.Position.X(), p.Position.Y(), p.Position.Z(),
			p.Velocity.X(), p.Velocity.Y(), p.Velocity.Z(), p.Altitude, p.Grounded)
	}

	logPose(0, session.Pose())
	final := game.RunFixed(session, step, *frames, script, func(frame int, p game.Pose) {
		if *every > 0 && (frame+1)%*every == 0 {
			logPose(frame+1, p)
		}
		if profiling.Enabled() {
			if top := profiling.TopN(3); top != "" && (frame+1)%60 == 0 {
				log.Printf("frame %5d  %s", frame+1, top)
			}
			profiling.ResetFrame()
		}
	})
	if *every == 0 {
		logPose(*frames, final)
	}
}
