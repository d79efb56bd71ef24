package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/xlab/closer"

	"heli-sim/internal/config"
	"heli-sim/internal/game"
	"heli-sim/internal/input"
	"heli-sim/internal/platform"
)

func init() {
	// glfw and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	fs := flag.NewFlagSet("heli", flag.ExitOnError)
	width := fs.Int("width", 1280, "window width")
	height := fs.Int("height", 720, "window height")
	cfg, err := config.ParseArgs(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("heli: %v", err)
	}
	cfg.Apply()

	if err := platform.Init(); err != nil {
		log.Fatalf("heli: init glfw: %v", err)
	}

	in := input.NewManager()
	win, err := platform.Open(*width, *height, "heli-sim", in)
	if err != nil {
		platform.Terminate()
		log.Fatalf("heli: %v", err)
	}

	// glfw must be released on the main thread, so closer only asks the loop
	// to stop and waits until main has let go of the window
	var (
		mu       sync.Mutex
		released bool
		done     = make(chan struct{})
	)
	release := func() {
		mu.Lock()
		defer mu.Unlock()
		if released {
			return
		}
		released = true
		win.Destroy()
		platform.Terminate()
		close(done)
	}
	defer release()

	session, err := game.NewSession(cfg, in)
	if err != nil {
		release()
		log.Fatalf("heli: %v", err)
	}
	log.Printf("heli: spawned at %v (seed %d)", session.Controller.Position(), session.World.Seed())

	closer.Bind(func() {
		mu.Lock()
		if !released {
			win.SetShouldClose(true)
		}
		mu.Unlock()
		<-done
		log.Printf("heli: %d frames, final position %v", session.Frames, session.Pose().Position)
	})

	loop := game.NewLoop(session, win)
	loop.SlowFrame = time.Duration(cfg.Loop.SlowFrameMS * float64(time.Millisecond))
	loop.Run()
}
