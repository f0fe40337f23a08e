// Command formation-term runs the game in a terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/simukka/starship-formation/session"
)

func main() {
	opts := session.RegisterFlags(flag.CommandLine)
	hold := flag.Duration("hold", 150*time.Millisecond, "How long a key counts as held after its last repeat")
	logPath := flag.String("log", "formation.log", "Log file (the terminal is busy drawing)")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := session.Open(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	holds := newKeyHolds(*hold)
	paint := newPainter(screen)
	start := time.Now()

	frame := func() {
		now := time.Now()
		for drained := false; !drained; {
			select {
			case ev := <-events:
				handleEvent(ev, s, holds, screen, now)
			default:
				drained = true
			}
		}
		holds.release(s.Input, now)

		s.Overlay.UpdateFPS(float64(now.Sub(start).Milliseconds()))
		scene := s.Game.Scene()
		s.Overlay.AppendTo(&scene, s.Game)
		paint.draw(scene)
	}

	interval := time.Duration(s.Game.Config.Timing.Step * float64(time.Second))
	if err := s.Loop.Run(ctx, interval, frame); err != nil && err != context.Canceled {
		log.Printf("[game] loop ended: %v", err)
	}
}

func handleEvent(ev tcell.Event, s *session.Session, holds *keyHolds, screen tcell.Screen, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			s.Loop.Stop()
			return
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == '`' {
			s.Overlay.Toggle()
			return
		}
		if c, ok := control(ev); ok {
			holds.press(s.Input, c, now)
		}
	case *tcell.EventResize:
		screen.Sync()
	}
}
