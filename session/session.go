// Package session assembles a playable game for the native shells: config,
// seed, score chain, input tracker and fixed-step loop.
package session

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/simukka/starship-formation/common"
	"github.com/simukka/starship-formation/game"
	"github.com/simukka/starship-formation/highscore"
)

// AppName names the app-data directory scores are kept in.
const AppName = "starship-formation"

// Options are the command-line settings shared by every native shell.
type Options struct {
	ConfigPath string
	Seed       uint
	ScoresPath string
	ServerURL  string
	Debug      bool
}

// RegisterFlags binds the options to fs.
func RegisterFlags(fs *flag.FlagSet) *Options {
	o := &Options{}
	fs.StringVar(&o.ConfigPath, "config", "", "YAML file overriding the default tuning")
	fs.UintVar(&o.Seed, "seed", 0, "Random seed (0 picks one from the clock)")
	fs.StringVar(&o.ScoresPath, "scores", "", "Local score file (defaults to app data)")
	fs.StringVar(&o.ServerURL, "server", "", "Score server endpoint, e.g. http://localhost:8080/api/scores")
	fs.BoolVar(&o.Debug, "debug", false, "Log simulation debug lines")
	return o
}

// Session is a game wired to its loop and input.
type Session struct {
	Game    *game.Game
	Loop    *game.Loop
	Input   *game.InputTracker
	Scores  *highscore.Manager
	Overlay *game.StatsOverlay
	Seed    uint32
}

// Open builds a session from o. Score stores that cannot be opened are
// skipped; the table then falls back to its defaults.
func Open(ctx context.Context, o *Options) (*Session, error) {
	game.EnableDebug = o.Debug

	cfg := game.DefaultConfig()
	if o.ConfigPath != "" {
		loaded, err := game.LoadConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	seed := uint32(o.Seed)
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}

	scores := highscore.NewManager(highscore.DefaultCapacity, Stores(o)...)
	scores.Load(ctx)

	g, err := game.NewGame(cfg, common.NewSeededRNG(seed), scores)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	tracker := &game.InputTracker{}
	s := &Session{
		Game:    g,
		Input:   tracker,
		Scores:  scores,
		Overlay: game.NewStatsOverlay(),
		Seed:    seed,
	}
	s.Loop = game.NewLoop(cfg.Timing.Step, cfg.Timing.MaxFrame, func(dt float64) {
		g.Update(dt, tracker.Next())
	})
	log.Printf("[game] session ready, seed %d, scores from %s", seed, scores.Source())
	return s, nil
}

// Stores returns the score chain for o: the server first when set, then the
// local file or app-data store.
func Stores(o *Options) []highscore.Store {
	var stores []highscore.Store
	if o.ServerURL != "" {
		stores = append(stores, highscore.NewHTTPStore(o.ServerURL))
	}
	if o.ScoresPath != "" {
		return append(stores, highscore.NewFileStore(o.ScoresPath))
	}
	data, err := highscore.OpenGdataStore(AppName)
	if err != nil {
		log.Printf("[HighScores] Warning: %v", err)
		return stores
	}
	return append(stores, data)
}

// Close waits for pending score saves.
func (s *Session) Close() {
	s.Loop.Stop()
	s.Scores.Wait()
}
