//go:build !js
// +build !js

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/simukka/starship-formation/highscore"
)

// indexHTML hosts the browser build. main.js is the gopherjs output of the
// root package.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Starship Formation</title>
<style>
html,body{margin:0;height:100%;background:#000;display:flex;align-items:center;justify-content:center}
canvas{image-rendering:pixelated;max-height:100vh}
</style>
</head>
<body>
<canvas id="c"></canvas>
<script src="main.js"></script>
</body>
</html>
`

// newMux wires the HTTP routes.
func newMux(scores *ScoreServer, feed *Feed, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	files := http.FileServer(http.Dir(staticDir))

	// Serve the page at root, anything else from disk
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			if _, err := os.Stat(filepath.Join(staticDir, "index.html")); err != nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Write([]byte(indexHTML))
				return
			}
		}
		files.ServeHTTP(w, r)
	})

	mux.HandleFunc("/api/scores", scores.handleScores)
	mux.HandleFunc("/api/scores/feed", feed.handleFeed)

	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"scores":    len(scores.Entries()),
			"listeners": feed.Count(),
		})
	})
	return mux
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	staticDir := flag.String("static", ".", "Directory to serve static files from")
	scoresPath := flag.String("scores", "scores.yaml", "File the shared score table is kept in")
	capacity := flag.Int("capacity", highscore.DefaultCapacity, "Number of rows in the score table")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	feed := NewFeed()
	scores := NewScoreServer(ctx, *capacity, highscore.NewFileStore(*scoresPath), feed)

	addr := fmt.Sprintf(":%d", *port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(scores, feed, *staticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	log.Printf("[server] Starship Formation server starting on http://localhost%s", addr)
	log.Printf("[server] Serving static files from: %s", *staticDir)
	log.Printf("[server] Score table: %s", *scoresPath)
	log.Printf("[server] Score feed endpoint: /api/scores/feed")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
