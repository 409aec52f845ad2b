package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/novaplay/novaplay/internal/catalog"
	"github.com/novaplay/novaplay/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

//go:embed games.json
var defaultGames []byte

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	data := defaultGames
	if path := config.GetEnv("NOVAPLAY_GAMES_FILE", ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Fatal("failed to read games file", "path", path, "err", err)
		}
		data = b
	}
	games, err := catalog.Decode(data)
	var recErr *catalog.RecordError
	if errors.As(err, &recErr) {
		for _, r := range recErr.Skipped {
			log.Warn("catalog record skipped", "index", r.Index, "err", r.Err)
		}
	} else if err != nil {
		log.Fatal("invalid games file", "err", err)
	}

	addr := net.JoinHostPort(host, port)
	log.Info("starting web server", "addr", "http://"+addr, "games", len(games))
	if err := http.ListenAndServe(addr, newHandler(sshHost, games)); err != nil {
		log.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page and the catalog in both shapes the
// loader accepts: a bare array at /games.json and a wrapped object at /api/games.
func newHandler(sshHost string, games []catalog.Game) http.Handler {
	if games == nil {
		games = []catalog.Game{}
	}
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("GET /games.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, games)
	})
	mux.HandleFunc("GET /api/games", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, struct {
			Games []catalog.Game `json:"games"`
		}{games})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("failed to write response", "err", err)
	}
}
