package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/novaplay/novaplay/internal/config"
	"github.com/novaplay/novaplay/internal/field"
	loopconfig "github.com/novaplay/novaplay/internal/loop/config"
	"github.com/novaplay/novaplay/internal/window"
)

func main() {
	cfg := field.DefaultConfig()
	cfg.ParticleCount = config.GetEnvInt("NOVAPLAY_PARTICLES", cfg.ParticleCount)

	opts := window.Options{
		Width:  config.GetEnvInt("NOVAPLAY_WIDTH", 1280),
		Height: config.GetEnvInt("NOVAPLAY_HEIGHT", 720),
		Title:  loopconfig.Title,
		Field:  cfg,
	}
	log.Info("opening window", "width", opts.Width, "height", opts.Height, "particles", cfg.ParticleCount)
	if err := window.Run(opts); err != nil {
		log.Error("window closed with error", "err", err)
		os.Exit(1)
	}
}
