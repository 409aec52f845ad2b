package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/novaplay/novaplay/internal/catalog"
	"github.com/novaplay/novaplay/internal/config"
	"github.com/novaplay/novaplay/internal/field"
	"github.com/novaplay/novaplay/internal/loop"
)

const defaultCatalogURL = "http://localhost:8080/"

func main() {
	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	loader, err := newLoader(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid catalog url: %v\n", err)
		os.Exit(1)
	}

	cfg := field.DefaultConfig()
	cfg.ParticleCount = config.GetEnvInt("NOVAPLAY_PARTICLES", cfg.ParticleCount)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Loader:         loader,
		Field:          &cfg,
		Logger:         logger,
		StartInCatalog: len(os.Args) > 1 && os.Args[1] == "games",
	}
	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(ctx, reader, os.Stdout, opts); err != nil && ctx.Err() == nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "novaplay: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the file named by NOVAPLAY_LOG; the terminal belongs to
// the page, so logs are discarded when it is unset.
func newLogger() (*log.Logger, func(), error) {
	var out io.Writer = io.Discard
	closeFn := func() {}
	if path := config.GetEnv("NOVAPLAY_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	logger := log.NewWithOptions(out, log.Options{ReportTimestamp: true, Prefix: "novaplay"})
	if lvl, err := log.ParseLevel(config.GetEnv("NOVAPLAY_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, closeFn, nil
}

func newLoader(logger *log.Logger) (*catalog.Loader, error) {
	var sources []catalog.Source
	if path := config.GetEnv("NOVAPLAY_CATALOG_FILE", ""); path != "" {
		sources = append(sources, catalog.FileSource{Path: path})
	}
	remote, err := catalog.DefaultSources(config.GetEnv("NOVAPLAY_CATALOG_URL", defaultCatalogURL), nil)
	if err != nil {
		return nil, err
	}
	return catalog.NewLoader(logger, append(sources, remote...)...), nil
}
