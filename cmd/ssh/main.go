package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/novaplay/novaplay/internal/catalog"
	"github.com/novaplay/novaplay/internal/config"
	"github.com/novaplay/novaplay/internal/draw"
	"github.com/novaplay/novaplay/internal/field"
	"github.com/novaplay/novaplay/internal/loop"
	"github.com/novaplay/novaplay/internal/ui"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultCatalogURL  = "http://localhost:8080/"
)

// site holds what every session shares.
type site struct {
	loader *catalog.Loader
	field  field.Config
}

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	catalogURL := config.GetEnv("NOVAPLAY_CATALOG_URL", defaultCatalogURL)
	if lvl, err := log.ParseLevel(config.GetEnv("NOVAPLAY_LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}
	log.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "catalog", catalogURL)

	sources, err := catalog.DefaultSources(catalogURL, nil)
	if err != nil {
		log.Fatal("invalid catalog url", "err", err)
	}
	s := &site{
		loader: catalog.NewLoader(log.Default(), sources...),
		field:  field.DefaultConfig(),
	}
	s.field.ParticleCount = config.GetEnvInt("NOVAPLAY_PARTICLES", s.field.ParticleCount)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			s.routeMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY so pointer reports are not batched
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

// routeMiddleware sends "ssh host games" straight to the catalog browser and
// every other session to the home page.
func (s *site) routeMiddleware(next ssh.Handler) ssh.Handler {
	catalogHandler := bm.Middleware(s.catalogModel)(next)
	return func(sess ssh.Session) {
		if cmd := sess.Command(); len(cmd) == 1 && cmd[0] == "games" {
			catalogHandler(sess)
			return
		}
		s.homeSession(sess)
		next(sess)
	}
}

func (s *site) catalogModel(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	m := ui.New(sess.Context(), s.loader, bm.MakeRenderer(sess))
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *site) homeSession(sess ssh.Session) {
	pty, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
		return
	}

	logger := log.With("user", sess.User())
	logger.Info("new session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

	tracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
	go func() {
		for win := range winCh {
			tracker.update(win.Width, win.Height)
		}
	}()

	cfg := s.field
	opts := loop.Options{
		TermSizeFunc: tracker.getSize,
		Loader:       s.loader,
		Field:        &cfg,
		Logger:       logger,
		Renderer:     bm.MakeRenderer(sess),
	}
	if err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, opts); err != nil && sess.Context().Err() == nil {
		logger.Error("session error", "err", err)
	}
	logger.Info("session ended")
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
