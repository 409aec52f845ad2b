package catalog

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Loader tries its sources in order and keeps the first non-empty catalog.
type Loader struct {
	Sources []Source
	Logger  *log.Logger

	mu        sync.Mutex
	observers []observer
	nextID    int
}

type observer struct {
	id int
	fn func(count int)
}

// NewLoader returns a Loader over sources. A nil logger discards warnings.
func NewLoader(logger *log.Logger, sources ...Source) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{Sources: sources, Logger: logger}
}

// OnLoaded registers fn to receive the number of games after every Load. fn is
// called on the goroutine running Load. The returned func unregisters fn.
func (l *Loader) OnLoaded(fn func(count int)) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.observers = append(l.observers, observer{id: id, fn: fn})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, o := range l.observers {
			if o.id == id {
				l.observers = append(l.observers[:i:i], l.observers[i+1:]...)
				return
			}
		}
	}
}

// Load returns the games of the first source that yields a non-empty catalog.
// Later sources are not contacted. Failing sources are logged as warnings; when
// every source fails the catalog is empty. Load never returns an error.
func (l *Loader) Load(ctx context.Context) []Game {
	games := l.load(ctx)
	l.mu.Lock()
	observers := append([]observer(nil), l.observers...)
	l.mu.Unlock()
	for _, o := range observers {
		o.fn(len(games))
	}
	return games
}

func (l *Loader) load(ctx context.Context) []Game {
	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	for _, src := range l.Sources {
		if ctx.Err() != nil {
			logger.Warn("catalog load cancelled", "err", ctx.Err())
			return nil
		}
		games, err := src.Fetch(ctx)
		var recErr *RecordError
		if len(games) > 0 && errors.As(err, &recErr) {
			for _, r := range recErr.Skipped {
				logger.Warn("catalog record skipped", "source", src.Name(), "index", r.Index, "err", r.Err)
			}
			err = nil
		}
		if err != nil {
			logger.Warn("catalog source failed", "source", src.Name(), "err", err)
			continue
		}
		logger.Info("games loaded", "source", src.Name(), "count", len(games))
		return games
	}
	logger.Warn("no catalog source answered", "sources", len(l.Sources))
	return nil
}
