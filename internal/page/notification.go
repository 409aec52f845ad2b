package page

import (
	"sync"
	"time"
)

// NotificationDelay is how long after the page opens the notification appears.
const NotificationDelay = 500 * time.Millisecond

// SessionStore remembers flags for the lifetime of one visitor session.
type SessionStore interface {
	Get(key string) bool
	Set(key string)
}

// MemoryStore is a SessionStore kept in memory. The zero value is ready to use.
type MemoryStore struct {
	mu    sync.Mutex
	flags map[string]bool
}

func (m *MemoryStore) Get(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags[key]
}

func (m *MemoryStore) Set(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.flags == nil {
		m.flags = make(map[string]bool)
	}
	m.flags[key] = true
}

// Notification is a dismissible banner. Once dismissed it stays hidden for the
// rest of the session, including on later visits to the page.
type Notification struct {
	Text  string
	key   string
	store SessionStore
	at    time.Time
}

// NewNotification schedules the banner to appear NotificationDelay after
// opened, unless key is already set in store.
func NewNotification(text, key string, store SessionStore, opened time.Time) *Notification {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Notification{Text: text, key: key, store: store, at: opened.Add(NotificationDelay)}
}

// Visible reports whether the banner is shown at now.
func (n *Notification) Visible(now time.Time) bool {
	return !n.store.Get(n.key) && !now.Before(n.at)
}

// Dismiss hides the banner and records it in the session store.
func (n *Notification) Dismiss() {
	n.store.Set(n.key)
}
