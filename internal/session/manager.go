// Package session maps browser sessions to their search-criteria stores.
//
// Each session ID (a random UUID carried in a cookie) owns one
// store.Session. Sessions are held in memory only. Idle sessions are
// evicted by Sweep, and the least recently used session is evicted when
// the configured capacity is reached.
package session

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/roster/pkg/store"
)

// DefaultMaxSessions bounds the number of live sessions.
const DefaultMaxSessions = 10000

// Manager owns the live sessions.
type Manager struct {
	mu sync.Mutex

	sessions map[string]*list.Element
	// Front = most recently used.
	lru *list.List

	maxSessions int
	base        *slog.Logger
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	active      prometheus.Gauge
}

type entry struct {
	id       string
	stores   *store.Session
	lastSeen time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for the manager and the stores it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.base = logger
		}
	}
}

// WithMaxSessions sets the capacity. Zero or less disables the limit.
func WithMaxSessions(n int) Option {
	return func(m *Manager) {
		m.maxSessions = n
	}
}

// WithRegistry registers the active-sessions gauge with reg instead of the
// default registerer.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(m *Manager) {
		m.active = newActiveGauge(reg)
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func newActiveGauge(reg prometheus.Registerer) prometheus.Gauge {
	return promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Namespace: "roster",
		Subsystem: "session",
		Name:      "active",
		Help:      "Number of live sessions",
	})
}

// NewManager creates an empty manager. Without WithRegistry the gauge is
// left unregistered.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions:    make(map[string]*list.Element),
		lru:         list.New(),
		maxSessions: DefaultMaxSessions,
		base:        slog.Default(),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.active == nil {
		m.active = newActiveGauge(nil)
	}
	m.logger = m.base.With("component", "session_manager")
	return m
}

// Get returns the stores for id and marks the session as used.
func (m *Manager) Get(id string) (*store.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	m.touch(el)
	return el.Value.(*entry).stores, true
}

// Create starts a new session and returns its ID.
func (m *Manager) Create() (string, *store.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked()
}

// GetOrCreate returns the session for id, creating a fresh one under a new
// ID when id is empty or unknown. The returned ID is the one to hand back
// to the client.
func (m *Manager) GetOrCreate(id string) (string, *store.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if el, ok := m.sessions[id]; ok {
			m.touch(el)
			return id, el.Value.(*entry).stores, false
		}
	}
	newID, sess := m.createLocked()
	return newID, sess, true
}

// Touch marks a session as used without returning it. It reports whether
// the session is still live. Long-lived connections call it to keep their
// session from being swept.
func (m *Manager) Touch(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.sessions[id]
	if !ok {
		return false
	}
	m.touch(el)
	return true
}

// Remove drops a session. It reports whether the session existed.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.sessions[id]
	if !ok {
		return false
	}
	m.removeLocked(el)
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts every session idle for longer than maxIdle and returns the
// number evicted.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	evicted := 0
	// Oldest entries sit at the back.
	for el := m.lru.Back(); el != nil; {
		e := el.Value.(*entry)
		if !e.lastSeen.Before(cutoff) {
			break
		}
		prev := el.Prev()
		m.removeLocked(el)
		evicted++
		el = prev
	}
	if evicted > 0 {
		m.logger.Debug("swept idle sessions", "evicted", evicted, "remaining", len(m.sessions))
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(maxIdle)
		}
	}
}

func (m *Manager) createLocked() (string, *store.Session) {
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		if el := m.lru.Back(); el != nil {
			m.logger.Warn("session capacity reached, evicting least recently used",
				"session_id", el.Value.(*entry).id, "max", m.maxSessions)
			m.removeLocked(el)
		}
	}

	id := m.newID()
	e := &entry{
		id:       id,
		stores:   store.NewSession(m.base),
		lastSeen: m.now(),
	}
	m.sessions[id] = m.lru.PushFront(e)
	m.active.Set(float64(len(m.sessions)))
	m.logger.Debug("session created", "session_id", id)
	return id, e.stores
}

func (m *Manager) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	m.lru.Remove(el)
	delete(m.sessions, e.id)
	m.active.Set(float64(len(m.sessions)))
}

func (m *Manager) touch(el *list.Element) {
	el.Value.(*entry).lastSeen = m.now()
	m.lru.MoveToFront(el)
}
