// Package backend owns the single connection handle to the remote
// relational store. The handle is constructed explicitly and passed down;
// it is rebuilt only when the user replaces the saved credentials, and the
// previous connection is simply dropped.
package backend

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/diewo77/orcafacil/internal/db"
	"github.com/diewo77/orcafacil/internal/settings"
)

// ErrNaoConfigurado is returned while no credentials are saved and no
// fallback DSN was provided. Handlers translate it to a 503.
var ErrNaoConfigurado = errors.New("backend_not_configured")

type Handle struct {
	mu          sync.RWMutex
	conn        *gorm.DB
	store       settings.Store
	fallbackDSN string
	dial        func(dsn string) (*gorm.DB, error)
}

func New(store settings.Store, fallbackDSN string) *Handle {
	return &Handle{store: store, fallbackDSN: fallbackDSN, dial: db.Connect}
}

// NewWithConn wraps an already-open connection (tests use sqlite here).
func NewWithConn(conn *gorm.DB) *Handle {
	return &Handle{conn: conn, store: settings.NewMemStore()}
}

// SetDialer overrides the connect function. Tests use it to observe whether
// a network attempt was made.
func (h *Handle) SetDialer(dial func(dsn string) (*gorm.DB, error)) { h.dial = dial }

// DB returns the current connection, dialing lazily on first use.
func (h *Handle) DB() (*gorm.DB, error) {
	h.mu.RLock()
	if h.conn != nil {
		defer h.mu.RUnlock()
		return h.conn, nil
	}
	h.mu.RUnlock()
	return h.rebuild()
}

// Rebuild replaces the connection from the currently saved credentials.
// Called after the user changes the settings. The previous connection is
// dropped before dialing, so a failed dial leaves the handle without a
// connection instead of silently serving the old backend.
func (h *Handle) Rebuild() error {
	h.Drop()
	_, err := h.rebuild()
	return err
}

// Drop discards the current connection, if any. Called when the saved
// credentials are cleared or replaced.
func (h *Handle) Drop() {
	h.mu.Lock()
	had := h.conn != nil
	h.conn = nil
	h.mu.Unlock()
	if had {
		logrus.Info("backend connection dropped")
	}
}

func (h *Handle) rebuild() (*gorm.DB, error) {
	dsn, err := h.resolveDSN()
	if err != nil {
		return nil, err
	}
	conn, err := h.dial(dsn)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.conn = conn
	h.mu.Unlock()
	return conn, nil
}

func (h *Handle) resolveDSN() (string, error) {
	creds, err := h.store.Get()
	if err != nil {
		return "", err
	}
	if creds.Configured() {
		return db.DSNFromCredentials(creds.URL, creds.Key), nil
	}
	if h.fallbackDSN != "" {
		return h.fallbackDSN, nil
	}
	return "", ErrNaoConfigurado
}

// Configured reports whether credentials are saved or a fallback DSN exists.
func (h *Handle) Configured() bool {
	creds, err := h.store.Get()
	if err != nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return creds.Configured() || h.fallbackDSN != "" || h.conn != nil
}
