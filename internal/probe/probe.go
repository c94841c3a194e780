// Package probe tracks whether the remote backend is reachable. One
// lightweight read classifies the connection; a read that succeeds with zero
// rows still means connected.
package probe

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/diewo77/orcafacil/internal/settings"
)

type Status string

const (
	StatusChecking     Status = "checking"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

// CheckFunc performs the lightweight read. It must return nil on success
// even when the table is empty.
type CheckFunc func() error

type Prober struct {
	store    settings.Store
	check    CheckFunc
	interval time.Duration

	mu       sync.RWMutex
	status   Status
	onChange func(Status)

	force chan struct{}
}

func New(store settings.Store, check CheckFunc, interval time.Duration) *Prober {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Prober{
		store:    store,
		check:    check,
		interval: interval,
		status:   StatusChecking,
		force:    make(chan struct{}, 1),
	}
}

// OnChange registers a callback invoked whenever the status flips.
func (p *Prober) OnChange(f func(Status)) {
	p.mu.Lock()
	p.onChange = f
	p.mu.Unlock()
}

func (p *Prober) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// ForceCheck signals an immediate re-probe, used right after the caller
// replaces the credentials. Non-blocking; coalesces with a pending signal.
func (p *Prober) ForceCheck() {
	select {
	case p.force <- struct{}{}:
	default:
	}
}

// CheckNow classifies the connection synchronously. Absent credentials are
// themselves sufficient for disconnected; no backend call is attempted then.
func (p *Prober) CheckNow() Status {
	creds, err := p.store.Get()
	if err != nil || !creds.Configured() {
		return p.set(StatusDisconnected)
	}
	if err := p.check(); err != nil {
		logrus.WithError(err).Debug("connection probe failed")
		return p.set(StatusDisconnected)
	}
	return p.set(StatusConnected)
}

func (p *Prober) set(s Status) Status {
	p.mu.Lock()
	changed := p.status != s
	p.status = s
	cb := p.onChange
	p.mu.Unlock()
	if changed {
		logrus.WithField("status", string(s)).Info("backend connection status")
		if cb != nil {
			cb(s)
		}
	}
	return s
}

// Run probes once, then re-probes on the interval only while connected.
// While disconnected the timer ticks are ignored; only a ForceCheck (or a
// fresh start) resumes probing. Blocks until ctx is done.
func (p *Prober) Run(ctx context.Context) {
	p.CheckNow()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.force:
			p.CheckNow()
		case <-ticker.C:
			if p.Status() == StatusConnected {
				p.CheckNow()
			}
		}
	}
}
