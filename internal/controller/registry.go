package controller

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/career-readiness/internal/metrics"
	"go.uber.org/zap"
)

// Factory builds the controller for a session.
type Factory func(sessionID string) *Controller

// Registry owns one controller per live session and expires idle ones.
type Registry struct {
	factory Factory
	idleTTL time.Duration
	logger  *zap.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
	onExpire    func(sessionID string)
}

// NewRegistry creates a registry. A zero idleTTL disables expiry.
func NewRegistry(factory Factory, idleTTL time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		factory:     factory,
		idleTTL:     idleTTL,
		logger:      logger,
		controllers: make(map[string]*Controller),
	}
}

// OnExpire registers a hook called for each session removed by Sweep.
func (r *Registry) OnExpire(fn func(sessionID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onExpire = fn
}

// Get returns the controller for a session, creating and initializing it on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Controller, error) {
	r.mu.Lock()
	c, ok := r.controllers[sessionID]
	if !ok {
		c = r.factory(sessionID)
		r.controllers[sessionID] = c
		metrics.ActiveSessions.Inc()
	}
	r.mu.Unlock()

	if !c.Ready() {
		if err := c.Init(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Remove discards a session's controller.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.controllers[sessionID]; ok {
		delete(r.controllers, sessionID)
		metrics.ActiveSessions.Dec()
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Sweep removes controllers idle longer than the TTL as of now and returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	var expired []string
	for id, c := range r.controllers {
		if now.Sub(c.LastActive()) > r.idleTTL {
			expired = append(expired, id)
			delete(r.controllers, id)
		}
	}
	onExpire := r.onExpire
	r.mu.Unlock()

	for _, id := range expired {
		metrics.ActiveSessions.Dec()
		if onExpire != nil {
			onExpire(id)
		}
	}
	if len(expired) > 0 {
		r.logger.Info("expired idle sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps on every interval tick until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}
