// Package session provides the demo identity and analysis storage for one browser session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-readiness/internal/store"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
)

// UserKey is the constant key under which the signed-in profile is stored.
const UserKey = "user"

// DefaultSignInLatency is the simulated identity provider delay.
const DefaultSignInLatency = 800 * time.Millisecond

// Demo identity returned by every sign-in.
const (
	DemoName  = "Demo Student"
	DemoEmail = "student@university.edu"
)

// AnalysisKey returns the storage key for a user's latest analysis.
func AnalysisKey(userID string) string {
	return "analysis_" + userID
}

// Ack acknowledges a persisted analysis.
type Ack struct {
	ID string `json:"id"`
}

// Adapter is the mock identity provider and document store.
type Adapter struct {
	kv      store.KV
	latency time.Duration
	logger  *zap.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithSignInLatency overrides the simulated sign-in delay.
func WithSignInLatency(d time.Duration) Option {
	return func(a *Adapter) { a.latency = d }
}

// WithLogger sets the adapter logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// New creates an adapter over a session-scoped store.
func New(kv store.KV, opts ...Option) *Adapter {
	a := &Adapter{
		kv:      kv,
		latency: DefaultSignInLatency,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SignIn waits the simulated latency, then stores and returns the demo profile.
func (a *Adapter) SignIn(ctx context.Context) (*types.UserProfile, error) {
	if a.latency > 0 {
		timer := time.NewTimer(a.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	user := &types.UserProfile{Name: DemoName, Email: DemoEmail}
	if err := a.put(ctx, UserKey, user); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}

	a.logger.Info("user signed in", zap.String("email", user.Email))
	return user, nil
}

// SignOut removes the stored profile. Signing out twice is a no-op.
func (a *Adapter) SignOut(ctx context.Context) error {
	if err := a.kv.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	return nil
}

// CurrentUser returns the stored profile, or nil when nobody is signed in.
func (a *Adapter) CurrentUser(ctx context.Context) (*types.UserProfile, error) {
	var user types.UserProfile
	found, err := a.get(ctx, UserKey, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// SaveAnalysis stores the insight as the user's latest analysis, replacing any previous one.
func (a *Adapter) SaveAnalysis(ctx context.Context, userID string, insight *types.ReadinessInsight) (*Ack, error) {
	if insight == nil {
		return nil, errors.New("insight is required")
	}
	if err := a.put(ctx, AnalysisKey(userID), insight); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	a.logger.Debug("analysis saved", zap.String("user_id", userID), zap.Float64("score", insight.Score))
	return &Ack{ID: uuid.NewString()}, nil
}

// GetLatestAnalysis returns the user's stored analysis, or nil when none exists.
func (a *Adapter) GetLatestAnalysis(ctx context.Context, userID string) (*types.ReadinessInsight, error) {
	var insight types.ReadinessInsight
	found, err := a.get(ctx, AnalysisKey(userID), &insight)
	if err != nil || !found {
		return nil, err
	}
	return &insight, nil
}

func (a *Adapter) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, key, string(data))
}

// get decodes the stored value into v. Undecodable values are treated as absent.
func (a *Adapter) get(ctx context.Context, key string, v any) (bool, error) {
	raw, err := a.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		a.logger.Warn("discarding unreadable stored value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}
