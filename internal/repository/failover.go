package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/models"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverSessionRepository serves sessions from redis and switches to the
// in-memory store while redis is failing, probing it again once a minute.
type FailoverSessionRepository struct {
	primary  domain.SessionRepository
	fallback domain.SessionRepository
	logger   *zerolog.Logger
	isDown   atomic.Bool

	mu        sync.Mutex
	lastCheck time.Time
}

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSessionRepository) markDown(err error) {
	if !r.isDown.Swap(true) {
		r.logger.Error().Err(err).Msg("Primary session repository failed, falling back to memory")
	}
	r.mu.Lock()
	r.lastCheck = time.Now()
	r.mu.Unlock()
}

func (r *FailoverSessionRepository) shouldProbe() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Since(r.lastCheck) > recoveryInterval
}

func (r *FailoverSessionRepository) GetSession(ctx context.Context, id string) (*models.SessionState, error) {
	if !r.isDown.Load() || r.shouldProbe() {
		session, err := r.primary.GetSession(ctx, id)
		if err == nil {
			if r.isDown.Swap(false) {
				r.logger.Info().Msg("Primary session repository recovered")
			}
			return session, nil
		}
		r.markDown(err)
	}

	return r.fallback.GetSession(ctx, id)
}

func (r *FailoverSessionRepository) SaveSession(ctx context.Context, session *models.SessionState) error {
	if !r.isDown.Load() {
		err := r.primary.SaveSession(ctx, session)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SaveSession(ctx, session)
}

func (r *FailoverSessionRepository) DeleteSession(ctx context.Context, id string) error {
	// both stores may hold a copy after a failover
	_ = r.fallback.DeleteSession(ctx, id)
	if !r.isDown.Load() {
		err := r.primary.DeleteSession(ctx, id)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return nil
}

func (r *FailoverSessionRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}
