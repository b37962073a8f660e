package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Randidu/event-management-system/internal/models"
)

type memorySession struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process. Sessions are stored
// serialized so callers never share a pointer with the store.
type MemorySessionRepository struct {
	sessions   sync.Map
	rateLimits sync.Map
	mu         sync.Mutex
	ttl        time.Duration
	now        func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl: ttl,
		now: time.Now,
	}
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, id string) (*models.SessionState, error) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, nil
	}
	entry := val.(memorySession)
	if r.ttl > 0 && r.now().After(entry.expiresAt) {
		r.sessions.Delete(id)
		return nil, nil
	}

	var session models.SessionState
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *MemorySessionRepository) SaveSession(ctx context.Context, session *models.SessionState) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	r.sessions.Store(session.ID, memorySession{data: data, expiresAt: r.now().Add(r.ttl)})
	return nil
}

func (r *MemorySessionRepository) DeleteSession(ctx context.Context, id string) error {
	r.sessions.Delete(id)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemorySessionRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	val, ok := r.rateLimits.Load(key)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(key, entry)
	return entry.count <= limit, nil
}
