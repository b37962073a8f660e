package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisSessionRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SaveAndGetSession", func(t *testing.T) {
		session := &models.SessionState{
			ID:   "abc",
			Lang: "si",
			Tickets: &models.TicketsState{
				Phase:  "loaded",
				Store:  []models.Booking{{ID: 1, Status: models.BookingConfirmed}},
				Filter: models.TicketFilter{Search: "john"},
				Page:   2,
			},
			TempData: map[string]interface{}{"confirm": "7"},
		}

		err := repo.SaveSession(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, s.TTL(sessionKeyPrefix+"abc"))

		got, err := repo.GetSession(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "si", got.Lang)
		require.NotNil(t, got.Tickets)
		assert.Equal(t, 2, got.Tickets.Page)
		assert.Equal(t, "john", got.Tickets.Filter.Search)
		assert.Equal(t, int64(1), got.Tickets.Store[0].ID)
		assert.Equal(t, "7", got.GetString("confirm"))
	})

	t.Run("GetMissingSession", func(t *testing.T) {
		got, err := repo.GetSession(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ExpiredSession", func(t *testing.T) {
		require.NoError(t, repo.SaveSession(ctx, &models.SessionState{ID: "old"}))
		s.FastForward(time.Hour + time.Second)

		got, err := repo.GetSession(ctx, "old")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DeleteSession", func(t *testing.T) {
		require.NoError(t, repo.SaveSession(ctx, &models.SessionState{ID: "gone"}))

		err := repo.DeleteSession(ctx, "gone")
		require.NoError(t, err)

		got, _ := repo.GetSession(ctx, "gone")
		assert.Nil(t, got)
	})

	t.Run("CorruptSession", func(t *testing.T) {
		require.NoError(t, s.Set(sessionKeyPrefix+"bad", "{not json"))
		_, err := repo.GetSession(ctx, "bad")
		assert.Error(t, err)
	})

	t.Run("RateLimit", func(t *testing.T) {
		key := "tg:789"
		limit := 2
		window := time.Second

		allowed, err := repo.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.False(t, allowed)

		s.FastForward(window + time.Millisecond)

		allowed, err = repo.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		repo := NewRedisSessionRepository(nil, time.Hour)
		_, err := repo.GetSession(ctx, "abc")
		assert.ErrorIs(t, err, ErrNoClient)
		assert.ErrorIs(t, Ping(ctx, nil), ErrNoClient)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, client))
	})

	t.Run("Close", func(t *testing.T) {
		assert.NoError(t, Close(client))
	})
}
