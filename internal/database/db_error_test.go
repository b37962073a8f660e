package database

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_ErrorPaths(t *testing.T) {
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	db.Close()

	ctx := context.Background()

	t.Run("RecordAudit", func(t *testing.T) {
		assert.Error(t, db.RecordAudit(ctx, &models.AuditEntry{Action: "x", Actor: "y"}))
	})

	t.Run("ListAudit", func(t *testing.T) {
		_, err := db.ListAudit(ctx, 5)
		assert.Error(t, err)
	})

	t.Run("CreateSyncTask", func(t *testing.T) {
		assert.Error(t, db.CreateSyncTask(ctx, &models.SyncTask{}))
	})

	t.Run("GetPendingSyncTasks", func(t *testing.T) {
		_, err := db.GetPendingSyncTasks(ctx, 10)
		assert.Error(t, err)
	})

	t.Run("UpdateSyncTaskStatus", func(t *testing.T) {
		assert.Error(t, db.UpdateSyncTaskStatus(ctx, 1, SyncStatusFailed, "boom", nil))
	})

	t.Run("Purge", func(t *testing.T) {
		_, err := db.PurgeCompletedSyncTasks(ctx, time.Now())
		assert.Error(t, err)
	})
}
