package database

import (
	"context"
	"testing"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncQueueCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	task := &models.SyncTask{
		TaskType:  models.SyncTaskDeleteTicket,
		BookingID: 100,
	}

	err := db.CreateSyncTask(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, SyncStatusPending, task.Status)

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(100), tasks[0].BookingID)
	assert.Nil(t, tasks[0].LastError)

	err = db.UpdateSyncTaskStatus(ctx, tasks[0].ID, SyncStatusCompleted, "", nil)
	require.NoError(t, err)

	tasks, _ = db.GetPendingSyncTasks(ctx, 10)
	assert.Len(t, tasks, 0)

	errMsg := "quota exceeded"
	require.NoError(t, db.CreateSyncTask(ctx, &models.SyncTask{
		TaskType: models.SyncTaskReplaceTickets, Status: SyncStatusFailed, LastError: &errMsg,
	}))
	failed, err := db.GetFailedSyncTasks(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "quota exceeded", *failed[0].LastError)

	task2 := &models.SyncTask{TaskType: models.SyncTaskDeleteTicket, BookingID: 102}
	require.NoError(t, db.CreateSyncTask(ctx, task2))

	nextRetry := time.Now().Add(time.Hour)
	require.NoError(t, db.UpdateSyncTaskStatus(ctx, task2.ID, SyncStatusRetry, "temporary error", &nextRetry))

	tasks, _ = db.GetPendingSyncTasks(ctx, 10)
	for _, task := range tasks {
		assert.NotEqual(t, task2.ID, task.ID, "task with future retry should not be pending")
	}

	pastRetry := time.Now().Add(-time.Hour)
	require.NoError(t, db.UpdateSyncTaskStatus(ctx, task2.ID, SyncStatusRetry, "temporary error", &pastRetry))
	tasks, _ = db.GetPendingSyncTasks(ctx, 10)
	found := false
	for _, task := range tasks {
		if task.ID == task2.ID {
			found = true
			assert.Equal(t, 2, task.RetryCount)
		}
	}
	assert.True(t, found)

	assert.ErrorIs(t, db.UpdateSyncTaskStatus(ctx, 9999, SyncStatusCompleted, "", nil), ErrNotFound)
}

func TestPurgeCompletedSyncTasks(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	task := &models.SyncTask{TaskType: models.SyncTaskReplaceTickets}
	require.NoError(t, db.CreateSyncTask(ctx, task))
	require.NoError(t, db.UpdateSyncTaskStatus(ctx, task.ID, SyncStatusCompleted, "", nil))

	n, err := db.PurgeCompletedSyncTasks(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
