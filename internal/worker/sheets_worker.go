package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Randidu/event-management-system/internal/database"
	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/metrics"
	"github.com/Randidu/event-management-system/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	redisQueueKey = "ems:sheets:queue"
	deadLetterKey = "ems:sheets:deadletter"
)

// sheetTaskPayload is persisted in SyncTask.Payload as JSON.
type sheetTaskPayload struct {
	BookingID int64            `json:"booking_id,omitempty"`
	Bookings  []models.Booking `json:"bookings,omitempty"`
}

// SheetsWorker consumes sync_queue tasks and applies them to the Tickets sheet.
type SheetsWorker struct {
	db           *database.DB
	sheets       domain.SheetsWriter
	redis        *redis.Client
	retryPolicy  RetryPolicy
	queue        chan models.SyncTask
	pollInterval time.Duration
	batchSize    int
	logger       *zerolog.Logger
}

var _ domain.SyncWorker = (*SheetsWorker)(nil)

func NewSheetsWorker(db *database.DB, sheets domain.SheetsWriter, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *SheetsWorker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &SheetsWorker{
		db:           db,
		sheets:       sheets,
		redis:        redisClient,
		retryPolicy:  retry.withDefaults(),
		queue:        make(chan models.SyncTask, 128),
		pollInterval: 2 * time.Second,
		batchSize:    20,
		logger:       logger,
	}
}

// EnqueueTask persists the task and schedules it via redis, falling back to
// the in-memory queue. Tasks that fit neither are picked up by polling.
func (w *SheetsWorker) EnqueueTask(ctx context.Context, taskType string, bookingID int64, payload interface{}) error {
	var p sheetTaskPayload
	switch taskType {
	case models.SyncTaskReplaceTickets:
		bookings, ok := payload.([]models.Booking)
		if !ok {
			return fmt.Errorf("replace_tickets expects []models.Booking, got %T", payload)
		}
		p.Bookings = bookings
	case models.SyncTaskDeleteTicket:
		if bookingID == 0 {
			return errors.New("booking id is required")
		}
		p.BookingID = bookingID
	case "":
		return errors.New("task type is required")
	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	payloadBytes, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	task := models.SyncTask{
		TaskType:  taskType,
		BookingID: bookingID,
		Payload:   string(payloadBytes),
		Status:    database.SyncStatusPending,
	}
	if err := w.db.CreateSyncTask(ctx, &task); err != nil {
		return fmt.Errorf("persist sync task: %w", err)
	}

	if w.redis != nil {
		if err := w.pushRedis(ctx, task); err != nil {
			w.logger.Warn().Err(err).Int64("task_id", task.ID).Msg("Redis push failed, using memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- task:
	default:
		w.logger.Warn().Int64("task_id", task.ID).Msg("Memory queue full, task left to polling")
	}
	return nil
}

// Start runs the worker loop until ctx is done.
func (w *SheetsWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("Sheets worker started")
	defer w.logger.Info().Msg("Sheets worker stopped")

	for {
		if ctx.Err() != nil {
			return
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, &t)
			continue
		}

		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, &t)
			continue
		}

		tasks, err := w.db.GetPendingSyncTasks(ctx, w.batchSize)
		if err != nil {
			w.logger.Error().Err(err).Msg("Failed to fetch pending sync tasks")
		}
		if err != nil || len(tasks) == 0 {
			if !w.wait(ctx) {
				return
			}
			continue
		}

		for i := range tasks {
			w.processTask(ctx, &tasks[i])
		}
	}
}

func (w *SheetsWorker) wait(ctx context.Context) bool {
	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (w *SheetsWorker) tryLocalQueue() (models.SyncTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return models.SyncTask{}, false
	}
}

func (w *SheetsWorker) tryRedis(ctx context.Context) (models.SyncTask, bool) {
	if w.redis == nil {
		return models.SyncTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, redisQueueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.logger.Warn().Err(err).Msg("Redis BRPOP failed")
		}
		return models.SyncTask{}, false
	}
	if len(res) != 2 {
		return models.SyncTask{}, false
	}
	var task models.SyncTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.logger.Error().Err(err).Msg("Failed to decode redis task")
		return models.SyncTask{}, false
	}
	return task, true
}

func (w *SheetsWorker) processTask(ctx context.Context, task *models.SyncTask) {
	payload, err := decodePayload(task.Payload)
	if err != nil {
		w.failTask(ctx, task, fmt.Errorf("decode payload: %w", err))
		return
	}

	if err := w.handleSheetTask(ctx, task.TaskType, payload); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	metrics.IncSheetsTask(task.TaskType, "completed")
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, database.SyncStatusCompleted, "", nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Failed to mark task completed")
	}
}

func (w *SheetsWorker) handleSheetTask(ctx context.Context, taskType string, payload sheetTaskPayload) error {
	switch taskType {
	case models.SyncTaskReplaceTickets:
		return w.sheets.ReplaceTicketsSheet(ctx, payload.Bookings)
	case models.SyncTaskDeleteTicket:
		if payload.BookingID == 0 {
			return errors.New("booking id missing")
		}
		return w.sheets.DeleteTicketRow(ctx, payload.BookingID)
	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}
}

func (w *SheetsWorker) retryOrFail(ctx context.Context, task *models.SyncTask, cause error) {
	attempt := task.RetryCount + 1
	if w.retryPolicy.Exhausted(attempt) {
		w.failTask(ctx, task, cause)
		return
	}

	metrics.IncSheetsTask(task.TaskType, "retry")
	next := time.Now().Add(w.retryPolicy.NextDelay(attempt))
	w.logger.Warn().Err(cause).Int64("task_id", task.ID).Int("attempt", attempt).Time("next_retry_at", next).Msg("Sheets task failed, scheduling retry")
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, database.SyncStatusRetry, cause.Error(), &next); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Failed to mark task for retry")
	}
}

func (w *SheetsWorker) failTask(ctx context.Context, task *models.SyncTask, cause error) {
	metrics.IncSheetsTask(task.TaskType, "failed")
	w.logger.Error().Err(cause).Int64("task_id", task.ID).Str("task", task.TaskType).Msg("Sheets task failed permanently")
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, database.SyncStatusFailed, cause.Error(), nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Failed to mark task failed")
	}
	w.pushDeadLetter(ctx, task)
}

func decodePayload(raw string) (sheetTaskPayload, error) {
	var payload sheetTaskPayload
	err := json.Unmarshal([]byte(raw), &payload)
	return payload, err
}

func (w *SheetsWorker) pushRedis(ctx context.Context, task models.SyncTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, redisQueueKey, data).Err()
}

func (w *SheetsWorker) pushDeadLetter(ctx context.Context, task *models.SyncTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Failed to encode dead letter")
		return
	}
	if err := w.redis.LPush(ctx, deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Dead letter push failed")
	}
}
