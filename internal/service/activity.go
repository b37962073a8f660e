package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/events"
	"github.com/Randidu/event-management-system/internal/models"

	"github.com/rs/zerolog"
)

const handlerTimeout = 5 * time.Second

// ActivityService turns tickets view events into audit entries and Sheets mirror tasks.
type ActivityService struct {
	audit        domain.AuditStore
	sheetsWorker domain.SyncWorker
	logger       *zerolog.Logger
}

// NewActivityService accepts a nil audit store or worker when that sink is disabled.
func NewActivityService(audit domain.AuditStore, sheetsWorker domain.SyncWorker, logger *zerolog.Logger) *ActivityService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &ActivityService{audit: audit, sheetsWorker: sheetsWorker, logger: logger}
}

func (s *ActivityService) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingDeleted, s.onBookingDeleted)
	bus.Subscribe(events.EventTicketsExported, s.onTicketsExported)
	bus.Subscribe(events.EventTicketsLoaded, s.onTicketsLoaded)
}

// Recent returns the newest audit entries, or none when auditing is off.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	if s.audit == nil {
		return []*models.AuditEntry{}, nil
	}
	return s.audit.ListAudit(ctx, limit)
}

func (s *ActivityService) onBookingDeleted(ev *events.Event) error {
	var p events.BookingDeletedPayload
	if err := ev.Decode(&p); err != nil {
		return fmt.Errorf("decode %s: %w", ev.Type, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	s.record(ctx, &models.AuditEntry{
		Action:    models.AuditBookingDeleted,
		BookingID: p.BookingID,
		Actor:     p.Actor,
		Detail:    fmt.Sprintf("%s / %s / %s (%s)", p.UserName, p.UserEmail, p.EventTitle, p.Status),
		CreatedAt: p.DeletedAt,
	})
	s.enqueue(ctx, models.SyncTaskDeleteTicket, p.BookingID, nil)
	return nil
}

func (s *ActivityService) onTicketsExported(ev *events.Event) error {
	var p events.TicketsExportedPayload
	if err := ev.Decode(&p); err != nil {
		return fmt.Errorf("decode %s: %w", ev.Type, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	s.record(ctx, &models.AuditEntry{
		Action:    models.AuditTicketsExport,
		Actor:     p.Actor,
		Detail:    fmt.Sprintf("%s, %d rows, %s", p.FileName, p.Count, p.Format),
		CreatedAt: p.At,
	})
	return nil
}

func (s *ActivityService) onTicketsLoaded(ev *events.Event) error {
	if s.sheetsWorker == nil {
		return nil
	}
	var p events.TicketsLoadedPayload
	if err := ev.Decode(&p); err != nil {
		return fmt.Errorf("decode %s: %w", ev.Type, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	bookings := p.Bookings
	if bookings == nil {
		bookings = []models.Booking{}
	}
	s.enqueue(ctx, models.SyncTaskReplaceTickets, 0, bookings)
	return nil
}

func (s *ActivityService) record(ctx context.Context, entry *models.AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.RecordAudit(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", entry.Action).Int64("booking_id", entry.BookingID).Msg("audit record error")
	}
}

func (s *ActivityService) enqueue(ctx context.Context, taskType string, bookingID int64, payload interface{}) {
	if s.sheetsWorker == nil {
		return
	}
	if err := s.sheetsWorker.EnqueueTask(ctx, taskType, bookingID, payload); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", bookingID).Str("task", taskType).Msg("sheets enqueue error")
	}
}
