package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Randidu/event-management-system/internal/models"
)

const defaultAuditLimit = 50

func (db *DB) RecordAudit(ctx context.Context, entry *models.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var bookingID sql.NullInt64
	if entry.BookingID != 0 {
		bookingID = sql.NullInt64{Int64: entry.BookingID, Valid: true}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO audit_log (action, booking_id, actor, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.Action, bookingID, entry.Actor, entry.Detail, entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.ID = id
	return nil
}

// ListAudit returns the newest entries first.
func (db *DB) ListAudit(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, action, booking_id, actor, detail, created_at
         FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.AuditEntry, 0, limit)
	for rows.Next() {
		var (
			e         models.AuditEntry
			bookingID sql.NullInt64
			detail    sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Action, &bookingID, &e.Actor, &detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.BookingID = bookingID.Int64
		e.Detail = detail.String
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (db *DB) GetAuditEntry(ctx context.Context, id int64) (*models.AuditEntry, error) {
	var (
		e         models.AuditEntry
		bookingID sql.NullInt64
		detail    sql.NullString
	)
	err := db.QueryRowContext(ctx,
		`SELECT id, action, booking_id, actor, detail, created_at FROM audit_log WHERE id = ?`, id,
	).Scan(&e.ID, &e.Action, &bookingID, &e.Actor, &detail, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit entry: %w", err)
	}
	e.BookingID = bookingID.Int64
	e.Detail = detail.String
	return &e, nil
}
