package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/troopledger/troopledger/internal/common"
	"github.com/troopledger/troopledger/internal/model"
)

// SavePayment inserts a manual payment entry and fills in its assigned ID.
func (s *SQLiteStorage) SavePayment(ctx context.Context, payment *model.PaymentEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if payment == nil {
		return fmt.Errorf("payment is required")
	}
	if err := validateString(payment.Participant, "participant"); err != nil {
		return err
	}
	if payment.Amount == 0 {
		return fmt.Errorf("payment amount cannot be zero")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (participant, date, amount, method, reference)
		 VALUES (?, ?, ?, ?, ?)`,
		payment.Participant, payment.Date.UTC(), payment.Amount, payment.Method, payment.Reference)
	if err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read payment id: %w", err)
	}
	payment.ID = id
	return nil
}

// GetPayments returns all recorded payments ordered by date.
func (s *SQLiteStorage) GetPayments(ctx context.Context) ([]model.PaymentEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryPayments(ctx,
		`SELECT id, participant, date, amount, method, COALESCE(reference, '')
		 FROM payments ORDER BY date, id`)
}

// GetPaymentsByParticipant returns one participant's payments ordered by date.
func (s *SQLiteStorage) GetPaymentsByParticipant(ctx context.Context, participant string) ([]model.PaymentEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(participant, "participant"); err != nil {
		return nil, err
	}
	return s.queryPayments(ctx,
		`SELECT id, participant, date, amount, method, COALESCE(reference, '')
		 FROM payments WHERE participant = ? ORDER BY date, id`, participant)
}

// DeletePayment removes a payment entry by ID.
func (s *SQLiteStorage) DeletePayment(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) queryPayments(ctx context.Context, query string, args ...any) ([]model.PaymentEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var payments []model.PaymentEntry
	for rows.Next() {
		var payment model.PaymentEntry
		var date time.Time
		if err := rows.Scan(&payment.ID, &payment.Participant, &date,
			&payment.Amount, &payment.Method, &payment.Reference); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Date = date.UTC()
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// SetImportTime records the most recent import time for a source.
func (s *SQLiteStorage) SetImportTime(ctx context.Context, source string, at time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(source, "source"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_meta (source, imported_at) VALUES (?, ?)
		 ON CONFLICT(source) DO UPDATE SET imported_at = excluded.imported_at`,
		source, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to record import time: %w", err)
	}
	return nil
}

// GetImportTimes returns the last import time per source.
func (s *SQLiteStorage) GetImportTimes(ctx context.Context) (map[string]time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT source, imported_at FROM import_meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to query import times: %w", err)
	}
	defer func() { _ = rows.Close() }()

	times := make(map[string]time.Time)
	for rows.Next() {
		var source string
		var at time.Time
		if err := rows.Scan(&source, &at); err != nil {
			return nil, fmt.Errorf("failed to scan import time: %w", err)
		}
		times[source] = at.UTC()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import times: %w", err)
	}
	return times, nil
}
