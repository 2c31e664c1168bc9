// Package ledger records daily submissions. A date is recorded at most once
// per employee; the store enforces this with a conditional append so two
// concurrent requests for the same date cannot both succeed.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"attendance-tracker/internal/directory"
	"attendance-tracker/internal/identity"
	"attendance-tracker/internal/models"
)

// DateLayout is the DD-MM-YYYY form clients send.
const DateLayout = "02-01-2006"

type Store interface {
	FindByIdentity(ctx context.Context, employeeID string) (*models.Employee, error)
	AppendSubmission(ctx context.Context, employeeID, date string) (*models.Employee, error)
}

type Options struct {
	Timeout time.Duration
	// StrictDates rejects dates that are not valid DD-MM-YYYY calendar
	// dates. Comparison stays exact-string either way.
	StrictDates bool
}

type Ledger struct {
	store   Store
	timeout time.Duration
	strict  bool
	lg      *slog.Logger
}

func New(store Store, lg *slog.Logger, opts Options) *Ledger {
	return &Ledger{
		store:   store,
		timeout: opts.Timeout,
		strict:  opts.StrictDates,
		lg:      lg,
	}
}

// RecordSubmission appends date to the employee's submissions and returns
// the updated record. A missing employee is ErrEmployeeNotFound; no record
// is created on this path. A date already present is ErrDuplicateSubmission
// and leaves the ledger unchanged.
func (l *Ledger) RecordSubmission(ctx context.Context, rawID, date string) (*models.Employee, error) {
	id, err := identity.Normalize(rawID)
	if err != nil {
		return nil, err
	}
	if err := l.checkDate(date); err != nil {
		return nil, err
	}

	ctx, cancel := directory.WithTimeout(ctx, l.timeout)
	defer cancel()

	emp, err := l.store.AppendSubmission(ctx, id, date)
	switch {
	case err == nil:
		l.lg.Info("submission recorded", slog.String("employee_id", id), slog.String("date", date))
		return emp, nil
	case errors.Is(err, models.ErrDuplicateSubmission):
		l.lg.Info("submission already recorded", slog.String("employee_id", id), slog.String("date", date))
		return nil, err
	case errors.Is(err, models.ErrEmployeeNotFound):
		return nil, err
	default:
		l.lg.Error("record submission failed", slog.String("employee_id", id), slog.Any("error", err))
		return nil, err
	}
}

// History returns the employee's submissions in the order they were made.
func (l *Ledger) History(ctx context.Context, rawID string) ([]string, error) {
	id, err := identity.Normalize(rawID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := directory.WithTimeout(ctx, l.timeout)
	defer cancel()

	emp, err := l.store.FindByIdentity(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp.Submissions == nil {
		return []string{}, nil
	}
	return emp.Submissions, nil
}

func (l *Ledger) checkDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return models.NewValidationError("date", "is required")
	}
	if !l.strict {
		return nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return models.NewValidationError("date", "must be DD-MM-YYYY")
	}
	return nil
}
