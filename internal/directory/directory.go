// Package directory holds one record per employee, keyed by canonical
// identity. Profile writes are last-write-wins.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"attendance-tracker/internal/identity"
	"attendance-tracker/internal/models"
)

type Options struct {
	Timeout    time.Duration
	Validators []Validator
}

type Directory struct {
	store      Store
	validators []Validator
	timeout    time.Duration
	lg         *slog.Logger
}

func New(store Store, lg *slog.Logger, opts Options) *Directory {
	return &Directory{
		store:      store,
		validators: opts.Validators,
		timeout:    opts.Timeout,
		lg:         lg,
	}
}

// Store exposes the backing store to collaborators that need its narrower
// operations, such as the submission ledger.
func (d *Directory) Store() Store {
	return d.store
}

func (d *Directory) FindByIdentity(ctx context.Context, rawID string) (*models.Employee, error) {
	id, err := identity.Normalize(rawID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := WithTimeout(ctx, d.timeout)
	defer cancel()

	return d.store.FindByIdentity(ctx, id)
}

func (d *Directory) Create(ctx context.Context, emp models.Employee) (*models.Employee, error) {
	if err := d.prepare(&emp); err != nil {
		return nil, err
	}
	emp.Submissions = []string{}

	ctx, cancel := WithTimeout(ctx, d.timeout)
	defer cancel()

	created, err := d.store.Create(ctx, emp)
	if err != nil {
		if !errors.Is(err, models.ErrDuplicateIdentity) {
			d.lg.Error("create employee failed", slog.String("employee_id", emp.EmployeeID), slog.Any("error", err))
		}
		return nil, err
	}

	d.lg.Info("employee created", slog.String("employee_id", created.EmployeeID))
	return created, nil
}

// Upsert creates the employee when absent, otherwise overwrites mailId,
// name, team and mobileNumber. The created flag tells the two apart.
func (d *Directory) Upsert(ctx context.Context, emp models.Employee) (*models.Employee, bool, error) {
	if err := d.prepare(&emp); err != nil {
		return nil, false, err
	}
	emp.Submissions = nil

	ctx, cancel := WithTimeout(ctx, d.timeout)
	defer cancel()

	saved, created, err := d.store.Upsert(ctx, emp)
	if err != nil {
		return nil, false, fmt.Errorf("upsert employee %s: %w", emp.EmployeeID, err)
	}
	return saved, created, nil
}

func (d *Directory) ListAll(ctx context.Context) ([]models.Employee, error) {
	ctx, cancel := WithTimeout(ctx, d.timeout)
	defer cancel()

	list, err := d.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Employee{}
	}
	return list, nil
}

func (d *Directory) Ping(ctx context.Context) error {
	ctx, cancel := WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.store.Ping(ctx)
}

// prepare canonicalizes the id, trims profile fields and runs the validators
// in order, stopping at the first failure.
func (d *Directory) prepare(emp *models.Employee) error {
	id, err := identity.Normalize(emp.EmployeeID)
	if err != nil {
		return err
	}
	emp.EmployeeID = id
	emp.MailID = strings.TrimSpace(emp.MailID)
	emp.Name = strings.TrimSpace(emp.Name)
	emp.Team = strings.TrimSpace(emp.Team)
	emp.MobileNumber = strings.TrimSpace(emp.MobileNumber)

	for _, v := range d.validators {
		if err := v(emp); err != nil {
			return err
		}
	}
	return nil
}
