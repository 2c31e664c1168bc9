package directory

import (
	"context"
	"time"

	"attendance-tracker/internal/models"
)

// Store is the persistence contract behind the Directory. Ids passed in are
// already canonical.
type Store interface {
	FindByIdentity(ctx context.Context, employeeID string) (*models.Employee, error)
	Create(ctx context.Context, emp models.Employee) (*models.Employee, error)
	// Upsert overwrites the profile fields of an existing record and leaves
	// its submissions untouched, or creates the record with none.
	Upsert(ctx context.Context, emp models.Employee) (*models.Employee, bool, error)
	ListAll(ctx context.Context) ([]models.Employee, error)
	// AppendSubmission appends date only if it is not already recorded, as
	// one atomic operation.
	AppendSubmission(ctx context.Context, employeeID, date string) (*models.Employee, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// WithTimeout bounds a store call. A non-positive d only adds cancellation.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
