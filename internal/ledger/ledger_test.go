package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"attendance-tracker/internal/directory"
	"attendance-tracker/internal/models"
)

func setup(t *testing.T, opts Options) (*Ledger, *directory.MemoryStore) {
	t.Helper()
	store := directory.NewMemoryStore()
	if _, err := store.Create(context.Background(), models.Employee{
		EmployeeID: "abc123", MailID: "a@example.com", Name: "A", Team: "Tech",
	}); err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, lg, opts), store
}

func TestRecordSubmissionRejectsSameDateTwice(t *testing.T) {
	l, _ := setup(t, Options{})
	ctx := context.Background()

	emp, err := l.RecordSubmission(ctx, "abc123", "01-01-2025")
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if len(emp.Submissions) != 1 {
		t.Fatalf("expected 1 submission, got %v", emp.Submissions)
	}

	_, err = l.RecordSubmission(ctx, "abc123", "01-01-2025")
	if !errors.Is(err, models.ErrDuplicateSubmission) {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}

	history, err := l.History(ctx, "abc123")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected ledger length unchanged, got %v", history)
	}
}

func TestRecordSubmissionKeepsOrder(t *testing.T) {
	l, _ := setup(t, Options{})
	ctx := context.Background()

	if _, err := l.RecordSubmission(ctx, "abc123", "02-01-2025"); err != nil {
		t.Fatalf("d1: %v", err)
	}
	emp, err := l.RecordSubmission(ctx, "ABC123", "01-01-2025")
	if err != nil {
		t.Fatalf("d2: %v", err)
	}
	if len(emp.Submissions) != 2 || emp.Submissions[0] != "02-01-2025" || emp.Submissions[1] != "01-01-2025" {
		t.Fatalf("expected [02-01-2025 01-01-2025], got %v", emp.Submissions)
	}
}

func TestRecordSubmissionComparesExactStrings(t *testing.T) {
	l, _ := setup(t, Options{})
	ctx := context.Background()

	if _, err := l.RecordSubmission(ctx, "abc123", "01-01-2025"); err != nil {
		t.Fatalf("first: %v", err)
	}
	emp, err := l.RecordSubmission(ctx, "abc123", "1-1-2025")
	if err != nil {
		t.Fatalf("differently formatted date should be distinct: %v", err)
	}
	if len(emp.Submissions) != 2 {
		t.Fatalf("expected 2 submissions, got %v", emp.Submissions)
	}
}

func TestRecordSubmissionStrictDates(t *testing.T) {
	l, _ := setup(t, Options{StrictDates: true})
	ctx := context.Background()

	for _, date := range []string{"1-1-2025", "2025-01-01", "32-01-2025", "garbage"} {
		if _, err := l.RecordSubmission(ctx, "abc123", date); !errors.Is(err, models.ErrValidation) {
			t.Errorf("date %q: expected ErrValidation, got %v", date, err)
		}
	}
	if _, err := l.RecordSubmission(ctx, "abc123", "29-02-2024"); err != nil {
		t.Errorf("valid leap date rejected: %v", err)
	}
}

func TestRecordSubmissionMissingEmployee(t *testing.T) {
	l, store := setup(t, Options{})
	ctx := context.Background()

	_, err := l.RecordSubmission(ctx, "nobody", "01-01-2025")
	if !errors.Is(err, models.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if _, err := store.FindByIdentity(ctx, "nobody"); !errors.Is(err, models.ErrEmployeeNotFound) {
		t.Fatalf("submission must not create a record, got %v", err)
	}
	if _, err := l.History(ctx, "nobody"); !errors.Is(err, models.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound from history, got %v", err)
	}
}

func TestRecordSubmissionValidatesInput(t *testing.T) {
	l, _ := setup(t, Options{})
	ctx := context.Background()

	if _, err := l.RecordSubmission(ctx, " ", "01-01-2025"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty id: expected ErrValidation, got %v", err)
	}
	if _, err := l.RecordSubmission(ctx, "abc123", ""); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty date: expected ErrValidation, got %v", err)
	}
}

func TestRecordSubmissionConcurrentSameDate(t *testing.T) {
	l, _ := setup(t, Options{})
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.RecordSubmission(ctx, "abc123", "05-05-2025"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one successful submission, got %d", succeeded)
	}
	history, err := l.History(ctx, "abc123")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected a single entry, got %v", history)
	}
}
