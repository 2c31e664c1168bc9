package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"attendance-tracker/internal/directory"
	"attendance-tracker/internal/models"
)

func newTestImporter() (*Importer, *directory.Directory) {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := directory.New(directory.NewMemoryStore(), lg, directory.Options{
		Validators: []directory.Validator{directory.RequireProfileFields()},
	})
	return New(dir, lg), dir
}

func sampleRows() []Row {
	return []Row{
		{EmployeeID: "E1", MailID: "jane.doe@example.com", Team: "Tech", MobileNumber: "9876543210"},
		{EmployeeID: "", MailID: "ghost@example.com", Team: "Tech"},
		{EmployeeID: "e3", MailID: "sam@example.com", Name: "Sam", Team: "Operations"},
	}
}

func TestImportBatchSkipsRowsWithoutID(t *testing.T) {
	im, dir := newTestImporter()
	ctx := context.Background()

	res := im.ImportBatch(ctx, sampleRows())
	if res.Added != 2 || res.Updated != 0 {
		t.Fatalf("expected 2 added 0 updated, got %+v", res)
	}
	if len(res.Errors) != 1 || !res.Partial() {
		t.Fatalf("expected one row error, got %v", res.Errors)
	}
	if !strings.HasPrefix(res.Errors[0], "row 2") {
		t.Errorf("expected error to name row 2, got %q", res.Errors[0])
	}

	emp, err := dir.FindByIdentity(ctx, "e1")
	if err != nil {
		t.Fatalf("find e1: %v", err)
	}
	if emp.Name != "jane doe" {
		t.Errorf("expected name derived from mail, got %q", emp.Name)
	}
}

func TestImportBatchIsIdempotent(t *testing.T) {
	im, _ := newTestImporter()
	ctx := context.Background()
	rows := []Row{
		{EmployeeID: "a", MailID: "a@example.com", Team: "Tech"},
		{EmployeeID: "b", MailID: "b@example.com", Team: "Tech"},
		{EmployeeID: "c", MailID: "c@example.com", Team: "Tech"},
	}

	first := im.ImportBatch(ctx, rows)
	if first.Added != 3 || first.Updated != 0 || first.Partial() {
		t.Fatalf("first pass: %+v", first)
	}
	second := im.ImportBatch(ctx, rows)
	if second.Added != 0 || second.Updated != 3 || second.Partial() {
		t.Fatalf("second pass: %+v", second)
	}
}

func TestImportBatchNormalizesIdentity(t *testing.T) {
	im, dir := newTestImporter()
	ctx := context.Background()

	res := im.ImportBatch(ctx, []Row{
		{EmployeeID: "ABC", MailID: "x@example.com", Team: "Tech"},
		{EmployeeID: " abc ", MailID: "y@example.com", Team: "Interns"},
	})
	if res.Added != 1 || res.Updated != 1 {
		t.Fatalf("expected ids differing by case to collapse, got %+v", res)
	}
	list, err := dir.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Team != "Interns" {
		t.Fatalf("expected one record with last write, got %+v", list)
	}
}

type failingUpserter struct {
	calls int
}

func (f *failingUpserter) Upsert(_ context.Context, emp models.Employee) (*models.Employee, bool, error) {
	f.calls++
	switch emp.EmployeeID {
	case "boom":
		return nil, false, models.ErrStorageUnavailable
	case "panic":
		panic("driver exploded")
	}
	return &emp, true, nil
}

func TestImportBatchContinuesAfterRowFailures(t *testing.T) {
	up := &failingUpserter{}
	im := New(up, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res := im.ImportBatch(context.Background(), []Row{
		{Line: 2, EmployeeID: "boom"},
		{Line: 3, EmployeeID: "panic"},
		{Line: 4, EmployeeID: "ok"},
	})
	if up.calls != 3 {
		t.Fatalf("expected every row attempted, got %d calls", up.calls)
	}
	if res.Added != 1 || len(res.Errors) != 2 {
		t.Fatalf("expected 1 added and 2 errors, got %+v", res)
	}
	if !strings.Contains(res.Errors[0], "row 2 (boom)") {
		t.Errorf("unexpected first error %q", res.Errors[0])
	}
}

func TestImportBatchEmpty(t *testing.T) {
	im, _ := newTestImporter()
	res := im.ImportBatch(context.Background(), nil)
	if res.Added != 0 || res.Updated != 0 || res.Errors == nil || res.Partial() {
		t.Fatalf("unexpected result for empty batch: %+v", res)
	}
}

func TestImportRowValidationError(t *testing.T) {
	im, _ := newTestImporter()
	_, err := im.importRow(context.Background(), Row{EmployeeID: "x"})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error for row without mail, got %v", err)
	}
}

func TestNameFromMail(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"jane.doe@example.com", "jane doe"},
		{"jane.m.doe@example.com", "jane m.doe"},
		{"jdoe@example.com", "jdoe"},
		{"no-at-sign", "no-at-sign"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := NameFromMail(tc.input); got != tc.expected {
			t.Errorf("NameFromMail(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
