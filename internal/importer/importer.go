// Package importer bulk-loads employee profiles. Each row is upserted on its
// own; a bad row is reported and skipped, never fatal to the batch.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"attendance-tracker/internal/models"
)

// Row is one employee line of an uploaded sheet. Line is the 1-based source
// line used in error messages; zero means "position in the batch".
type Row struct {
	Line         int
	EmployeeID   string
	MailID       string
	Name         string
	Team         string
	MobileNumber string
}

type Result struct {
	Added   int
	Updated int
	Errors  []string
}

// Partial reports whether some rows failed.
func (r Result) Partial() bool {
	return len(r.Errors) > 0
}

type Upserter interface {
	Upsert(ctx context.Context, emp models.Employee) (*models.Employee, bool, error)
}

type Importer struct {
	dir Upserter
	lg  *slog.Logger
}

func New(dir Upserter, lg *slog.Logger) *Importer {
	return &Importer{dir: dir, lg: lg}
}

func (im *Importer) ImportBatch(ctx context.Context, rows []Row) Result {
	res := Result{Errors: []string{}}
	for i, row := range rows {
		line := row.Line
		if line == 0 {
			line = i + 1
		}
		created, err := im.importRow(ctx, row)
		if err != nil {
			res.Errors = append(res.Errors, rowError(line, row.EmployeeID, err))
			continue
		}
		if created {
			res.Added++
		} else {
			res.Updated++
		}
	}

	im.lg.Info("employee import finished",
		slog.Int("rows", len(rows)),
		slog.Int("added", res.Added),
		slog.Int("updated", res.Updated),
		slog.Int("errors", len(res.Errors)))
	return res
}

func (im *Importer) importRow(ctx context.Context, row Row) (created bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	if strings.TrimSpace(row.EmployeeID) == "" {
		return false, models.NewValidationError("employeeId", "is missing")
	}
	name := strings.TrimSpace(row.Name)
	if name == "" {
		name = NameFromMail(row.MailID)
	}

	// Directory.Upsert normalizes the id before the lookup.
	_, created, err = im.dir.Upsert(ctx, models.Employee{
		EmployeeID:   row.EmployeeID,
		MailID:       row.MailID,
		Name:         name,
		Team:         row.Team,
		MobileNumber: row.MobileNumber,
	})
	return created, err
}

// NameFromMail derives a display name from the mail local-part, replacing
// the first dot with a space: "jane.doe@x" becomes "jane doe".
func NameFromMail(mail string) string {
	mail = strings.TrimSpace(mail)
	local, _, _ := strings.Cut(mail, "@")
	return strings.Replace(local, ".", " ", 1)
}

func rowError(line int, id string, err error) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Sprintf("row %d: %v", line, err)
	}
	return fmt.Sprintf("row %d (%s): %v", line, id, err)
}
