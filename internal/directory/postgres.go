package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"attendance-tracker/internal/models"
)

const employeeColumns = `employee_id, mail_id, name, team, mobile_number, submissions, created_at, updated_at`

// PostgresStore keeps employees in the employees table; submissions live in
// a text[] column so the conditional append is a single UPDATE.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

func (s *PostgresStore) FindByIdentity(ctx context.Context, employeeID string) (*models.Employee, error) {
	emp, err := scanEmployee(s.Pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE employee_id=$1`, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrEmployeeNotFound
		}
		return nil, pgStoreErr("find employee", err)
	}
	return emp, nil
}

func (s *PostgresStore) Create(ctx context.Context, emp models.Employee) (*models.Employee, error) {
	created, err := scanEmployee(s.Pool.QueryRow(ctx, `
		INSERT INTO employees (employee_id, mail_id, name, team, mobile_number, submissions)
		VALUES ($1, $2, $3, $4, $5, '{}')
		RETURNING `+employeeColumns,
		emp.EmployeeID, emp.MailID, emp.Name, emp.Team, emp.MobileNumber))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateIdentity
		}
		return nil, pgStoreErr("insert employee", err)
	}
	return created, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, emp models.Employee) (*models.Employee, bool, error) {
	var (
		out      models.Employee
		inserted bool
	)
	// xmax is 0 only on a freshly inserted row version.
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO employees (employee_id, mail_id, name, team, mobile_number, submissions)
		VALUES ($1, $2, $3, $4, $5, '{}')
		ON CONFLICT (employee_id) DO UPDATE
		SET mail_id = EXCLUDED.mail_id,
		    name = EXCLUDED.name,
		    team = EXCLUDED.team,
		    mobile_number = EXCLUDED.mobile_number,
		    updated_at = NOW()
		RETURNING `+employeeColumns+`, (xmax = 0) AS inserted`,
		emp.EmployeeID, emp.MailID, emp.Name, emp.Team, emp.MobileNumber,
	).Scan(&out.EmployeeID, &out.MailID, &out.Name, &out.Team, &out.MobileNumber,
		&out.Submissions, &out.CreatedAt, &out.UpdatedAt, &inserted)
	if err != nil {
		return nil, false, pgStoreErr("upsert employee", err)
	}
	if out.Submissions == nil {
		out.Submissions = []string{}
	}
	return &out, inserted, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at ASC`)
	if err != nil {
		return nil, pgStoreErr("list employees", err)
	}
	defer rows.Close()

	list := make([]models.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, pgStoreErr("scan employee", err)
		}
		list = append(list, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, pgStoreErr("list employees", err)
	}
	return list, nil
}

func (s *PostgresStore) AppendSubmission(ctx context.Context, employeeID, date string) (*models.Employee, error) {
	emp, err := scanEmployee(s.Pool.QueryRow(ctx, `
		UPDATE employees
		SET submissions = array_append(submissions, $2::text), updated_at = NOW()
		WHERE employee_id = $1 AND NOT ($2::text = ANY(submissions))
		RETURNING `+employeeColumns, employeeID, date))
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, pgStoreErr("append submission", err)
	}

	// No row matched: either the employee is missing or the date is taken.
	var exists bool
	if err := s.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id=$1)`, employeeID).Scan(&exists); err != nil {
		return nil, pgStoreErr("check employee", err)
	}
	if !exists {
		return nil, models.ErrEmployeeNotFound
	}
	return nil, models.ErrDuplicateSubmission
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.Pool.Ping(ctx); err != nil {
		return pgStoreErr("ping", err)
	}
	return nil
}

func (s *PostgresStore) Close(context.Context) error {
	s.Pool.Close()
	return nil
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var emp models.Employee
	if err := row.Scan(&emp.EmployeeID, &emp.MailID, &emp.Name, &emp.Team, &emp.MobileNumber,
		&emp.Submissions, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return nil, err
	}
	if emp.Submissions == nil {
		emp.Submissions = []string{}
	}
	return &emp, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// pgStoreErr marks connectivity failures as ErrStorageUnavailable so callers
// can tell them from query errors.
func pgStoreErr(op string, err error) error {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %s: %w", models.ErrStorageUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
