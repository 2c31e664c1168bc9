package directory

import (
	"context"
	"sync"
	"time"

	"attendance-tracker/internal/models"
)

// MemoryStore keeps employees in process. Records come back in insertion
// order and callers always receive copies.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*models.Employee
	order []string
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*models.Employee),
		now:  time.Now,
	}
}

func (s *MemoryStore) FindByIdentity(_ context.Context, employeeID string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.byID[employeeID]
	if !ok {
		return nil, models.ErrEmployeeNotFound
	}
	out := emp.Clone()
	return &out, nil
}

func (s *MemoryStore) Create(_ context.Context, emp models.Employee) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[emp.EmployeeID]; exists {
		return nil, models.ErrDuplicateIdentity
	}
	return s.insert(emp), nil
}

func (s *MemoryStore) Upsert(_ context.Context, emp models.Employee) (*models.Employee, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[emp.EmployeeID]
	if !ok {
		return s.insert(emp), true, nil
	}
	existing.MailID = emp.MailID
	existing.Name = emp.Name
	existing.Team = emp.Team
	existing.MobileNumber = emp.MobileNumber
	existing.UpdatedAt = s.now()

	out := existing.Clone()
	return &out, false, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Employee, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.byID[id].Clone())
	}
	return list, nil
}

func (s *MemoryStore) AppendSubmission(_ context.Context, employeeID, date string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.byID[employeeID]
	if !ok {
		return nil, models.ErrEmployeeNotFound
	}
	if emp.HasSubmission(date) {
		return nil, models.ErrDuplicateSubmission
	}
	emp.Submissions = append(emp.Submissions, date)
	emp.UpdatedAt = s.now()

	out := emp.Clone()
	return &out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }

// insert must be called with the write lock held.
func (s *MemoryStore) insert(emp models.Employee) *models.Employee {
	now := s.now()
	stored := emp.Clone()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byID[stored.EmployeeID] = &stored
	s.order = append(s.order, stored.EmployeeID)

	out := stored.Clone()
	return &out
}
