package models

import "time"

// Employee is the single stored record per person. Profile fields are
// overwritable; Submissions only ever grows.
type Employee struct {
	EmployeeID   string    `json:"employeeId" bson:"employeeId"`
	MailID       string    `json:"mailId" bson:"mailId"`
	Name         string    `json:"name" bson:"name"`
	Team         string    `json:"team" bson:"team"`
	MobileNumber string    `json:"mobileNumber" bson:"mobileNumber"`
	Submissions  []string  `json:"submissions" bson:"submissions"` // DD-MM-YYYY, insertion order
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Clone returns a copy that does not share the submissions slice.
func (e Employee) Clone() Employee {
	out := e
	out.Submissions = append(make([]string, 0, len(e.Submissions)), e.Submissions...)
	return out
}

// HasSubmission reports whether date was already recorded (exact match).
func (e Employee) HasSubmission(date string) bool {
	for _, d := range e.Submissions {
		if d == date {
			return true
		}
	}
	return false
}

type CreateEmployeeDTO struct {
	EmployeeID   string `json:"employeeId" binding:"required"`
	MailID       string `json:"mailId"`
	Name         string `json:"name"`
	Team         string `json:"team"`
	MobileNumber string `json:"mobileNumber"`
}

func (in CreateEmployeeDTO) ToEmployee() Employee {
	return Employee{
		EmployeeID:   in.EmployeeID,
		MailID:       in.MailID,
		Name:         in.Name,
		Team:         in.Team,
		MobileNumber: in.MobileNumber,
	}
}

type SubmissionDTO struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Date       string `json:"date" binding:"required"` // DD-MM-YYYY, supplied by the client
}
