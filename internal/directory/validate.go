package directory

import (
	"strconv"
	"strings"

	"attendance-tracker/internal/models"
)

// Validator checks, and may canonicalize, a profile before it is written.
type Validator func(emp *models.Employee) error

// OtherTeam is the escape choice of a constrained team list; the free-text
// team name is stored in its place.
const OtherTeam = "Others"

// RequireProfileFields rejects a profile missing mailId, name or team.
func RequireProfileFields() Validator {
	return func(emp *models.Employee) error {
		if emp.MailID == "" {
			return models.NewValidationError("mailId", "is required")
		}
		if emp.Name == "" {
			return models.NewValidationError("name", "is required")
		}
		if emp.Team == "" {
			return models.NewValidationError("team", "is required")
		}
		return nil
	}
}

// MailDomain requires mailId to end with suffix, e.g. "@example.com".
func MailDomain(suffix string) Validator {
	suffix = strings.ToLower(strings.TrimSpace(suffix))
	return func(emp *models.Employee) error {
		if suffix == "" {
			return nil
		}
		mail := strings.ToLower(emp.MailID)
		if !strings.HasSuffix(mail, suffix) || len(mail) == len(suffix) {
			return models.NewValidationError("mailId", "must end with "+suffix)
		}
		return nil
	}
}

// MobileDigits requires mobileNumber to be exactly n decimal digits.
func MobileDigits(n int) Validator {
	return func(emp *models.Employee) error {
		if len(emp.MobileNumber) != n {
			return models.NewValidationError("mobileNumber", "must be exactly "+strconv.Itoa(n)+" digits")
		}
		for _, r := range emp.MobileNumber {
			if r < '0' || r > '9' {
				return models.NewValidationError("mobileNumber", "must be exactly "+strconv.Itoa(n)+" digits")
			}
		}
		return nil
	}
}

// TeamSet canonicalizes the spelling of a known team. Any other non-empty
// name is accepted as a free-text "Others" team, but the bare escape value
// itself is rejected.
func TeamSet(teams ...string) Validator {
	known := make(map[string]string, len(teams))
	for _, t := range teams {
		t = strings.TrimSpace(t)
		if t != "" {
			known[strings.ToLower(t)] = t
		}
	}
	return func(emp *models.Employee) error {
		if len(known) == 0 || emp.Team == "" {
			return nil
		}
		if strings.EqualFold(emp.Team, OtherTeam) {
			return models.NewValidationError("team", "must name the team when "+OtherTeam+" is chosen")
		}
		if canonical, ok := known[strings.ToLower(emp.Team)]; ok {
			emp.Team = canonical
		}
		return nil
	}
}
