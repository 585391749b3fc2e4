package user

import (
	"strings"
	"time"

	"expensetracker/internal"
)

type UpdateProfileDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
}

func (d *UpdateProfileDTO) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" {
		return internal.NewValidationError("Please provide first name and last name", internal.ErrCodeValidationFailed)
	}
	if d.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", d.BirthDate); err != nil {
			return internal.NewValidationError("Birth date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

// ParsedBirthDate returns the birth date or nil when not supplied.
// Call Validate first.
func (d *UpdateProfileDTO) ParsedBirthDate() *time.Time {
	if d.BirthDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", d.BirthDate)
	if err != nil {
		return nil
	}
	return &t
}
