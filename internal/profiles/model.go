package profiles

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrProfileNotFound is returned when no profile matches the given id.
var ErrProfileNotFound = errors.New("profiles: profile not found")

// Profile is a user or family-member health profile. It feeds the
// health-tips prompt mode and is otherwise plain row-level data.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender,omitempty"`
	BloodType   string    `json:"blood_type,omitempty"`
	Conditions  []string  `json:"conditions,omitempty"`
	Medications []string  `json:"medications,omitempty"`
	Allergies   []string  `json:"allergies,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Describe renders the profile as plain key/value lines for prompt building.
func (p *Profile) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", p.Name)
	fmt.Fprintf(&b, "age: %d\n", p.Age)
	if p.Gender != "" {
		fmt.Fprintf(&b, "gender: %s\n", p.Gender)
	}
	if p.BloodType != "" {
		fmt.Fprintf(&b, "blood type: %s\n", p.BloodType)
	}
	if len(p.Conditions) > 0 {
		fmt.Fprintf(&b, "conditions: %s\n", strings.Join(p.Conditions, ", "))
	}
	if len(p.Medications) > 0 {
		fmt.Fprintf(&b, "medications: %s\n", strings.Join(p.Medications, ", "))
	}
	if len(p.Allergies) > 0 {
		fmt.Fprintf(&b, "allergies: %s\n", strings.Join(p.Allergies, ", "))
	}
	return strings.TrimSpace(b.String())
}

// UpsertProfileRequest carries the writable profile fields.
type UpsertProfileRequest struct {
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	BloodType   string   `json:"blood_type"`
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
	Allergies   []string `json:"allergies"`
}

// Validate checks required fields.
func (r *UpsertProfileRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("profiles: name is required")
	}
	if r.Age < 0 || r.Age > 130 {
		return fmt.Errorf("profiles: age %d out of range", r.Age)
	}
	return nil
}
