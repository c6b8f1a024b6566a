package models

import (
	"time"

	"github.com/google/uuid"
)

// Member is a registered user of the network. Profile fields are plain
// strings; empty means unset.
type Member struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Company         string    `json:"company"`
	Position        string    `json:"position"`
	Location        string    `json:"location"`
	ProfileComplete bool      `json:"profile_complete"`
	CreatedAt       time.Time `json:"created_at"`
}

// RefreshProfileComplete recomputes the derived flag: true iff first
// name, last name, company, position and location are all set.
func (m *Member) RefreshProfileComplete() {
	m.ProfileComplete = m.FirstName != "" &&
		m.LastName != "" &&
		m.Company != "" &&
		m.Position != "" &&
		m.Location != ""
}
