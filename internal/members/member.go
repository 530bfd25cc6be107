// Package members is a sample domain wired through every handler pipeline.
// A member has a name, an email address, an optional age and a short bio;
// the domain derives the email domain on creation and update.
package members

import (
	"strings"

	"github.com/JaimeStill/entity-handlers/pkg/entity"
)

// Field limits enforced by the validators.
const (
	MaxNameLength = 100
	MaxBioLength  = 500
	MinAge        = 0
	MaxAge        = 150
)

// Member is the domain representation.
type Member struct {
	Name        string
	Email       string
	Age         int
	Bio         string
	EmailDomain string
}

// Record is the storage representation.
type Record struct {
	entity.Record
	Name        string `json:"name"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	Bio         string `json:"bio"`
	EmailDomain string `json:"email_domain"`
}

// Matches reports whether the name or email contains search, ignoring case.
func (r *Record) Matches(search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(r.Name), s) ||
		strings.Contains(strings.ToLower(r.Email), s)
}

// View is the output representation.
type View struct {
	entity.Output
	Name        string `json:"name"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	Bio         string `json:"bio,omitempty"`
	EmailDomain string `json:"email_domain"`
}

// CreateCommand registers a new member.
type CreateCommand struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// UpdateCommand changes the fields it sets. Nil fields are left unchanged.
type UpdateCommand struct {
	entity.Command
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

// DeleteCommand removes a member.
type DeleteCommand struct {
	entity.Command
}

// GetQuery loads one member.
type GetQuery struct {
	entity.Query
}

// ListQuery loads a page of members, optionally filtered by name or email.
type ListQuery struct {
	entity.PagedQuery
	Filter *string `json:"filter,omitempty"`
}

func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}
