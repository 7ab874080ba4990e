package domain

import "strings"

// User is a registered account. Email is the stable identity key; the
// backend-assigned ID is opaque and never used for matching logic.
type User struct {
	ID                  string   `json:"id"`
	Email               string   `json:"email"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Skills              []string `json:"skills"`
	OpenToCollaboration bool     `json:"openToCollaboration"`
}

// UserUpdate carries the mutable profile fields for a user update. Nil
// fields are left untouched by the backend.
type UserUpdate struct {
	Name                *string  `json:"name,omitempty"`
	Description         *string  `json:"description,omitempty"`
	Skills              []string `json:"skills,omitempty"`
	OpenToCollaboration *bool    `json:"openToCollaboration,omitempty"`
}

// NormalizeEmail canonicalizes an email for identity comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail reports whether two emails refer to the same identity.
func SameEmail(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}

// MatchQueryForUser builds the matchmaking query the dashboard uses for
// collaborator suggestions: the profile description when present, otherwise
// the joined skill list.
func MatchQueryForUser(user User) string {
	if q := strings.TrimSpace(user.Description); q != "" {
		return q
	}
	return strings.Join(user.Skills, ", ")
}
