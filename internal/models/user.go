package models

import "time"

// Risk preference levels selectable on a user profile.
const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
)

// ValidRiskPreference reports whether p is a known risk preference.
func ValidRiskPreference(p string) bool {
	switch p {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// User represents a registered account. Handlers never serialize this
// struct directly; they build response maps without the password hash.
type User struct {
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"password_hash"`
	RiskPreference string    `json:"risk_preference"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}
