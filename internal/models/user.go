package models

import (
	"time"
)

// OnlineWindow is how recently a user must have been active to count as online.
const OnlineWindow = 5 * time.Minute

type User struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar"`
	LastAccess time.Time `json:"last_access"`
}

// IsOnline reports whether the user was active within OnlineWindow of now.
// Presence is always derived from last_access, never stored as a flag.
func (u User) IsOnline(now time.Time) bool {
	return now.Sub(u.LastAccess) < OnlineWindow
}
