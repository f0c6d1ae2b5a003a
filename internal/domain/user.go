package domain

import "time"

// DefaultRole роль, которую получают все пользователи из файла
const DefaultRole = "admin"

// User authenticated admin user
type User struct {
	Username string
	Role     string
}

// Session server-side login session
type Session struct {
	Token     string
	User      User
	ExpiresAt time.Time
}

// IsExpired returns true if the session is no longer valid at now
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
