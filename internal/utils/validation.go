package utils

import (
	"net/mail"
	"strings"
)

const (
	maxEmailLen  = 254
	maxNameLen   = 80
	minPasswdLen = 6
	maxPasswdLen = 80
)

// ValidEmail reports whether s is a single plain address, no display name.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxEmailLen {
		return false
	}

	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func ValidName(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= maxNameLen
}

func ValidPassword(s string) bool {
	return len(s) >= minPasswdLen && len(s) <= maxPasswdLen
}
