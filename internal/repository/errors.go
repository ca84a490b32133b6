package repository

import "strings"

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Neither the mysql nor the sqlite driver exposes a portable typed error for
// this through gorm, so match on the driver messages.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // mysql error 1062
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}
