package surrealdb

import "strings"

// isNotFoundError reports whether err is SurrealDB's way of saying the
// record does not exist. The driver surfaces these as plain query errors
// rather than a sentinel.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no record")
}
