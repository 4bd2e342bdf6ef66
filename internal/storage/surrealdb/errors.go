package surrealdb

import "strings"

// isNotFoundError reports whether a SurrealDB error means the record or table does not exist.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}
