package store

import (
	"errors"
	"strings"
)

var ErrWriteQuery = errors.New("only read-only statements are allowed")

// CheckReadOnly rejects statements that could modify the store. Ingestion
// owns all writes.
func CheckReadOnly(query string) error {
	stmt := strings.TrimSpace(query)
	for strings.HasPrefix(stmt, "--") {
		_, rest, _ := strings.Cut(stmt, "\n")
		stmt = strings.TrimSpace(rest)
	}
	stmt = strings.TrimSuffix(stmt, ";")
	if strings.Contains(stmt, ";") {
		return ErrWriteQuery
	}

	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return ErrWriteQuery
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH", "EXPLAIN", "VALUES":
		return nil
	}
	return ErrWriteQuery
}
