package store

import (
	"errors"
	"testing"
)

func TestCheckReadOnly(t *testing.T) {
	for _, query := range []string{
		"SELECT * FROM locations",
		"  select id from buildings;",
		"WITH x AS (SELECT 1) SELECT * FROM x",
		"-- count\nSELECT COUNT(*) FROM connections",
	} {
		if err := CheckReadOnly(query); err != nil {
			t.Errorf("CheckReadOnly(%q) = %v, want nil", query, err)
		}
	}

	for _, query := range []string{
		"DELETE FROM sources",
		"DROP TABLE locations",
		"SELECT 1; DELETE FROM sources",
		"",
	} {
		if err := CheckReadOnly(query); !errors.Is(err, ErrWriteQuery) {
			t.Errorf("CheckReadOnly(%q) = %v, want ErrWriteQuery", query, err)
		}
	}
}
