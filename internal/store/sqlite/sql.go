package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"wayfinder/internal/store"
)

// RunSQL executes a read-only statement. Positional parameters are passed as
// params["1"], params["2"] and so on.
func (c *Client) RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if err := store.CheckReadOnly(query); err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, positionalArgs(params)...)
	if err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns: %w", err)
	}

	results := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sql rows: %w", err)
	}

	return results, nil
}

func positionalArgs(params map[string]any) []any {
	positions := make([]int, 0, len(params))
	for key := range params {
		if n, err := strconv.Atoi(key); err == nil && n > 0 {
			positions = append(positions, n)
		}
	}
	sort.Ints(positions)

	args := make([]any, 0, len(positions))
	for _, n := range positions {
		args = append(args, params[strconv.Itoa(n)])
	}
	return args
}
