package postgres

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"wayfinder/internal/store"
)

// RunSQL executes a read-only statement. params["1"] binds to $1 and so on.
func (c *Client) RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if err := store.CheckReadOnly(query); err != nil {
		return nil, err
	}

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

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}
	defer rows.Close()

	fieldDescriptions := rows.FieldDescriptions()
	results := make([]map[string]any, 0)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("getting row values: %w", err)
		}

		row := make(map[string]any, len(fieldDescriptions))
		for i, fd := range fieldDescriptions {
			row[fd.Name] = values[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sql rows: %w", err)
	}

	return results, nil
}
