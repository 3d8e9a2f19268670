package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"
)

// Load bulk-inserts the four table files from dir into the store inside a
// single transaction. format is "csv" or "xlsx". Values are inserted as text
// and cast by the store against the column types, the same way the API binds
// filter values.
func Load(ctx context.Context, pool *pgxpool.Pool, dir, format string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range Tables {
		path := filepath.Join(dir, t.Name+"."+format)

		var rows [][]string
		switch format {
		case "csv":
			rows, err = readCSV(path, len(t.Columns))
		case "xlsx":
			rows, err = readXLSX(path, len(t.Columns))
		default:
			return fmt.Errorf("unsupported format %q", format)
		}
		if err != nil {
			return err
		}

		placeholders := make([]string, len(t.Columns))
		for i := range t.Columns {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			t.Name, strings.Join(t.Columns, ", "), strings.Join(placeholders, ", "))

		for _, row := range rows {
			args := make([]any, len(row))
			for i, v := range row {
				if v == "" && t.Columns[i] != "feature_usage" && t.Columns[i] != "location" {
					args[i] = nil
					continue
				}
				args[i] = v
			}
			if _, err := tx.Exec(ctx, insert, args...); err != nil {
				return fmt.Errorf("insert into %s: %w", t.Name, err)
			}
		}

		// Rows carry explicit ids, so bump the serial past the max.
		bump := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))",
			t.Name, t.Name)
		if _, err := tx.Exec(ctx, bump); err != nil {
			return fmt.Errorf("bump %s id sequence: %w", t.Name, err)
		}
	}

	return tx.Commit(ctx)
}

// Truncate empties all four tables, children first.
func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE marketing, usage_metrics, revenue, users RESTART IDENTITY CASCADE")
	return err
}

func readXLSX(path string, wantColumns int) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: missing header row", path)
	}

	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; pad back to full width.
		for len(row) < wantColumns {
			row = append(row, "")
		}
		if len(row) > wantColumns {
			return nil, fmt.Errorf("read %s: row has %d cells, want %d", path, len(row), wantColumns)
		}
		out = append(out, row)
	}
	return out, nil
}
