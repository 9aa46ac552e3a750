package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// RowStore mirrors the spreadsheet row model in Postgres so syncs can run
// against a local backend. Rows live in sheet_rows keyed by sheet title
// and 1-based position, and ranges use the same "Sheet!A1:J" notation as
// the Sheets API. Column bounds are honored on reads; clears and updates
// operate on whole rows, which is how every caller uses them.
type RowStore struct {
	DB *sql.DB
}

func NewRowStore(db *sql.DB) *RowStore {
	return &RowStore{DB: db}
}

func (s *RowStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sheet_rows (
			sheet TEXT NOT NULL,
			pos   INTEGER NOT NULL,
			cells TEXT[] NOT NULL,
			PRIMARY KEY (sheet, pos)
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure sheet_rows schema: %w", err)
	}
	return nil
}

// EnsureSheet exists to satisfy the store contract; sheets materialize on
// first write here.
func (s *RowStore) EnsureSheet(ctx context.Context, title string) error {
	return nil
}

func (s *RowStore) GetRange(ctx context.Context, rng string) ([][]string, error) {
	ref, err := parseRange(rng)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT pos, cells FROM sheet_rows WHERE sheet = $1 ORDER BY pos`, ref.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", ref.sheet, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var pos int
		var cells []string
		if err := rows.Scan(&pos, pq.Array(&cells)); err != nil {
			return nil, err
		}
		if pos < ref.startRow || (ref.endRow > 0 && pos > ref.endRow) {
			continue
		}
		out = append(out, sliceColumns(cells, ref.startCol, ref.endCol))
	}
	return out, rows.Err()
}

func (s *RowStore) Clear(ctx context.Context, rng string) error {
	ref, err := parseRange(rng)
	if err != nil {
		return err
	}

	query := `DELETE FROM sheet_rows WHERE sheet = $1 AND pos >= $2`
	args := []any{ref.sheet, ref.startRow}
	if ref.endRow > 0 {
		query += ` AND pos <= $3`
		args = append(args, ref.endRow)
	}
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}

func (s *RowStore) Update(ctx context.Context, rng string, values [][]string) error {
	ref, err := parseRange(rng)
	if err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, row := range values {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sheet_rows (sheet, pos, cells) VALUES ($1, $2, $3)
			ON CONFLICT (sheet, pos) DO UPDATE SET cells = EXCLUDED.cells`,
			ref.sheet, ref.startRow+i, pq.Array(row))
		if err != nil {
			return fmt.Errorf("update %s row %d: %w", rng, i+1, err)
		}
	}
	return tx.Commit()
}

// Append inserts rows after the current end of the sheet, preserving input
// order, never overwriting existing rows.
func (s *RowStore) Append(ctx context.Context, rng string, rows [][]string) error {
	ref, err := parseRange(rng)
	if err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRowContext(ctx,
		`SELECT GREATEST(COALESCE(MAX(pos), 0) + 1, $2) FROM sheet_rows WHERE sheet = $1`,
		ref.sheet, ref.startRow).Scan(&next)
	if err != nil {
		return fmt.Errorf("find end of sheet %q: %w", ref.sheet, err)
	}

	for i, row := range rows {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_rows (sheet, pos, cells) VALUES ($1, $2, $3)`,
			ref.sheet, next+i, pq.Array(row))
		if err != nil {
			return fmt.Errorf("append to %s: %w", rng, err)
		}
	}
	return tx.Commit()
}

// rangeRef is a parsed A1-notation range. Row/column bounds are 1-based /
// 0-based respectively; -1 means unbounded.
type rangeRef struct {
	sheet    string
	startCol int
	endCol   int
	startRow int
	endRow   int
}

func parseRange(rng string) (rangeRef, error) {
	sheet, cells, ok := strings.Cut(rng, "!")
	if !ok {
		return rangeRef{}, fmt.Errorf("range %q: missing sheet name", rng)
	}

	ref := rangeRef{sheet: sheet, startRow: 1, endRow: -1, startCol: 0, endCol: -1}

	start, end, hasEnd := strings.Cut(cells, ":")
	col, row, err := parseCell(start)
	if err != nil {
		return rangeRef{}, fmt.Errorf("range %q: %w", rng, err)
	}
	ref.startCol = col
	if row > 0 {
		ref.startRow = row
	}

	if hasEnd {
		col, row, err = parseCell(end)
		if err != nil {
			return rangeRef{}, fmt.Errorf("range %q: %w", rng, err)
		}
		ref.endCol = col
		if row > 0 {
			ref.endRow = row
		}
	}
	return ref, nil
}

// parseCell splits "B12" into column index 1 and row 12; a missing row
// part reads as 0.
func parseCell(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A'+1)
		i++
	}
	if col == 0 {
		return 0, 0, fmt.Errorf("cell %q: no column letters", cell)
	}
	col--

	if i < len(cell) {
		row, err = strconv.Atoi(cell[i:])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("cell %q: bad row number", cell)
		}
	}
	return col, row, nil
}

func sliceColumns(cells []string, start, end int) []string {
	if start >= len(cells) {
		return nil
	}
	if end < 0 || end >= len(cells) {
		return cells[start:]
	}
	return cells[start : end+1]
}
