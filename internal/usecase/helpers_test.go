package usecase

import (
	"context"
	"strconv"
	"strings"
)

// memStore is an in-memory RowStore used by the use case tests. It
// understands the handful of A1-notation shapes the use cases emit.
type memStore struct {
	sheets  map[string][][]string
	appends int
}

func newMemStore() *memStore {
	return &memStore{sheets: map[string][][]string{}}
}

func splitRange(rng string) (sheet, spec string) {
	sheet, spec, _ = strings.Cut(rng, "!")
	return sheet, spec
}

// cellRef reads "B2" into (col 1, row 2); missing digits read row 0.
func cellRef(cell string) (col, row int) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A'+1)
		i++
	}
	col--
	if i < len(cell) {
		row, _ = strconv.Atoi(cell[i:])
	}
	return col, row
}

func (m *memStore) GetRange(_ context.Context, rng string) ([][]string, error) {
	sheet, spec := splitRange(rng)
	start, end, hasEnd := strings.Cut(spec, ":")
	startCol, startRow := cellRef(start)
	endCol, endRow := -1, -1
	if hasEnd {
		endCol, endRow = cellRef(end)
	}
	if startRow == 0 {
		startRow = 1
	}

	var out [][]string
	for i, row := range m.sheets[sheet] {
		pos := i + 1
		if pos < startRow || (endRow > 0 && pos > endRow) {
			continue
		}
		if startCol >= len(row) {
			out = append(out, nil)
			continue
		}
		last := len(row) - 1
		if endCol >= 0 && endCol < last {
			last = endCol
		}
		out = append(out, row[startCol:last+1])
	}
	return out, nil
}

func (m *memStore) Clear(_ context.Context, rng string) error {
	sheet, _ := splitRange(rng)
	m.sheets[sheet] = nil
	return nil
}

func (m *memStore) Update(_ context.Context, rng string, values [][]string) error {
	sheet, spec := splitRange(rng)
	start, _, _ := strings.Cut(spec, ":")
	_, startRow := cellRef(start)
	if startRow == 0 {
		startRow = 1
	}

	rows := m.sheets[sheet]
	for i, row := range values {
		pos := startRow + i
		for len(rows) < pos {
			rows = append(rows, nil)
		}
		rows[pos-1] = row
	}
	m.sheets[sheet] = rows
	return nil
}

func (m *memStore) Append(_ context.Context, rng string, rows [][]string) error {
	sheet, _ := splitRange(rng)
	m.sheets[sheet] = append(m.sheets[sheet], rows...)
	m.appends++
	return nil
}

func (m *memStore) EnsureSheet(_ context.Context, _ string) error {
	return nil
}
