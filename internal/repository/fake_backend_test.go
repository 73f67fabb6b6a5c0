package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeBackend is an in-memory TabularBackend. Each table is a slice of rows;
// row 0 is the header. It mimics the spreadsheet's trust model: no row
// identity, no uniqueness, position-addressed writes.
type fakeBackend struct {
	mu         sync.Mutex
	tables     map[string][][]string
	writeCalls int
	failWrites bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{tables: make(map[string][][]string)}
}

func (f *fakeBackend) setTable(table string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = rows
}

func (f *fakeBackend) rowCount(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tables[table]) == 0 {
		return 0
	}
	return len(f.tables[table]) - 1
}

func (f *fakeBackend) ReadAllRecords(_ context.Context, table string) ([]map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.tables[table]
	if !ok {
		return nil, fmt.Errorf("table %q not found", table)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (f *fakeBackend) ReadHeader(_ context.Context, table string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.tables[table]
	if !ok || len(rows) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}
	return append([]string(nil), rows[0]...), nil
}

func (f *fakeBackend) AppendRow(_ context.Context, table string, values []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	if f.failWrites {
		return fmt.Errorf("write rejected")
	}
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprintf("%v", v)
	}
	f.tables[table] = append(f.tables[table], row)
	return nil
}

func (f *fakeBackend) WriteRange(_ context.Context, table string, startRow, startCol, _, _ int, values []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	if f.failWrites {
		return fmt.Errorf("write rejected")
	}
	rows := f.tables[table]
	if startRow < 1 || startRow > len(rows) {
		return fmt.Errorf("row %d out of range", startRow)
	}
	row := rows[startRow-1]
	for i, v := range values {
		col := startCol - 1 + i
		for col >= len(row) {
			row = append(row, "")
		}
		row[col] = fmt.Sprintf("%v", v)
	}
	rows[startRow-1] = row
	f.tables[table] = rows
	return nil
}
