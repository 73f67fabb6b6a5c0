package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// TabularBackend is the transport surface the store needs from the
// spreadsheet: whole-table reads and position-addressed writes. The
// gsheets client satisfies it; tests substitute an in-memory fake.
type TabularBackend interface {
	ReadAllRecords(ctx context.Context, table string) ([]map[string]string, error)
	ReadHeader(ctx context.Context, table string) ([]string, error)
	AppendRow(ctx context.Context, table string, values []any) error
	WriteRange(ctx context.Context, table string, startRow, startCol, endRow, endCol int, values []any) error
}

// Record is one sheet row keyed by trimmed column name. Records never leave
// the repository layer; entity repositories parse them into typed structs.
type Record map[string]string

// RecordStore provides generic ID-indexed create/read/update over a backend
// that has no native row identity, transactions, or uniqueness constraints.
// A single store-wide mutex serializes every read-then-write critical
// section (ID allocation, uniqueness checks, in-place updates). The lock is
// intra-process only: it does not protect against a second process or a
// human editing the spreadsheet directly, which is an accepted limitation.
type RecordStore struct {
	backend TabularBackend
	mu      sync.Mutex
}

// NewRecordStore creates a RecordStore over the given backend.
func NewRecordStore(backend TabularBackend) *RecordStore {
	return &RecordStore{backend: backend}
}

// Locked runs fn while holding the store-wide lock. Entity repositories use
// it to span their whole check-uniqueness/allocate-id/append sequences;
// finer-grained locking would let two creators race past the checks.
func (s *RecordStore) Locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// FetchAll reads every data row of the table. An empty or unreachable table
// yields an empty slice, not an error; read failures are logged and
// tolerated so dashboards render with whatever data exists.
func (s *RecordStore) FetchAll(ctx context.Context, table string) []Record {
	raw, err := s.backend.ReadAllRecords(ctx, table)
	if err != nil {
		log.Warn().Err(err).Str("table", table).Msg("Failed to read table, treating as empty")
		return nil
	}
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		rec := make(Record, len(r))
		for k, v := range r {
			rec[strings.TrimSpace(k)] = v
		}
		records = append(records, rec)
	}
	return records
}

// Append writes one row at the end of the table. Callers are responsible
// for pre-validating uniqueness before appending.
func (s *RecordStore) Append(ctx context.Context, table string, values []any) error {
	if err := s.backend.AppendRow(ctx, table, values); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrBackendWrite, err)
	}
	return nil
}

// UpdateByID overwrites the first row whose idColumn matches id, keeping
// the values of any column not present in fields. Column order follows the
// backend's current header row, not the bulk-read order. The read-locate-
// write sequence runs under the store lock; concurrently a second process
// could still interleave (last write wins).
func (s *RecordStore) UpdateByID(ctx context.Context, table, idColumn string, id int, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateByIDLocked(ctx, table, idColumn, id, fields)
}

func (s *RecordStore) updateByIDLocked(ctx context.Context, table, idColumn string, id int, fields map[string]any) error {
	records := s.FetchAll(ctx, table)
	if len(records) == 0 {
		return fmt.Errorf("%w: no data in table %s", utils.ErrNotFound, table)
	}

	matched := -1
	for i, rec := range records {
		if v, ok := numericValue(rec[idColumn]); ok && v == float64(id) {
			matched = i
			break
		}
	}
	if matched == -1 {
		return fmt.Errorf("%w: id %d not found in column %s", utils.ErrNotFound, id, idColumn)
	}

	// Physical row: 1-based, +1 for the header row.
	rowNum := matched + 2

	header, err := s.backend.ReadHeader(ctx, table)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrBackendRead, err)
	}
	if len(header) == 0 {
		return fmt.Errorf("%w: table %s has no header", utils.ErrBackendRead, table)
	}

	old := records[matched]
	row := make([]any, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if v, ok := fields[name]; ok {
			row[i] = v
		} else if v, ok := old[name]; ok {
			row[i] = v
		} else {
			row[i] = ""
		}
	}

	if err := s.backend.WriteRange(ctx, table, rowNum, 1, rowNum, len(header), row); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrBackendWrite, err)
	}
	return nil
}

// NextID returns max(existing ids)+1, or 1 when the table holds none.
// Non-numeric id cells are skipped. IDs are never reused.
func NextID(records []Record, idColumn string) int {
	max := 0
	for _, rec := range records {
		if v, ok := numericValue(rec[idColumn]); ok && int(v) > max {
			max = int(v)
		}
	}
	return max + 1
}

// numericValue coerces a sheet cell to a number for id comparison.
// Thousands separators are tolerated; anything else non-numeric is no match.
func numericValue(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
