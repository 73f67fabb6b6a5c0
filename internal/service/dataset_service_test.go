package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindx-ops/po-dashboard/internal/repository"
)

// memBackend is an in-memory tabular backend: row 0 of each table is the
// header, the rest are data rows.
type memBackend struct {
	tables map[string][][]string
}

func newMemBackend() *memBackend {
	return &memBackend{tables: make(map[string][][]string)}
}

func (b *memBackend) ReadAllRecords(ctx context.Context, table string) ([]map[string]string, error) {
	rows, ok := b.tables[table]
	if !ok {
		return nil, fmt.Errorf("table %s not found", table)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (b *memBackend) ReadHeader(ctx context.Context, table string) ([]string, error) {
	rows, ok := b.tables[table]
	if !ok || len(rows) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}
	return rows[0], nil
}

func (b *memBackend) AppendRow(ctx context.Context, table string, values []any) error {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprint(v)
	}
	b.tables[table] = append(b.tables[table], row)
	return nil
}

func (b *memBackend) WriteRange(ctx context.Context, table string, startRow, startCol, endRow, endCol int, values []any) error {
	rows, ok := b.tables[table]
	if !ok || startRow-1 >= len(rows) {
		return fmt.Errorf("range out of bounds")
	}
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprint(v)
	}
	rows[startRow-1] = row
	return nil
}

func newDatasetFixture() *DatasetService {
	backend := newMemBackend()
	backend.tables["dim_publisher"] = [][]string{
		{"publisher_id", "publisher_code", "publisher_name", "publisher_type", "client_code"},
		{"1", "ACME", "Acme Media", "agency", "ACM"},
		{"2", "BETA", "Beta Corp", "direct", "BET"},
	}
	backend.tables["pom"] = [][]string{
		{"publisher_id", "po_id", "po_code", "po_amount", "po_available_amount", "po_created_at", "po_status", "product_type", "po_type"},
		{"1", "1", "ACM_001_240110", "100", "100", "2024-01-10 09:00:00", "active", "Display", "standard"},
		{"2", "2", "BET_001_240215", "250", "200", "2024-02-15 12:30:00", "active", "Video", "standard"},
		{"99", "3", "XXX_001_240301", "40", "40", "2024-03-01 08:00:00", "active", "Display", "standard"},
	}

	store := repository.NewRecordStore(backend)
	publisherRepo := repository.NewPublisherRepository(store, "dim_publisher")
	poRepo := repository.NewPurchaseOrderRepository(store, publisherRepo, "pom")
	return NewDatasetService(publisherRepo, poRepo, nil)
}

func TestFetchDatasetJoinsPublisherNames(t *testing.T) {
	svc := newDatasetFixture()

	rows := svc.FetchDataset(context.Background())
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].POID)
	assert.Equal(t, "Acme Media", rows[0].PublisherName)
	assert.Equal(t, "ACM_001_240110", rows[0].POCode)
	assert.Equal(t, "Display", rows[0].ProductType)

	assert.Equal(t, "Beta Corp", rows[1].PublisherName)

	// PO referencing a publisher that no longer exists keeps an empty name.
	assert.Equal(t, 99, rows[2].PublisherID)
	assert.Equal(t, "", rows[2].PublisherName)
}

func TestFetchDatasetEmptyTables(t *testing.T) {
	backend := newMemBackend()
	backend.tables["dim_publisher"] = [][]string{
		{"publisher_id", "publisher_code", "publisher_name", "publisher_type", "client_code"},
	}
	backend.tables["pom"] = [][]string{
		{"publisher_id", "po_id", "po_code", "po_amount", "po_available_amount", "po_created_at", "po_status", "product_type", "po_type"},
	}

	store := repository.NewRecordStore(backend)
	publisherRepo := repository.NewPublisherRepository(store, "dim_publisher")
	poRepo := repository.NewPurchaseOrderRepository(store, publisherRepo, "pom")
	svc := NewDatasetService(publisherRepo, poRepo, nil)

	assert.Empty(t, svc.FetchDataset(context.Background()))
}

func TestRefreshWithoutCache(t *testing.T) {
	svc := newDatasetFixture()

	rows, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
