package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindx-ops/po-dashboard/internal/repository"
	"github.com/mindx-ops/po-dashboard/internal/service"
)

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

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newPublisherRouter() (*gin.Engine, *memBackend) {
	gin.SetMode(gin.TestMode)

	backend := newMemBackend()
	backend.tables["dim_publisher"] = [][]string{
		{"publisher_id", "publisher_code", "publisher_name", "publisher_type", "client_code"},
		{"1", "ACME", "Acme Media", "agency", "ACM"},
	}
	backend.tables["pom"] = [][]string{
		{"publisher_id", "po_id", "po_code", "po_amount", "po_available_amount", "po_created_at", "po_status", "product_type", "po_type"},
	}

	store := repository.NewRecordStore(backend)
	publisherRepo := repository.NewPublisherRepository(store, "dim_publisher")
	poRepo := repository.NewPurchaseOrderRepository(store, publisherRepo, "pom")
	dataset := service.NewDatasetService(publisherRepo, poRepo, nil)
	h := NewPublisherHandler(publisherRepo, dataset)

	router := gin.New()
	v1 := router.Group("/v1")
	{
		v1.GET("/publishers", h.ListPublishers)
		v1.POST("/publishers", h.CreatePublisher)
		v1.PUT("/publishers/:id", h.UpdatePublisher)
	}
	return router, backend
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListPublishers(t *testing.T) {
	router, _ := newPublisherRouter()

	w := doJSON(router, http.MethodGet, "/v1/publishers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	var data struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, 1, data.Total)
}

func TestCreatePublisher(t *testing.T) {
	router, backend := newPublisherRouter()

	w := doJSON(router, http.MethodPost, "/v1/publishers", gin.H{
		"publisherName": "Beta Corp",
		"publisherCode": "BETA",
		"clientCode":    "BET",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, backend.tables["dim_publisher"], 3)
}

func TestCreatePublisherDuplicateCode(t *testing.T) {
	router, backend := newPublisherRouter()

	w := doJSON(router, http.MethodPost, "/v1/publishers", gin.H{
		"publisherName": "Acme Clone",
		"publisherCode": "ACME",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_CODE", resp.Error.Code)
	assert.Len(t, backend.tables["dim_publisher"], 2)
}

func TestCreatePublisherMissingName(t *testing.T) {
	router, _ := newPublisherRouter()

	w := doJSON(router, http.MethodPost, "/v1/publishers", gin.H{
		"publisherCode": "NONAME",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestUpdatePublisher(t *testing.T) {
	router, backend := newPublisherRouter()

	name := "Acme Media Group"
	w := doJSON(router, http.MethodPut, "/v1/publishers/1", gin.H{
		"publisherName": name,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, name, backend.tables["dim_publisher"][1][2])
	// Untouched columns survive the partial update.
	assert.Equal(t, "ACME", backend.tables["dim_publisher"][1][1])
}

func TestUpdatePublisherNotFound(t *testing.T) {
	router, _ := newPublisherRouter()

	w := doJSON(router, http.MethodPut, "/v1/publishers/42", gin.H{
		"publisherName": "Ghost",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PUBLISHER_NOT_FOUND", resp.Error.Code)
}
