package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sheet-copywriter/internal/export"
	"github.com/jonathan/sheet-copywriter/internal/generation"
	"github.com/jonathan/sheet-copywriter/internal/llm"
	"github.com/jonathan/sheet-copywriter/internal/pipeline"
	"github.com/jonathan/sheet-copywriter/internal/sheets"
	"github.com/jonathan/sheet-copywriter/internal/types"
)

const sheetURL = "https://docs.google.com/spreadsheets/d/DOC42/edit#gid=0"

// memorySheet is an in-memory sheets.Service.
type memorySheet struct {
	mu       sync.Mutex
	values   [][]string
	fetchErr error
	writeErr error
	updates  map[string][][]string
}

func (m *memorySheet) Values(context.Context, sheets.Locator) ([][]string, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.values, nil
}

func (m *memorySheet) Update(_ context.Context, _ sheets.Locator, cellRange string, values [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.updates == nil {
		m.updates = map[string][][]string{}
	}
	m.updates[cellRange] = values
	return nil
}

func productSheet() *memorySheet {
	return &memorySheet{values: [][]string{
		{"Product_Name", "Category", "Price", "Keywords"},
		{"Mug", "Kitchen", "9.99", "coffee"},
		{"Lamp", "Decor", "24", "light"},
	}}
}

func newTestServer(t *testing.T, svc sheets.Service) http.Handler {
	t.Helper()
	opts := generation.DefaultOptions()
	opts.Retry = generation.NoRetry()
	gen, err := generation.New(opts, nil, nil)
	require.NoError(t, err)

	s := New(Config{Provider: llm.DefaultFor(llm.ProviderMock)}, pipeline.New(svc, gen, nil), nil)
	return s.Handler()
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t, productSheet())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleInspect(t *testing.T) {
	h := newTestServer(t, productSheet())

	rec := postJSON(t, h, "/api/v1/sheets/inspect", types.InspectRequest{SheetURL: sheetURL})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[InspectResponse](t, rec)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.MissingColumns)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "Mug", resp.Rows[0]["Product_Name"])
}

func TestHandleInspect_ReportsMissingColumns(t *testing.T) {
	h := newTestServer(t, &memorySheet{values: [][]string{{"Product_Name"}, {"Mug"}}})

	rec := postJSON(t, h, "/api/v1/sheets/inspect", types.InspectRequest{SheetURL: sheetURL})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[InspectResponse](t, rec)
	assert.False(t, resp.Valid)
	assert.Equal(t, []string{"Category", "Price", "Keywords"}, resp.MissingColumns)
}

func TestHandleInspect_Errors(t *testing.T) {
	tests := []struct {
		name   string
		svc    *memorySheet
		body   any
		status int
	}{
		{name: "missing url", svc: productSheet(), body: map[string]string{}, status: http.StatusBadRequest},
		{name: "url without document id", svc: productSheet(), body: types.InspectRequest{SheetURL: "https://example.com/sheet"}, status: http.StatusBadRequest},
		{name: "empty sheet", svc: &memorySheet{values: [][]string{{"Product_Name"}}}, body: types.InspectRequest{SheetURL: sheetURL}, status: http.StatusBadRequest},
		{name: "upstream failure", svc: &memorySheet{fetchErr: errors.New("403")}, body: types.InspectRequest{SheetURL: sheetURL}, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, newTestServer(t, tt.svc), "/api/v1/sheets/inspect", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandleInspect_MalformedJSON(t *testing.T) {
	h := newTestServer(t, productSheet())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sheets/inspect", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate(t *testing.T) {
	svc := productSheet()
	h := newTestServer(t, svc)

	rec := postJSON(t, h, "/api/v1/generate", types.GenerateRequest{SheetURL: sheetURL, UpdateSheet: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	run := decodeBody[pipeline.RunResult](t, rec)
	require.Len(t, run.Results, 2)
	assert.Equal(t, "Mug", run.Results[0].Title)
	assert.Len(t, run.Results[0].Hashtags, 5)
	assert.True(t, run.SheetUpdated)
	assert.Len(t, svc.updates["E2:I3"], 2)
}

func TestHandleGenerate_MissingColumns(t *testing.T) {
	svc := &memorySheet{values: [][]string{{"Product_Name", "Category"}, {"Mug", "Kitchen"}}}
	rec := postJSON(t, newTestServer(t, svc), "/api/v1/generate", types.GenerateRequest{SheetURL: sheetURL})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price, Keywords")
}

func TestHandleGenerate_WriteFailure(t *testing.T) {
	svc := productSheet()
	svc.writeErr = errors.New("quota exceeded")
	rec := postJSON(t, newTestServer(t, svc), "/api/v1/generate", types.GenerateRequest{SheetURL: sheetURL, UpdateSheet: true})

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body struct {
		Error string             `json:"error"`
		Run   pipeline.RunResult `json:"run"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "quota exceeded")
	require.Len(t, body.Run.Results, 2)
	assert.Equal(t, "Mug", body.Run.Results[0].Title)
}

func exportResults() []types.GenerationResult {
	return []types.GenerationResult{{
		ProductRow:    types.ProductRow{Row: 1, Name: "Mug", Category: "Kitchen", Price: "9.99", Keywords: "coffee"},
		MarketingCopy: types.MarketingCopy{Title: "T", Description: "D", Hashtags: []string{"a", "b", "c"}, Post: "P", CTA: "C"},
	}}
}

func TestHandleExport_CSV(t *testing.T) {
	h := newTestServer(t, productSheet())

	rec := postJSON(t, h, "/api/v1/export?format=csv", types.ExportRequest{Results: exportResults()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, export.MIMECSV, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "generated_products.csv")
	parsed, err := export.ParseCSV(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, exportResults(), parsed)
}

func TestHandleExport_XLSXFromCSVBody(t *testing.T) {
	h := newTestServer(t, productSheet())

	var csvBody bytes.Buffer
	require.NoError(t, export.WriteCSV(&csvBody, exportResults()))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export?format=xlsx", &csvBody)
	req.Header.Set("Content-Type", "text/csv; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, export.MIMEXLSX, rec.Header().Get("Content-Type"))
	parsed, err := export.ReadXLSX(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, exportResults(), parsed)
}

func TestHandleExport_Errors(t *testing.T) {
	h := newTestServer(t, productSheet())

	rec := postJSON(t, h, "/api/v1/export?format=pdf", types.ExportRequest{Results: exportResults()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h, "/api/v1/export", types.ExportRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, productSheet())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
