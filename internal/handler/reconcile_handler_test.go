package handler_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taxrecon/internal/domain"
	"taxrecon/internal/export"
	"taxrecon/internal/handler"
	"taxrecon/internal/service"
	"taxrecon/mocks"
)

func newReconcileHandler() (*handler.ReconcileHandler, *mocks.MockReconService) {
	svc := new(mocks.MockReconService)
	return handler.NewReconcileHandler(svc), svc
}

func bothDocuments() map[string][]byte {
	return map[string][]byte{
		"audit": []byte(`{"FORM3CB": {"F3CB": {}}}`),
		"itr":   []byte(`{"ITR": {"ITR6": {}}}`),
	}
}

func TestReconcile_Success(t *testing.T) {
	h, svc := newReconcileHandler()
	report := sampleReport()
	svc.On("Reconcile", mock.Anything, mock.AnythingOfType("service.ReconcileInput")).
		Return(report, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/reconcile", bothDocuments(), map[string]string{"category": "Non-Corporate"})

	h.Reconcile(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    domain.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Acme Industries", resp.Data.AssesseeName)
	assert.Len(t, resp.Data.Rows, 7)
	svc.AssertExpectations(t)
}

func TestReconcile_PassesFormToService(t *testing.T) {
	h, svc := newReconcileHandler()
	svc.On("Reconcile", mock.Anything, mock.MatchedBy(func(in service.ReconcileInput) bool {
		return string(in.Audit.Content) == `{"FORM3CB": {"F3CB": {}}}` &&
			in.Audit.Format == "xml" &&
			in.Audit.Name == "audit.json" &&
			in.Category == "Corporate"
	})).Return(sampleReport(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/reconcile", bothDocuments(), map[string]string{
		"audit_format": "xml",
		"category":     "Corporate",
	})

	h.Reconcile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReconcile_MissingFilePart(t *testing.T) {
	h, svc := newReconcileHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/reconcile", map[string][]byte{
		"audit": []byte(`{}`),
	}, nil)

	h.Reconcile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_DOCUMENT", resp.Error.Code)
	svc.AssertNotCalled(t, "Reconcile")
}

func TestReconcile_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantAPI  string
	}{
		{"file_too_large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"invalid_category", domain.ErrInvalidCategory, http.StatusBadRequest, "INVALID_CATEGORY"},
		{"unsupported_format", domain.ErrUnsupportedFormat, http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{"empty_document", domain.ErrEmptyDocument, http.StatusBadRequest, "EMPTY_DOCUMENT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, svc := newReconcileHandler()
			svc.On("Reconcile", mock.Anything, mock.AnythingOfType("service.ReconcileInput")).
				Return(nil, tc.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = multipartRequest(t, "/api/v1/reconcile", bothDocuments(), nil)

			h.Reconcile(c)

			assert.Equal(t, tc.wantCode, w.Code)
			var resp handler.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantAPI, resp.Error.Code)
		})
	}
}

func TestExportCSV_Contract(t *testing.T) {
	h, svc := newReconcileHandler()
	svc.On("Reconcile", mock.Anything, mock.AnythingOfType("service.ReconcileInput")).
		Return(sampleReport(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/reconcile/export/csv", bothDocuments(), nil)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Acme_Industries_reconciliation_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	// Verify BOM
	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, export.BOM, body[:3])

	// Parse CSV (skip BOM)
	r := csv.NewReader(strings.NewReader(string(body[3:])))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8) // header + 7 clause rows

	assert.Equal(t, "Clause", records[0][0])
	assert.Equal(t, "20(b) ESI/PF (36(1)(va))", records[1][0])
	assert.Equal(t, "1000.50", records[1][1])
	assert.Equal(t, "Match", records[1][4])
	svc.AssertExpectations(t)
}

func TestExportCSV_ServiceErrorStaysJSON(t *testing.T) {
	h, svc := newReconcileHandler()
	svc.On("Reconcile", mock.Anything, mock.AnythingOfType("service.ReconcileInput")).
		Return(nil, domain.ErrMissingDocument)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/reconcile/export/csv", bothDocuments(), nil)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestExportXLSX_Contract(t *testing.T) {
	h, svc := newReconcileHandler()
	svc.On("Reconcile", mock.Anything, mock.AnythingOfType("service.ReconcileInput")).
		Return(sampleReport(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/reconcile/export/xlsx", bothDocuments(), nil)

	h.ExportXLSX(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
	svc.AssertExpectations(t)
}
