package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"taxrecon/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// sampleReport returns a seven-row report for mock service returns.
func sampleReport() *domain.Report {
	rows := make([]domain.ReconciliationRow, 0, len(domain.ClauseOrder))
	for _, key := range domain.ClauseOrder {
		rows = append(rows, domain.ReconciliationRow{
			Clause:     domain.ClauseLabels[key],
			Key:        key,
			Audit:      amt("1000.50"),
			Return:     amt("1000.50"),
			Difference: amt("0"),
			Status:     domain.StatusMatch,
		})
	}
	return &domain.Report{
		ID:           uuid.New(),
		AssesseeName: "Acme Industries",
		Category:     domain.CategoryNonCorporate,
		Rows:         rows,
		Diagnostics:  []domain.Diagnostic{},
		GeneratedAt:  time.Now().UTC(),
	}
}

// multipartRequest builds a reconcile upload with the given file parts
// and form fields.
func multipartRequest(t *testing.T, path string, files map[string][]byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for field, content := range files {
		part, err := mw.CreateFormFile(field, field+".json")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
