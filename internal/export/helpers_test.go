package export_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxrecon/internal/domain"
)

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// sampleReport returns a seven-row report with one mismatch (clause 22)
// and no diagnostics.
func sampleReport() *domain.Report {
	values := map[domain.ClauseKey][2]string{
		domain.Clause20b:  {"1000.50", "1000.50"},
		domain.Clause21a:  {"1200.00", "1200.00"},
		domain.Clause21d:  {"2500.00", "2500.00"},
		domain.Clause21i:  {"800.00", "800.00"},
		domain.Clause22:   {"1510.00", "1500.00"},
		domain.Clause43Bh: {"3000.00", "3000.00"},
		domain.Clause32:   {"12500.25", "12500.25"},
	}

	rows := make([]domain.ReconciliationRow, 0, len(domain.ClauseOrder))
	for _, key := range domain.ClauseOrder {
		audit := amt(values[key][0])
		ret := amt(values[key][1])
		diff := audit.Sub(ret)
		status := domain.StatusMatch
		if diff.Abs().GreaterThanOrEqual(amt("5")) {
			status = domain.StatusMismatch
		}
		rows = append(rows, domain.ReconciliationRow{
			Clause:     domain.ClauseLabels[key],
			Key:        key,
			Audit:      audit,
			Return:     ret,
			Difference: diff,
			Status:     status,
		})
	}

	return &domain.Report{
		ID:           uuid.New(),
		AssesseeName: "Acme Industries Pvt. Ltd.",
		Category:     domain.CategoryCorporate,
		Rows:         rows,
		Diagnostics:  []domain.Diagnostic{},
		GeneratedAt:  time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}
