package recon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxrecon/internal/domain"
)

// matchTolerance is the largest absolute difference still reported as a
// match, absorbing rounding drift between the filing utilities.
var matchTolerance = decimal.NewFromInt(5)

// Reconcile compares the audited clause amounts against the return
// figures, producing one row per clause in fixed presentation order.
// It is pure: the same inputs always yield the same rows.
func Reconcile(audit domain.ClauseAmounts, ret domain.ReturnFigures) []domain.ReconciliationRow {
	rows := make([]domain.ReconciliationRow, 0, len(domain.ClauseOrder))
	for _, key := range domain.ClauseOrder {
		a := audit[key]
		r := ret.Amounts[key]
		diff := a.Sub(r)
		status := domain.StatusMismatch
		if diff.Abs().LessThan(matchTolerance) {
			status = domain.StatusMatch
		}
		rows = append(rows, domain.ReconciliationRow{
			Clause:     domain.ClauseLabels[key],
			Key:        key,
			Audit:      a,
			Return:     r,
			Difference: diff,
			Status:     status,
		})
	}
	return rows
}

// BuildReport assembles the full reconciliation outcome for presentation.
func BuildReport(audit domain.ClauseAmounts, ret domain.ReturnFigures, category domain.EntityCategory, diags []domain.Diagnostic) *domain.Report {
	if diags == nil {
		diags = []domain.Diagnostic{}
	}
	return &domain.Report{
		ID:           uuid.New(),
		AssesseeName: ret.Name,
		Category:     category,
		Rows:         Reconcile(audit, ret),
		Diagnostics:  diags,
		GeneratedAt:  time.Now().UTC(),
	}
}
