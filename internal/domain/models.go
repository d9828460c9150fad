package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClauseAmounts holds one normalized amount per reconciliation clause.
// Extractors always return a fully populated set, so downstream code
// never has to distinguish a missing clause from a zero one.
type ClauseAmounts map[ClauseKey]decimal.Decimal

// NewClauseAmounts returns an amount set with every clause present at zero.
func NewClauseAmounts() ClauseAmounts {
	m := make(ClauseAmounts, len(ClauseOrder))
	for _, k := range ClauseOrder {
		m[k] = decimal.Zero
	}
	return m
}

// ReturnFigures is the normalized output of return-side extraction.
type ReturnFigures struct {
	Name    string        `json:"name"`
	Amounts ClauseAmounts `json:"amounts"`
}

// Diagnostic records a non-fatal problem encountered while extracting a
// document. Diagnostics ride inside the report; they never fail a run.
type Diagnostic struct {
	Severity DiagnosticSeverity `json:"severity"`
	Document DocumentRole       `json:"document"`
	Code     DiagnosticCode     `json:"code"`
	Message  string             `json:"message"`
}

// ReconciliationRow is one clause-level comparison between the two filings.
type ReconciliationRow struct {
	Clause     string          `json:"clause"`
	Key        ClauseKey       `json:"key"`
	Audit      decimal.Decimal `json:"audit"`
	Return     decimal.Decimal `json:"return"`
	Difference decimal.Decimal `json:"difference"`
	Status     MatchStatus     `json:"status"`
}

// Report is the complete outcome of one reconciliation run.
type Report struct {
	ID           uuid.UUID           `json:"id"`
	AssesseeName string              `json:"assessee_name"`
	Category     EntityCategory      `json:"category"`
	Rows         []ReconciliationRow `json:"rows"`
	Diagnostics  []Diagnostic        `json:"diagnostics"`
	GeneratedAt  time.Time           `json:"generated_at"`
}
