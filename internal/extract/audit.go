package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"taxrecon/internal/domain"
	"taxrecon/internal/rawdoc"
)

// auditRule binds one clause to its extraction strategy per document shape.
type auditRule struct {
	key        domain.ClauseKey
	structured func(form rawdoc.Mapping) decimal.Decimal
	tagged     func(form *rawdoc.Node) decimal.Decimal
}

// Audit extracts the seven clause amounts from a Form 3CD document.
// It never fails: a parse problem degrades to an all-zero amount set
// plus a diagnostic, so one bad document cannot abort a reconciliation.
func Audit(content []byte, format domain.DocumentFormat, opts Options) (domain.ClauseAmounts, []domain.Diagnostic) {
	amounts := domain.NewClauseAmounts()

	if format == domain.FormatXML {
		root, err := rawdoc.DecodeXML(content)
		if err != nil {
			return amounts, []domain.Diagnostic{parseDiagnostic(domain.RoleAudit, err)}
		}
		for _, r := range auditRules() {
			amounts[r.key] = r.tagged(root)
		}
		return amounts, nil
	}

	doc, err := opts.decodeJSON(content)
	if err != nil {
		return amounts, []domain.Diagnostic{parseDiagnostic(domain.RoleAudit, err)}
	}
	form := doc.Sub("FORM3CA", "F3CA")
	if len(form) == 0 {
		form = doc.Sub("FORM3CB", "F3CB")
	}
	if len(form) == 0 {
		return amounts, []domain.Diagnostic{variantDiagnostic(domain.RoleAudit, "neither FORM3CA nor FORM3CB found, all amounts default to zero")}
	}
	for _, r := range auditRules() {
		amounts[r.key] = r.structured(form)
	}
	return amounts, nil
}

// lateDeposit reports whether a statutory fund contribution was paid
// after its due date. The utilities emit ISO-ordered date strings, so a
// plain string comparison preserves chronology. Items missing either
// date are not counted late.
func lateDeposit(due, actual string) bool {
	return due != "" && actual != "" && actual > due
}

// auditRules returns the clause extraction table for Form 3CD.
func auditRules() []*auditRule {
	return []*auditRule{
		{
			key: domain.Clause20b,
			structured: func(f rawdoc.Mapping) decimal.Decimal {
				items := f.Items("Form3cdEmpPfSuperannInfo", "Form3cdSect20b")
				if items == nil {
					items = f.Items("Form3cdSect20b")
				}
				total := decimal.Zero
				for _, it := range items {
					if lateDeposit(str(it.Get("DueDate")), str(it.Get("ActualDate"))) {
						total = total.Add(rawdoc.Coerce(it.Get("Amount")))
					}
				}
				return total
			},
			tagged: func(f *rawdoc.Node) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.FindAll("Form3cdSect20b") {
					if lateDeposit(it.FindText("DueDate"), it.FindText("ActualDate")) {
						total = total.Add(rawdoc.Coerce(it.FindText("Amount")))
					}
				}
				return total
			},
		},
		{
			key: domain.Clause21a,
			structured: func(f rawdoc.Mapping) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.Items("Form3cdDebPLExpnditure") {
					if strings.Contains(strings.ToUpper(str(it.Get("ParticularType"))), "PERSONAL") {
						total = total.Add(rawdoc.Coerce(it.Get("Amount")))
					}
				}
				return total
			},
			tagged: func(f *rawdoc.Node) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.FindAll("Form3cdDebPLExpnditure") {
					if strings.Contains(strings.ToUpper(it.FindText("ParticularType")), "PERSONAL") {
						total = total.Add(rawdoc.Coerce(it.FindText("Amount")))
					}
				}
				return total
			},
		},
		{
			key: domain.Clause21d,
			structured: func(f rawdoc.Mapping) decimal.Decimal {
				return rawdoc.Coerce(f.Get("AmtInadmissibleSec40A3"))
			},
			tagged: func(f *rawdoc.Node) decimal.Decimal {
				return rawdoc.Coerce(f.FindText("AmtInadmissibleSec40A3"))
			},
		},
		{
			key: domain.Clause21i,
			structured: func(f rawdoc.Mapping) decimal.Decimal {
				return rawdoc.Coerce(f.Get("AmtInadmissibleSec40aia"))
			},
			tagged: func(f *rawdoc.Node) decimal.Decimal {
				return rawdoc.Coerce(f.FindText("AmtInadmissibleSec40aia"))
			},
		},
		{
			// The structured export names the MSME interest scalar
			// Amount4; the tagged export calls it Amount.
			key: domain.Clause22,
			structured: func(f rawdoc.Mapping) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.Items("Form3cdInadm") {
					if str(it.Get("ParticularType")) == "SEC23" {
						total = total.Add(rawdoc.Coerce(it.Get("Amount4")))
					}
				}
				return total
			},
			tagged: func(f *rawdoc.Node) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.FindAll("Form3cdInadm") {
					if it.FindText("ParticularType") == "SEC23" {
						total = total.Add(rawdoc.Coerce(it.FindText("Amount")))
					}
				}
				return total
			},
		},
		{
			key: domain.Clause43Bh,
			structured: func(f rawdoc.Mapping) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.Items("Form3cdUnpaidStrySec43b") {
					if str(it.Get("Section")) == "43Bh" {
						total = total.Add(rawdoc.Coerce(it.Get("Amount")))
					}
				}
				return total
			},
			tagged: func(f *rawdoc.Node) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.FindAll("Form3cdUnpaidStrySec43b") {
					if it.FindText("Section") == "43Bh" {
						total = total.Add(rawdoc.Coerce(it.FindText("Amount")))
					}
				}
				return total
			},
		},
		{
			key: domain.Clause32,
			structured: func(f rawdoc.Mapping) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.Items("Form3cdDeprAllw") {
					total = total.Add(rawdoc.Coerce(it.Get("DepAllowable")))
				}
				return total
			},
			tagged: func(f *rawdoc.Node) decimal.Decimal {
				total := decimal.Zero
				for _, it := range f.FindAll("Form3cdDeprAllw") {
					total = total.Add(rawdoc.Coerce(it.FindText("DepAllowable")))
				}
				return total
			},
		},
	}
}
