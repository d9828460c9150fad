package extract

import (
	"github.com/shopspring/decimal"

	"taxrecon/internal/domain"
	"taxrecon/internal/rawdoc"
)

// returnSections carries the resolved section roots of a structured return.
type returnSections struct {
	variant rawdoc.Mapping
	oi      rawdoc.Mapping
	bp      rawdoc.Mapping
}

// returnRule binds one clause to its extraction strategy per document shape.
type returnRule struct {
	key        domain.ClauseKey
	structured func(s *returnSections) decimal.Decimal
	tagged     func(v *rawdoc.Node) decimal.Decimal
}

// Return extracts the assessee name and clause amounts from an income
// tax return, resolving the ITR3, ITR5 and ITR6 schema variants. Like
// Audit it never fails; problems surface as diagnostics.
func Return(content []byte, format domain.DocumentFormat, opts Options) (domain.ReturnFigures, []domain.Diagnostic) {
	fig := domain.ReturnFigures{Name: "Assessee", Amounts: domain.NewClauseAmounts()}

	if format == domain.FormatXML {
		root, err := rawdoc.DecodeXML(content)
		if err != nil {
			return fig, []domain.Diagnostic{parseDiagnostic(domain.RoleReturn, err)}
		}
		variant := firstNode(root, "ITR3", "ITR5", "ITR6")
		if variant == nil {
			fig.Name = "Unknown"
			return fig, []domain.Diagnostic{variantDiagnostic(domain.RoleReturn, "no ITR3, ITR5 or ITR6 section found, all amounts default to zero")}
		}
		if name := variant.FindText("SurNameOrOrgName"); name != "" {
			fig.Name = name
		}
		for _, r := range returnRules() {
			fig.Amounts[r.key] = r.tagged(variant)
		}
		return fig, nil
	}

	doc, err := opts.decodeJSON(content)
	if err != nil {
		return fig, []domain.Diagnostic{parseDiagnostic(domain.RoleReturn, err)}
	}
	variant := firstSection(doc.Sub("ITR"), "ITR3", "ITR5", "ITR6")
	if variant == nil {
		fig.Name = "Unknown"
		return fig, []domain.Diagnostic{variantDiagnostic(domain.RoleReturn, "no ITR3, ITR5 or ITR6 section found, all amounts default to zero")}
	}
	fig.Name = assesseeName(variant)
	secs := &returnSections{
		variant: variant,
		oi:      resolveOI(variant),
		bp:      resolveBP(variant),
	}
	for _, r := range returnRules() {
		fig.Amounts[r.key] = r.structured(secs)
	}
	return fig, nil
}

// firstSection returns the first non-empty child object among names.
func firstSection(m rawdoc.Mapping, names ...string) rawdoc.Mapping {
	for _, name := range names {
		if sub := m.Sub(name); len(sub) > 0 {
			return sub
		}
	}
	return nil
}

// firstNode returns the first element found among tags, in tag order.
func firstNode(root *rawdoc.Node, tags ...string) *rawdoc.Node {
	for _, tag := range tags {
		if n := root.Find(tag); n != nil {
			return n
		}
	}
	return nil
}

// assesseeName resolves the filer's display name. Individual returns
// carry it under PersonalInfo, firm and company returns under OrgFirmInfo.
func assesseeName(variant rawdoc.Mapping) string {
	if name := str(variant.Get("PartA_GEN1", "PersonalInfo", "AssesseeName", "SurNameOrOrgName")); name != "" {
		return name
	}
	if name := str(variant.Get("PartA_GEN1", "OrgFirmInfo", "AssesseeName", "SurNameOrOrgName")); name != "" {
		return name
	}
	return "Assessee"
}

// resolveOI locates Part A-OI, whose key casing drifted across utility
// releases.
func resolveOI(variant rawdoc.Mapping) rawdoc.Mapping {
	if oi := variant.Sub("PartA_OI"); len(oi) > 0 {
		return oi
	}
	return variant.Sub("PARTA_OI")
}

// resolveBP locates the business income block of Schedule BP, whose
// wrapper differs between the ITR3, ITR5 and ITR6 layouts.
func resolveBP(variant rawdoc.Mapping) rawdoc.Mapping {
	for _, key := range []string{"ITR3ScheduleBP", "CorpScheduleBP", "ScheduleBP"} {
		if bp := variant.Sub(key, "BusinessIncOthThanSpec"); len(bp) > 0 {
			return bp
		}
	}
	return rawdoc.Mapping{}
}

// scheduleDepreciation totals allowable depreciation from the plant and
// machinery and other-assets schedules, covering returns that leave the
// Schedule BP summary figure empty.
func scheduleDepreciation(variant rawdoc.Mapping) decimal.Decimal {
	dpm := firstNonZero(
		func() decimal.Decimal {
			return rawdoc.Coerce(variant.Get("ScheduleDPM", "PlantMachinerySummary", "TotDepAllowitProp"))
		},
		func() decimal.Decimal {
			return rawdoc.Coerce(variant.Get("ScheduleDPM", "PlantMachSummary", "TotDepAllowitProp"))
		},
	)
	doa := firstNonZero(
		func() decimal.Decimal {
			return rawdoc.Coerce(variant.Get("ScheduleDOA", "OtherAssetsSummary", "TotDepAllowitProp"))
		},
		func() decimal.Decimal {
			return rawdoc.Coerce(variant.Get("ScheduleDOA", "OtherAssetsSumm", "TotDepAllowitProp"))
		},
	)
	return dpm.Add(doa)
}

// returnRules returns the clause extraction table for the income tax return.
func returnRules() []*returnRule {
	return []*returnRule{
		{
			key: domain.Clause20b,
			structured: func(s *returnSections) decimal.Decimal {
				return rawdoc.Coerce(s.oi.Get("AmtDisallUs36", "EmplyeeContrStatutoryFund"))
			},
			tagged: func(v *rawdoc.Node) decimal.Decimal {
				return rawdoc.Coerce(v.FindText("EmplyeeContrStatutoryFund"))
			},
		},
		{
			key: domain.Clause21a,
			structured: func(s *returnSections) decimal.Decimal {
				return firstNonZero(
					func() decimal.Decimal { return rawdoc.Coerce(s.oi.Get("AmtDisallUs37", "PersonalExp")) },
					func() decimal.Decimal { return rawdoc.Coerce(s.oi.Get("AmtDisallUs37", "PersonalExpndtr")) },
					func() decimal.Decimal { return rawdoc.Coerce(s.bp.Get("AmtDebPLDisallowUs37")) },
				)
			},
			tagged: func(v *rawdoc.Node) decimal.Decimal {
				u37 := v.Find("AmtDisallUs37")
				return firstNonZero(
					func() decimal.Decimal { return rawdoc.Coerce(u37.FindText("PersonalExp")) },
					func() decimal.Decimal { return rawdoc.Coerce(u37.FindText("PersonalExpndtr")) },
					func() decimal.Decimal { return rawdoc.Coerce(v.FindText("AmtDebPLDisallowUs37")) },
				)
			},
		},
		{
			key: domain.Clause21d,
			structured: func(s *returnSections) decimal.Decimal {
				return rawdoc.Coerce(s.oi.Get("AmtDisallUs40A3"))
			},
			tagged: func(v *rawdoc.Node) decimal.Decimal {
				return rawdoc.Coerce(v.FindText("AmtDisallUs40A3"))
			},
		},
		{
			key: domain.Clause21i,
			structured: func(s *returnSections) decimal.Decimal {
				return rawdoc.Coerce(s.oi.Get("AmtInadmissibleUs40a"))
			},
			tagged: func(v *rawdoc.Node) decimal.Decimal {
				return rawdoc.Coerce(v.FindText("AmtInadmissibleUs40a"))
			},
		},
		{
			key: domain.Clause22,
			structured: func(s *returnSections) decimal.Decimal {
				return rawdoc.Coerce(s.oi.Get("AmtDisall43B", "AmtUs43B", "MSEPayable"))
			},
			tagged: func(v *rawdoc.Node) decimal.Decimal {
				return rawdoc.Coerce(v.Find("AmtDisall43B").FindText("MSEPayable"))
			},
		},
		{
			// The disallowance moved between AmtDisallUs43BPyNowAll and
			// AmtDisall43BPyNowAll across schema revisions.
			key: domain.Clause43Bh,
			structured: func(s *returnSections) decimal.Decimal {
				return firstNonZero(
					func() decimal.Decimal {
						return rawdoc.Coerce(s.oi.Get("AmtDisallUs43BPyNowAll", "AmtUs43B", "MSEPayable"))
					},
					func() decimal.Decimal {
						return rawdoc.Coerce(s.oi.Get("AmtDisall43BPyNowAll", "AmtUs43B", "MSEPayable"))
					},
				)
			},
			tagged: func(v *rawdoc.Node) decimal.Decimal {
				return firstNonZero(
					func() decimal.Decimal {
						return rawdoc.Coerce(v.Find("AmtDisallUs43BPyNowAll").FindText("MSEPayable"))
					},
					func() decimal.Decimal {
						return rawdoc.Coerce(v.Find("AmtDisall43BPyNowAll").FindText("MSEPayable"))
					},
				)
			},
		},
		{
			key: domain.Clause32,
			structured: func(s *returnSections) decimal.Decimal {
				return firstNonZero(
					func() decimal.Decimal {
						return rawdoc.Coerce(s.bp.Get("DepreciationAllowITAct32", "TotDeprAllowITAct"))
					},
					func() decimal.Decimal { return scheduleDepreciation(s.variant) },
				)
			},
			tagged: func(v *rawdoc.Node) decimal.Decimal {
				return firstNonZero(
					func() decimal.Decimal {
						return rawdoc.Coerce(v.Find("DepreciationAllowITAct32").FindText("TotDeprAllowITAct"))
					},
					func() decimal.Decimal {
						total := decimal.Zero
						for _, n := range v.FindAll("TotDepAllowitProp") {
							total = total.Add(rawdoc.Coerce(n.Text))
						}
						return total
					},
				)
			},
		},
	}
}
