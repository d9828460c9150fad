package domain

// DocumentFormat identifies the serialization of an uploaded filing.
type DocumentFormat string

const (
	FormatJSON DocumentFormat = "json"
	FormatXML  DocumentFormat = "xml"
)

// AllowedFormats maps user-supplied format tags to DocumentFormat.
var AllowedFormats = map[string]DocumentFormat{
	"json": FormatJSON,
	"xml":  FormatXML,
}

// AllowedContentTypes maps MIME content types back to DocumentFormat.
var AllowedContentTypes = map[string]DocumentFormat{
	"application/json": FormatJSON,
	"application/xml":  FormatXML,
	"text/xml":         FormatXML,
}

// AllowedExtensions maps file extensions (without dot) to DocumentFormat.
var AllowedExtensions = map[string]DocumentFormat{
	"json": FormatJSON,
	"xml":  FormatXML,
}

// DocumentRole identifies which filing a document or diagnostic belongs to.
type DocumentRole string

const (
	RoleAudit  DocumentRole = "3cd"
	RoleReturn DocumentRole = "itr"
)

// EntityCategory is the assessee classification carried through to the report.
type EntityCategory string

const (
	CategoryCorporate    EntityCategory = "Corporate"
	CategoryNonCorporate EntityCategory = "Non-Corporate"
)

// AllowedCategories maps user-supplied category tags to EntityCategory.
var AllowedCategories = map[string]EntityCategory{
	"Corporate":     CategoryCorporate,
	"Non-Corporate": CategoryNonCorporate,
}

// ClauseKey identifies one reconciled clause of Form 3CD.
type ClauseKey string

const (
	Clause20b  ClauseKey = "c20b"
	Clause21a  ClauseKey = "c21a"
	Clause21d  ClauseKey = "c21d"
	Clause21i  ClauseKey = "c21i"
	Clause22   ClauseKey = "c22"
	Clause43Bh ClauseKey = "c43bh"
	Clause32   ClauseKey = "c32"
)

// ClauseOrder fixes the presentation order of reconciliation rows.
var ClauseOrder = []ClauseKey{
	Clause20b,
	Clause21a,
	Clause21d,
	Clause21i,
	Clause22,
	Clause43Bh,
	Clause32,
}

// ClauseLabels maps each clause to its report label.
var ClauseLabels = map[ClauseKey]string{
	Clause20b:  "20(b) ESI/PF (36(1)(va))",
	Clause21a:  "21(a) Personal Exp",
	Clause21d:  "21(d) Cash Payments (40A(3))",
	Clause21i:  "21(i) TDS Default (40(a)(ia))",
	Clause22:   "22 MSME Interest (Sec 23)",
	Clause43Bh: "43B(h) MSME Dues",
	Clause32:   "32 Depr (IT Act)",
}

// MatchStatus is the verdict for one reconciliation row.
type MatchStatus string

const (
	StatusMatch    MatchStatus = "Match"
	StatusMismatch MatchStatus = "Mismatch"
)

// DiagnosticSeverity ranks extraction diagnostics.
type DiagnosticSeverity string

const (
	SeverityWarning DiagnosticSeverity = "warning"
	SeverityInfo    DiagnosticSeverity = "info"
)

// DiagnosticCode identifies the kind of extraction problem encountered.
type DiagnosticCode string

const (
	DiagParseError        DiagnosticCode = "parse_error"
	DiagVariantUnresolved DiagnosticCode = "variant_unresolved"
)
