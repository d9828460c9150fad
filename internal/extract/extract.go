package extract

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"taxrecon/internal/domain"
	"taxrecon/internal/rawdoc"
)

// Options tunes document ingestion for both extractors.
type Options struct {
	// LenientJSON retries malformed structured documents through
	// json-repair before giving up with a parse diagnostic.
	LenientJSON bool
}

func (o Options) decodeJSON(data []byte) (rawdoc.Mapping, error) {
	if o.LenientJSON {
		return rawdoc.DecodeJSONLenient(data)
	}
	return rawdoc.DecodeJSON(data)
}

// firstNonZero resolves a fallback chain: the first strategy yielding a
// nonzero amount wins. A clause that is genuinely zero cannot be told
// apart from an absent one, so a true zero in an early strategy falls
// through to the next.
func firstNonZero(strategies ...func() decimal.Decimal) decimal.Decimal {
	for _, s := range strategies {
		if v := s(); !v.IsZero() {
			return v
		}
	}
	return decimal.Zero
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func parseDiagnostic(doc domain.DocumentRole, err error) domain.Diagnostic {
	return domain.Diagnostic{
		Severity: domain.SeverityWarning,
		Document: doc,
		Code:     domain.DiagParseError,
		Message:  fmt.Sprintf("document could not be parsed, all amounts default to zero: %v", err),
	}
}

func variantDiagnostic(doc domain.DocumentRole, msg string) domain.Diagnostic {
	return domain.Diagnostic{
		Severity: domain.SeverityInfo,
		Document: doc,
		Code:     domain.DiagVariantUnresolved,
		Message:  msg,
	}
}
