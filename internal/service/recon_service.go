package service

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"taxrecon/internal/config"
	"taxrecon/internal/domain"
	"taxrecon/internal/extract"
	"taxrecon/internal/recon"
)

// DocumentInput is one uploaded filing plus its declared format.
type DocumentInput struct {
	// Content is the raw document. Nil means the caller never supplied
	// the document at all.
	Content []byte
	// Format is the caller's format tag ("json" or "xml"). When empty
	// the format is inferred from Name's extension, defaulting to json.
	Format string
	// Name is the original filename, used only for format inference.
	Name string
}

// ReconcileInput is the DTO for reconciliation requests.
type ReconcileInput struct {
	Audit    DocumentInput
	Return   DocumentInput
	Category string
}

// ReconService defines the reconciliation contract.
type ReconService interface {
	Reconcile(ctx context.Context, input ReconcileInput) (*domain.Report, error)
}

type reconService struct {
	upload *config.UploadConfig
	ingest *config.IngestConfig
}

// NewReconService creates a new ReconService implementation.
func NewReconService(upload *config.UploadConfig, ingest *config.IngestConfig) ReconService {
	return &reconService{
		upload: upload,
		ingest: ingest,
	}
}

// Reconcile validates both documents, extracts the clause amounts from
// each side and compares them. Only acquisition problems return an
// error; once both documents are in hand the run always produces a
// report, with extraction trouble reported as diagnostics inside it.
func (s *reconService) Reconcile(_ context.Context, input ReconcileInput) (*domain.Report, error) {
	auditFormat, err := s.validateDocument(&input.Audit)
	if err != nil {
		return nil, err
	}
	returnFormat, err := s.validateDocument(&input.Return)
	if err != nil {
		return nil, err
	}

	category := domain.CategoryNonCorporate
	if input.Category != "" {
		cat, ok := domain.AllowedCategories[input.Category]
		if !ok {
			return nil, domain.ErrInvalidCategory
		}
		category = cat
	}

	opts := extract.Options{LenientJSON: s.ingest.RepairJSON}
	amounts, auditDiags := extract.Audit(input.Audit.Content, auditFormat, opts)
	figures, returnDiags := extract.Return(input.Return.Content, returnFormat, opts)

	report := recon.BuildReport(amounts, figures, category, append(auditDiags, returnDiags...))
	log.Printf("reconService.Reconcile: report %s for %q (%s/%s), %d rows, %d diagnostics",
		report.ID, report.AssesseeName, auditFormat, returnFormat, len(report.Rows), len(report.Diagnostics))
	return report, nil
}

// validateDocument applies the acquisition checks. Failures here are
// hard errors; everything past this point degrades to diagnostics.
func (s *reconService) validateDocument(doc *DocumentInput) (domain.DocumentFormat, error) {
	if doc.Content == nil {
		return "", domain.ErrMissingDocument
	}
	if len(doc.Content) == 0 {
		return "", domain.ErrEmptyDocument
	}
	if max := s.upload.MaxFileSizeBytes(); max > 0 && int64(len(doc.Content)) > max {
		return "", domain.ErrFileTooLarge
	}
	return resolveFormat(doc)
}

// resolveFormat picks the document format from the explicit tag, the
// filename extension, or the json default, in that order.
func resolveFormat(doc *DocumentInput) (domain.DocumentFormat, error) {
	if doc.Format != "" {
		format, ok := domain.AllowedFormats[strings.ToLower(doc.Format)]
		if !ok {
			return "", domain.ErrUnsupportedFormat
		}
		return format, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(doc.Name), "."))
	if format, ok := domain.AllowedExtensions[ext]; ok {
		return format, nil
	}
	return domain.FormatJSON, nil
}
