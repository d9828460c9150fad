package handler

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxrecon/internal/export"
	"taxrecon/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReconcileHandler handles reconciliation and export endpoints.
type ReconcileHandler struct {
	reconService service.ReconService
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(reconService service.ReconService) *ReconcileHandler {
	return &ReconcileHandler{reconService: reconService}
}

// Reconcile handles POST /api/v1/reconcile
// @Summary Reconcile a Form 3CD audit report against an income tax return
// @Description Upload both filings (JSON or XML) and receive the clause-by-clause comparison
// @Tags reconcile
// @Accept multipart/form-data
// @Produce json
// @Param audit formData file true "Form 3CD document"
// @Param itr formData file true "Income tax return document"
// @Param audit_format formData string false "Audit document format (json or xml)" default(json)
// @Param itr_format formData string false "Return document format (json or xml)" default(json)
// @Param category formData string false "Assessee category (Corporate or Non-Corporate)" default(Non-Corporate)
// @Success 200 {object} Response{data=domain.Report} "Reconciliation report"
// @Failure 400 {object} ErrorResponseBody "Missing document, unsupported format or invalid category"
// @Failure 413 {object} ErrorResponseBody "Document too large"
// @Router /reconcile [post]
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	input, ok := h.buildInput(c)
	if !ok {
		return
	}

	report, err := h.reconService.Reconcile(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// ExportCSV handles POST /api/v1/reconcile/export/csv
// @Summary Export a reconciliation as CSV
// @Description Runs the same reconciliation and streams the rows as UTF-8 BOM CSV
// @Tags reconcile
// @Accept multipart/form-data
// @Produce text/csv
// @Param audit formData file true "Form 3CD document"
// @Param itr formData file true "Income tax return document"
// @Param audit_format formData string false "Audit document format (json or xml)" default(json)
// @Param itr_format formData string false "Return document format (json or xml)" default(json)
// @Param category formData string false "Assessee category (Corporate or Non-Corporate)" default(Non-Corporate)
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} ErrorResponseBody "Missing document, unsupported format or invalid category"
// @Router /reconcile/export/csv [post]
func (h *ReconcileHandler) ExportCSV(c *gin.Context) {
	input, ok := h.buildInput(c)
	if !ok {
		return
	}

	report, err := h.reconService.Reconcile(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(report.AssesseeName, "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		log.Printf("reconcileHandler.ExportCSV: writing BOM: %v", err)
		return
	}
	w := export.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("reconcileHandler.ExportCSV: writing header: %v", err)
		return
	}
	if err := w.WriteReport(report); err != nil {
		log.Printf("reconcileHandler.ExportCSV: writing rows: %v", err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("reconcileHandler.ExportCSV: flushing: %v", err)
	}
}

// ExportXLSX handles POST /api/v1/reconcile/export/xlsx
// @Summary Export a reconciliation as a spreadsheet
// @Description Runs the same reconciliation and responds with an XLSX workbook
// @Tags reconcile
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param audit formData file true "Form 3CD document"
// @Param itr formData file true "Income tax return document"
// @Param audit_format formData string false "Audit document format (json or xml)" default(json)
// @Param itr_format formData string false "Return document format (json or xml)" default(json)
// @Param category formData string false "Assessee category (Corporate or Non-Corporate)" default(Non-Corporate)
// @Success 200 {string} string "XLSX workbook"
// @Failure 400 {object} ErrorResponseBody "Missing document, unsupported format or invalid category"
// @Router /reconcile/export/xlsx [post]
func (h *ReconcileHandler) ExportXLSX(c *gin.Context) {
	input, ok := h.buildInput(c)
	if !ok {
		return
	}

	report, err := h.reconService.Reconcile(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, report); err != nil {
		log.Printf("reconcileHandler.ExportXLSX: building workbook: %v", err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "could not build spreadsheet")
		return
	}

	filename := export.BuildFilename(report.AssesseeName, "xlsx")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// buildInput assembles the service input from the multipart form.
// Returns false after writing the error response when a part is missing
// or unreadable.
func (h *ReconcileHandler) buildInput(c *gin.Context) (service.ReconcileInput, bool) {
	audit, ok := h.readDocument(c, "audit", "audit_format")
	if !ok {
		return service.ReconcileInput{}, false
	}
	ret, ok := h.readDocument(c, "itr", "itr_format")
	if !ok {
		return service.ReconcileInput{}, false
	}
	return service.ReconcileInput{
		Audit:    audit,
		Return:   ret,
		Category: c.PostForm("category"),
	}, true
}

func (h *ReconcileHandler) readDocument(c *gin.Context, field, formatField string) (service.DocumentInput, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_DOCUMENT", field+" file field is required")
		return service.DocumentInput{}, false
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_DOCUMENT", "could not read "+field+" file")
		return service.DocumentInput{}, false
	}

	return service.DocumentInput{
		Content: content,
		Format:  c.PostForm(formatField),
		Name:    header.Filename,
	}, true
}
