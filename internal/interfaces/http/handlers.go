package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reconciler/internal/ledger"
	"github.com/garyjia/invoice-reconciler/internal/models"
	"github.com/garyjia/invoice-reconciler/internal/reconcile"
	"github.com/garyjia/invoice-reconciler/internal/statement"
)

// Multipart form fields for the two reconciliation inputs.
const (
	FieldVendorStatement = "vendor_statement"
	FieldAPLedger        = "ap_ledger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReconcileRunner runs one reconciliation over the two uploaded inputs.
type ReconcileRunner interface {
	Run(ctx context.Context, statementPDF, ledgerXLSX []byte) (*reconcile.Result, error)
}

// ReportWriter renders reconciled rows as a workbook.
type ReportWriter interface {
	Write(w io.Writer, rows []models.ReconciledRow) error
}

// Handlers contains all HTTP request handlers.
type Handlers struct {
	service        ReconcileRunner
	reports        ReportWriter
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service ReconcileRunner, reports ReportWriter, maxUploadBytes int64, logger *zap.Logger) *Handlers {
	return &Handlers{
		service:        service,
		reports:        reports,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Response represents a standard JSON response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// Reconcile handles POST /api/reconcile and responds with the classified
// table as JSON.
func (h *Handlers) Reconcile(c *gin.Context) {
	result, ok := h.runReconciliation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// DownloadReport handles POST /api/reconcile/report and responds with the
// reconciliation report workbook as an attachment.
func (h *Handlers) DownloadReport(c *gin.Context) {
	result, ok := h.runReconciliation(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reports.Write(&buf, result.Rows); err != nil {
		h.logger.Error("failed to render report workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to render report",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reconciliation_report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// runReconciliation reads both uploads and runs the service. On failure it
// writes the error response and returns ok=false.
func (h *Handlers) runReconciliation(c *gin.Context) (*reconcile.Result, bool) {
	statementBytes, ok := h.formFileBytes(c, FieldVendorStatement)
	if !ok {
		return nil, false
	}
	ledgerBytes, ok := h.formFileBytes(c, FieldAPLedger)
	if !ok {
		return nil, false
	}

	result, err := h.service.Run(c.Request.Context(), statementBytes, ledgerBytes)
	if err != nil {
		switch {
		case errors.Is(err, statement.ErrDocumentParse), errors.Is(err, ledger.ErrLedgerFormat):
			c.JSON(http.StatusUnprocessableEntity, Response{
				Success: false,
				Error:   err.Error(),
			})
		default:
			h.logger.Error("reconciliation run failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, Response{
				Success: false,
				Error:   "reconciliation failed",
			})
		}
		return nil, false
	}
	return result, true
}

// formFileBytes reads one multipart file field to completion.
func (h *Handlers) formFileBytes(c *gin.Context, field string) ([]byte, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   fmt.Sprintf("missing %s file", field),
		})
		return nil, false
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   fmt.Sprintf("%s exceeds the upload size limit", field),
		})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file",
			zap.String("field", field),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   fmt.Sprintf("unreadable %s file", field),
		})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file",
			zap.String("field", field),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   fmt.Sprintf("unreadable %s file", field),
		})
		return nil, false
	}
	return data, true
}
