package reports

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"legal_dashboard/internal/config"
	"legal_dashboard/internal/content"
	"legal_dashboard/internal/handlers"
)

type ReportHandler struct {
	h *handlers.Handler
}

func NewReportHandler(h *handlers.Handler) *ReportHandler {
	return &ReportHandler{h: h}
}

// ExportReport streams a report as an Excel workbook.
// Endpoint: GET /reports/{group}/{slug}/export.xlsx
func (rh *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("group")
	slug := r.PathValue("slug")

	table, ok := rh.h.Reports.Table(groupID, slug)
	if !ok {
		config.RespondNotFound(w, "Report not found")
		return
	}

	// Buffer first so a failed export still gets a clean error response.
	var buf bytes.Buffer
	if err := content.WriteXLSX(&buf, table); err != nil {
		config.RespondInternalError(w, err, rh.h.SessionLogger(r.Context()))
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", groupID, slug)
	w.Header().Set("Content-Type", content.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)

	rh.h.SessionLogger(r.Context()).Info("report exported",
		"group", groupID,
		"slug", slug,
		"rows", len(table.Rows),
	)
}
