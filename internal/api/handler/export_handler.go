package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/export"
)

const mimeCSV = "text/csv; charset=utf-8"

type ExportHandler struct {
	dashboard ports.DashboardService
	records   ports.Repository[domain.FinancialRecord]
}

func NewExportHandler(dashboard ports.DashboardService, records ports.Repository[domain.FinancialRecord]) *ExportHandler {
	return &ExportHandler{dashboard: dashboard, records: records}
}

// Patients handles GET /v1/export/patients.csv with the same filters as the list.
//
// @Summary      Export patients as CSV
// @Tags         export
// @Produce      text/csv
// @Security     BearerAuth
// @Param        search     query  string  false  "Name substring"
// @Param        pathology  query  string  false  "Exact pathology"
// @Success      200
// @Router       /v1/export/patients.csv [get]
func (h *ExportHandler) Patients(c echo.Context) error {
	patients, err := h.dashboard.ListPatients(c.Request().Context(), patientFilter(c))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WritePatients(&buf, patients); err != nil {
		return err
	}
	return attachment(c, "patients_export.csv", buf.Bytes())
}

// Financials handles GET /v1/export/financials.csv in storage order.
//
// @Summary      Export financial records as CSV
// @Tags         export
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200
// @Failure      403  {object}  errorResponse
// @Router       /v1/export/financials.csv [get]
func (h *ExportHandler) Financials(c echo.Context) error {
	records, err := h.records.List(c.Request().Context())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WriteFinancials(&buf, records); err != nil {
		return err
	}
	return attachment(c, "financials_export.csv", buf.Bytes())
}

func attachment(c echo.Context, name string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, mimeCSV, body)
}
