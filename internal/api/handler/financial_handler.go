package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/api/metrics"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/core/service"
)

// FinancialHandler handles the ledger. Routes are mounted behind RBAC(admin).
type FinancialHandler struct {
	financials ports.FinancialService
	dashboard  ports.DashboardService
}

func NewFinancialHandler(financials ports.FinancialService, dashboard ports.DashboardService) *FinancialHandler {
	return &FinancialHandler{financials: financials, dashboard: dashboard}
}

// List handles GET /v1/financials, most recently added first.
//
// @Summary      List financial records
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.FinancialRecord
// @Failure      403  {object}  errorResponse
// @Router       /v1/financials [get]
func (h *FinancialHandler) List(c echo.Context) error {
	records, err := h.dashboard.RecentFinancials(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Create handles POST /v1/financials.
//
// @Summary      Add a financial record
// @Tags         financials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      financialRequest  true  "Record"
// @Success      201   {object}  domain.FinancialRecord
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/financials [post]
func (h *FinancialHandler) Create(c echo.Context) error {
	var req financialRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rec, err := h.financials.Create(c.Request().Context(), toFinancialInput(req))
	if err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(service.KeyFinancials, "create").Inc()
	return c.JSON(http.StatusCreated, rec)
}

// Delete handles DELETE /v1/financials/:id.
//
// @Summary      Delete a financial record
// @Tags         financials
// @Security     BearerAuth
// @Param        id  path  string  true  "Record id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /v1/financials/{id} [delete]
func (h *FinancialHandler) Delete(c echo.Context) error {
	if err := h.financials.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(service.KeyFinancials, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Totals handles GET /v1/financials/totals.
//
// @Summary      Income, expense and net totals
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  totalsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/financials/totals [get]
func (h *FinancialHandler) Totals(c echo.Context) error {
	totals, err := h.dashboard.FinancialTotals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTotalsResponse(totals))
}
