package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview handles GET /v1/dashboard.
//
// @Summary      Dashboard counts, weekly activity and status breakdown
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	overview, err := h.dashboard.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(overview))
}
