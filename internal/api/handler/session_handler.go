package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/api/metrics"
	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/core/service"
)

// SessionHandler handles HTTP requests for the appointment book.
type SessionHandler struct {
	sessions  ports.SessionService
	dashboard ports.DashboardService
}

func NewSessionHandler(sessions ports.SessionService, dashboard ports.DashboardService) *SessionHandler {
	return &SessionHandler{sessions: sessions, dashboard: dashboard}
}

// List handles GET /v1/sessions, oldest first, with patient names joined.
//
// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Scheduled, Completed or Cancelled"
// @Param        date    query     string  false  "Day prefix, YYYY-MM-DD"
// @Success      200     {array}   sessionViewResponse
// @Failure      400     {object}  errorResponse
// @Router       /v1/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	status := domain.SessionStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "status must be one of: Scheduled Completed Cancelled"})
	}

	views, err := h.dashboard.ListSessions(c.Request().Context(), ports.SessionFilter{
		Status:     status,
		DatePrefix: c.QueryParam("date"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionViews(views))
}

// Create handles POST /v1/sessions.
//
// @Summary      Schedule a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sessionRequest  true  "Session"
// @Success      201   {object}  domain.Session
// @Failure      400   {object}  errorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.sessions.Create(c.Request().Context(), toSessionInput(req))
	if err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(service.KeySessions, "create").Inc()
	return c.JSON(http.StatusCreated, s)
}

// Update handles PUT /v1/sessions/:id. An unknown id creates the session.
//
// @Summary      Save a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Session id"
// @Param        body  body      sessionRequest  true  "Session"
// @Success      200   {object}  domain.Session
// @Failure      400   {object}  errorResponse
// @Router       /v1/sessions/{id} [put]
func (h *SessionHandler) Update(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.sessions.Save(c.Request().Context(), c.Param("id"), toSessionInput(req))
	if err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(service.KeySessions, "update").Inc()
	return c.JSON(http.StatusOK, s)
}

// Delete handles DELETE /v1/sessions/:id.
//
// @Summary      Delete a session
// @Tags         sessions
// @Security     BearerAuth
// @Param        id  path  string  true  "Session id"
// @Success      204
// @Router       /v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c echo.Context) error {
	if err := h.sessions.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(service.KeySessions, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
