package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/api/metrics"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/core/service"
)

// PatientHandler handles HTTP requests for the patient directory.
type PatientHandler struct {
	patients  ports.PatientService
	dashboard ports.DashboardService
	summaries ports.SummaryService
}

func NewPatientHandler(patients ports.PatientService, dashboard ports.DashboardService, summaries ports.SummaryService) *PatientHandler {
	return &PatientHandler{patients: patients, dashboard: dashboard, summaries: summaries}
}

// List handles GET /v1/patients.
//
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Case-insensitive first or last name substring"
// @Param        pathology  query     string  false  "Exact pathology"
// @Success      200        {array}   domain.Patient
// @Failure      500        {object}  errorResponse
// @Router       /v1/patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	patients, err := h.dashboard.ListPatients(c.Request().Context(), patientFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

// Pathologies handles GET /v1/patients/pathologies.
//
// @Summary      Distinct pathologies
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  string
// @Router       /v1/patients/pathologies [get]
func (h *PatientHandler) Pathologies(c echo.Context) error {
	list, err := h.dashboard.Pathologies(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Create handles POST /v1/patients.
//
// @Summary      Create a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patientRequest  true  "Patient"
// @Success      201   {object}  domain.Patient
// @Failure      400   {object}  errorResponse
// @Router       /v1/patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.patients.Create(c.Request().Context(), toPatientInput(req))
	if err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(service.KeyPatients, "create").Inc()
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /v1/patients/:id. An unknown id creates the patient.
//
// @Summary      Save a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Patient id"
// @Param        body  body      patientRequest  true  "Patient"
// @Success      200   {object}  domain.Patient
// @Failure      400   {object}  errorResponse
// @Router       /v1/patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.patients.Save(c.Request().Context(), c.Param("id"), toPatientInput(req))
	if err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(service.KeyPatients, "update").Inc()
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/patients/:id. Sessions of the patient are kept.
//
// @Summary      Delete a patient
// @Tags         patients
// @Security     BearerAuth
// @Param        id  path  string  true  "Patient id"
// @Success      204
// @Router       /v1/patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error {
	if err := h.patients.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(service.KeyPatients, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Sessions handles GET /v1/patients/:id/sessions, most recent first.
//
// @Summary      Session history of a patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path   string  true  "Patient id"
// @Success      200 {array} domain.Session
// @Router       /v1/patients/{id}/sessions [get]
func (h *PatientHandler) Sessions(c echo.Context) error {
	sessions, err := h.dashboard.SessionsForPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessions)
}

// Summary handles POST /v1/patients/:id/summary. The request may carry
// draft notes; otherwise the stored notes are summarized. Nothing is saved.
//
// @Summary      Summarize patient notes
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true   "Patient id"
// @Param        body  body      summaryRequest  false  "Draft notes"
// @Success      200   {object}  summaryResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/patients/{id}/summary [post]
func (h *PatientHandler) Summary(c echo.Context) error {
	var req summaryRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		}
	}

	notes := req.Notes
	if strings.TrimSpace(notes) == "" {
		p, err := h.patients.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		notes = p.Notes
	}

	start := time.Now()
	res := h.summaries.Summarize(c.Request().Context(), notes)
	metrics.SummaryDuration.Observe(time.Since(start).Seconds())
	result := "ok"
	if !res.OK() {
		result = "fallback"
	}
	metrics.SummariesTotal.WithLabelValues(result).Inc()

	return c.JSON(http.StatusOK, summaryResponse{
		Summary:   res.Text,
		Notes:     service.AppendSummary(notes, res.Text),
		Generated: res.OK(),
	})
}

func patientFilter(c echo.Context) ports.PatientFilter {
	return ports.PatientFilter{
		Search:    strings.TrimSpace(c.QueryParam("search")),
		Pathology: c.QueryParam("pathology"),
	}
}
