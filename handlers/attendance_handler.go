package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"event-system/models"
	"event-system/services"
)

type AttendanceHandler struct {
	service *services.AttendanceService
}

func NewAttendanceHandler(service *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// UpdateStatus - Audited attendance status transition (organizers only)
func (h *AttendanceHandler) UpdateStatus(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req models.UpdateAttendanceRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	registration, err := h.service.UpdateStatus(
		e.Request.Context(),
		e.Request.PathValue("registrationId"),
		req.Status,
		req.Note,
	)
	if err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, registration)
}

// CheckIn - Verify a check-in code and mark the participant present
func (h *AttendanceHandler) CheckIn(e *core.RequestEvent) error {
	var req models.CheckInRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	registration, err := h.service.CheckIn(
		e.Request.Context(),
		e.Request.PathValue("registrationId"),
		req.Code,
	)
	if err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, registration)
}
