package handlers

import (
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"event-system/models"
	"event-system/services"
	"event-system/store"
)

type RegistrationHandler struct {
	store   store.Store
	service *services.RegistrationService
}

func NewRegistrationHandler(st store.Store, service *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{store: st, service: service}
}

// Register - Create a registration for an event ticket (public)
func (h *RegistrationHandler) Register(e *core.RequestEvent) error {
	var req models.RegisterRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	req.EventID = e.Request.PathValue("eventId")

	result, err := h.service.Register(e.Request.Context(), req)
	if err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, result)
}

// List - List registrations for an event (organizers only)
func (h *RegistrationHandler) List(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	eventID := e.Request.PathValue("eventId")

	records, err := h.store.FindAllByFilter(
		"registrations",
		"event = {:event}",
		"-created",
		200,
		dbx.Params{"event": eventID},
	)
	if err != nil {
		return toApiError(err)
	}

	result := make([]*models.Registration, 0, len(records))
	for _, rec := range records {
		result = append(result, models.RegistrationFromRecord(rec))
	}

	return e.JSON(http.StatusOK, result)
}
