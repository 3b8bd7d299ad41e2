package handlers

import (
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"event-system/models"
	"event-system/store"
)

type EventHandler struct {
	store store.Store
}

func NewEventHandler(st store.Store) *EventHandler {
	return &EventHandler{store: st}
}

// Create - Create a new event (organizers only)
func (h *EventHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req models.CreateEventRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return toApiError(err)
	}

	rec, err := h.store.CreateRecord("events", map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"venue":       req.Venue,
		"start_date":  req.StartDate,
		"status":      "draft",
		"organizer":   e.Auth.Id,
	})
	if err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, models.EventFromRecord(rec))
}

// List - List published events (public)
func (h *EventHandler) List(e *core.RequestEvent) error {
	records, err := h.store.FindAllByFilter(
		"events",
		"status = {:status}",
		"-start_date",
		100,
		dbx.Params{"status": "published"},
	)
	if err != nil {
		return toApiError(err)
	}

	result := make([]*models.Event, 0, len(records))
	for _, rec := range records {
		result = append(result, models.EventFromRecord(rec))
	}

	return e.JSON(http.StatusOK, result)
}

// CreateTicket - Add a ticket type to an event (organizers only)
func (h *EventHandler) CreateTicket(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	eventID := e.Request.PathValue("eventId")

	var req models.CreateTicketRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return toApiError(err)
	}

	if _, err := h.store.FindRecord("events", eventID); err != nil {
		if store.IsNotFound(err) {
			return apis.NewNotFoundError("event not found", nil)
		}
		return toApiError(err)
	}

	rec, err := h.store.CreateRecord("tickets", map[string]any{
		"event":     eventID,
		"name":      req.Name,
		"price":     req.Price,
		"total":     req.Total,
		"remaining": req.Total,
	})
	if err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, models.TicketFromRecord(rec))
}

// ListTickets - List ticket types with remaining stock for an event (public)
func (h *EventHandler) ListTickets(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("eventId")

	records, err := h.store.FindAllByFilter(
		"tickets",
		"event = {:event}",
		"price",
		100,
		dbx.Params{"event": eventID},
	)
	if err != nil {
		return toApiError(err)
	}

	result := make([]*models.Ticket, 0, len(records))
	for _, rec := range records {
		result = append(result, models.TicketFromRecord(rec))
	}

	return e.JSON(http.StatusOK, result)
}
