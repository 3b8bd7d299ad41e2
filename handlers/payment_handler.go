package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"event-system/models"
	"event-system/services"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Create - Record a new payment for an event (organizers only)
func (h *PaymentHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req models.CreatePaymentRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	payment, err := h.service.Create(e.Request.Context(), e.Request.PathValue("eventId"), req)
	if err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, payment)
}

// Get - Fetch a payment scoped by its owning event (organizers only)
func (h *PaymentHandler) Get(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	payment, err := h.service.Get(
		e.Request.Context(),
		e.Request.PathValue("eventId"),
		e.Request.PathValue("paymentId"),
	)
	if err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, payment)
}

// UpdateStatus - Audited payment status transition (organizers only)
func (h *PaymentHandler) UpdateStatus(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	payment, err := h.service.UpdateStatus(
		e.Request.Context(),
		e.Request.PathValue("eventId"),
		e.Request.PathValue("paymentId"),
		req.Status,
	)
	if err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, payment)
}
