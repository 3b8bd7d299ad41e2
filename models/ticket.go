package models

import (
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

// Ticket is a purchasable ticket type for an event. Remaining is the
// still-purchasable unit count and never goes below zero.
type Ticket struct {
	ID        string  `json:"id"`
	EventID   string  `json:"event_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Total     int     `json:"total"`
	Remaining int     `json:"remaining"`
}

type CreateTicketRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Total int     `json:"total"`
}

func (r *CreateTicketRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Message: "ticket name is required"}
	}
	if r.Total <= 0 {
		return &ValidationError{Message: "ticket total must be a positive integer"}
	}
	if r.Price < 0 {
		return &ValidationError{Message: "ticket price cannot be negative"}
	}
	return nil
}

func TicketFromRecord(rec *core.Record) *Ticket {
	return &Ticket{
		ID:        rec.Id,
		EventID:   rec.GetString("event"),
		Name:      rec.GetString("name"),
		Price:     rec.GetFloat("price"),
		Total:     rec.GetInt("total"),
		Remaining: rec.GetInt("remaining"),
	}
}
