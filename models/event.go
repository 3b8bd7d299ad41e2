package models

import (
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartDate   time.Time `json:"start_date"`
	Status      string    `json:"status"` // draft, published, ended
	Organizer   string    `json:"organizer"`
	Created     time.Time `json:"created"`
}

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	StartDate   string `json:"start_date"`
}

func (r *CreateEventRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Message: "event name is required"}
	}
	if strings.TrimSpace(r.Venue) == "" {
		return &ValidationError{Message: "event venue is required"}
	}
	return nil
}

// EventFromRecord maps an events collection record to its API representation.
func EventFromRecord(rec *core.Record) *Event {
	return &Event{
		ID:          rec.Id,
		Name:        rec.GetString("name"),
		Description: rec.GetString("description"),
		Venue:       rec.GetString("venue"),
		StartDate:   rec.GetDateTime("start_date").Time(),
		Status:      rec.GetString("status"),
		Organizer:   rec.GetString("organizer"),
		Created:     rec.GetDateTime("created").Time(),
	}
}
