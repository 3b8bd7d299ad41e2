package models

import (
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

const (
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
)

type Registration struct {
	ID               string         `json:"id"`
	EventID          string         `json:"event_id"`
	TicketID         string         `json:"ticket_id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Extra            map[string]any `json:"extra,omitempty"`
	Status           string         `json:"status"`
	AttendanceStatus string         `json:"attendance_status,omitempty"`
	AttendanceNote   string         `json:"attendance_note,omitempty"`
	Created          time.Time      `json:"created"`
}

type RegisterRequest struct {
	EventID  string         `json:"event_id"`
	TicketID string         `json:"ticket_id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Extra    map[string]any `json:"extra,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if r.EventID == "" {
		return &ValidationError{Message: "event_id is required"}
	}
	if r.TicketID == "" {
		return &ValidationError{Message: "ticket_id is required"}
	}
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Message: "participant name is required"}
	}
	if strings.TrimSpace(r.Email) == "" {
		return &ValidationError{Message: "participant email is required"}
	}
	return nil
}

// RegistrationResult is returned on successful registration. The check-in
// code is only available here and in the confirmation email; the store keeps
// a hash.
type RegistrationResult struct {
	RegistrationID string `json:"registration_id"`
	CheckinCode    string `json:"checkin_code"`
}

func RegistrationFromRecord(rec *core.Record) *Registration {
	reg := &Registration{
		ID:               rec.Id,
		EventID:          rec.GetString("event"),
		TicketID:         rec.GetString("ticket"),
		Name:             rec.GetString("name"),
		Email:            rec.GetString("email"),
		Status:           rec.GetString("status"),
		AttendanceStatus: rec.GetString("attendance_status"),
		AttendanceNote:   rec.GetString("attendance_note"),
		Created:          rec.GetDateTime("created").Time(),
	}
	if extra, ok := rec.Get("extra").(map[string]any); ok {
		reg.Extra = extra
	}
	return reg
}
