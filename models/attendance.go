package models

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
)

const (
	AttendanceStatusPresent    = "present"
	AttendanceStatusAbsent     = "absent"
	AttendanceStatusLate       = "late"
	AttendanceStatusEarlyLeave = "early_leave"
)

// AttendanceStatuses is the flat allow-list for attendance status values.
var AttendanceStatuses = []string{
	AttendanceStatusPresent,
	AttendanceStatusAbsent,
	AttendanceStatusLate,
	AttendanceStatusEarlyLeave,
}

func IsValidAttendanceStatus(status string) bool {
	for _, s := range AttendanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type UpdateAttendanceRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type CheckInRequest struct {
	Code string `json:"code"`
}

// AttendanceHistoryEntry is one immutable audit record for an attendance
// status transition.
type AttendanceHistoryEntry struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	Note           string    `json:"note,omitempty"`
	Created        time.Time `json:"created"`
}

func AttendanceHistoryFromRecord(rec *core.Record) *AttendanceHistoryEntry {
	return &AttendanceHistoryEntry{
		ID:             rec.Id,
		RegistrationID: rec.GetString("registration"),
		OldStatus:      rec.GetString("old_status"),
		NewStatus:      rec.GetString("new_status"),
		Note:           rec.GetString("note"),
		Created:        rec.GetDateTime("created").Time(),
	}
}
