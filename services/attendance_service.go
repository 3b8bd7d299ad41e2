package services

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"event-system/models"
	"event-system/monitoring"
	"event-system/store"
)

// AttendanceService applies the audited status transition flow to the
// attendance field of a registration, with an optional free-text note.
type AttendanceService struct {
	store   store.Store
	monitor *monitoring.Monitor
}

func NewAttendanceService(st store.Store, monitor *monitoring.Monitor) *AttendanceService {
	return &AttendanceService{store: st, monitor: monitor}
}

// UpdateStatus sets a registration's attendance status and appends one
// history record per attempt that reaches the update. Audit failures are
// logged, never surfaced.
func (s *AttendanceService) UpdateStatus(ctx context.Context, registrationID, newStatus, note string) (*models.Registration, error) {
	if registrationID == "" {
		return nil, &models.ValidationError{Message: "registration_id is required"}
	}
	if newStatus == "" {
		return nil, &models.ValidationError{Message: "status is required"}
	}
	if !models.IsValidAttendanceStatus(newStatus) {
		return nil, &models.InvalidStatusError{Status: newStatus, Allowed: models.AttendanceStatuses}
	}

	rec, err := s.store.FindRecord("registrations", registrationID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, &models.NotFoundError{Entity: "registration", ID: registrationID}
		}
		return nil, &models.PersistenceError{Op: "find registration", Err: err}
	}

	oldStatus := rec.GetString("attendance_status")
	rec.Set("attendance_status", newStatus)
	rec.Set("attendance_note", note)

	if err := s.store.SaveRecord(rec); err != nil {
		return nil, &models.PersistenceError{Op: "update attendance status", Err: err}
	}

	s.appendHistory(registrationID, oldStatus, newStatus, note)

	if s.monitor != nil {
		s.monitor.TrackStatusTransition("attendance", newStatus)
	}

	return models.RegistrationFromRecord(rec), nil
}

// CheckIn verifies a registration's check-in code and marks it present.
func (s *AttendanceService) CheckIn(ctx context.Context, registrationID, code string) (*models.Registration, error) {
	if registrationID == "" {
		return nil, &models.ValidationError{Message: "registration_id is required"}
	}
	if code == "" {
		return nil, &models.ValidationError{Message: "check-in code is required"}
	}

	rec, err := s.store.FindRecord("registrations", registrationID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, &models.NotFoundError{Entity: "registration", ID: registrationID}
		}
		return nil, &models.PersistenceError{Op: "find registration", Err: err}
	}

	hash := rec.GetString("checkin_hash")
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return nil, &models.ValidationError{Message: "invalid check-in code"}
	}

	return s.UpdateStatus(ctx, registrationID, models.AttendanceStatusPresent, "")
}

func (s *AttendanceService) appendHistory(registrationID, oldStatus, newStatus, note string) {
	_, err := s.store.CreateRecord("attendance_history", map[string]any{
		"registration": registrationID,
		"old_status":   oldStatus,
		"new_status":   newStatus,
		"note":         note,
	})
	if err != nil {
		log.Printf("Failed to append attendance history for %s (%s -> %s): %v", registrationID, oldStatus, newStatus, err)
	}
}
