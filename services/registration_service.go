package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"event-system/models"
	"event-system/monitoring"
	"event-system/store"
	"event-system/utils"
)

// RegistrationService implements the inventory-gated registration flow:
// the capacity check and stock decrement are a single conditional update,
// so two concurrent registrations for the last unit cannot both succeed.
type RegistrationService struct {
	store    store.Store
	mail     MailEnqueuer
	notifier Notifier
	monitor  *monitoring.Monitor
}

func NewRegistrationService(st store.Store, mail MailEnqueuer, notifier Notifier, monitor *monitoring.Monitor) *RegistrationService {
	return &RegistrationService{
		store:    st,
		mail:     mail,
		notifier: notifier,
		monitor:  monitor,
	}
}

// Register creates exactly one registration and takes one unit of ticket
// stock, or creates nothing and reports why. The confirmation email and
// realtime publish afterwards are best-effort.
func (s *RegistrationService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegistrationResult, error) {
	started := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	ticket, err := s.store.FindRecord("tickets", req.TicketID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, &models.NotFoundError{Entity: "ticket", ID: req.TicketID}
		}
		return nil, &models.PersistenceError{Op: "find ticket", Err: err}
	}

	if ticket.GetString("event") != req.EventID {
		return nil, &models.ValidationError{Message: "ticket does not belong to this event"}
	}

	// Capacity gate. The decrement only succeeds while remaining > 0, so
	// the check and the mutation are one atomic step.
	ok, err := s.store.DecrementRemaining(req.TicketID)
	if err != nil {
		return nil, &models.PersistenceError{Op: "decrement ticket stock", Err: err}
	}
	if !ok {
		if s.monitor != nil {
			s.monitor.TrackCapacityRejection(req.EventID)
			s.monitor.TrackRegistration(req.EventID, "sold_out")
		}
		return nil, &models.CapacityExhaustedError{TicketID: req.TicketID}
	}

	code, err := utils.GenerateCode(4)
	if err != nil {
		s.restoreStock(req.TicketID)
		return nil, fmt.Errorf("generate check-in code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		s.restoreStock(req.TicketID)
		return nil, fmt.Errorf("hash check-in code: %w", err)
	}

	registration, err := s.store.CreateRecord("registrations", map[string]any{
		"event":        req.EventID,
		"ticket":       req.TicketID,
		"name":         req.Name,
		"email":        req.Email,
		"extra":        req.Extra,
		"status":       models.RegistrationStatusConfirmed,
		"checkin_hash": string(hash),
	})
	if err != nil {
		// The stock unit was already taken; give it back so the failed
		// attempt does not leak inventory.
		s.restoreStock(req.TicketID)
		if s.monitor != nil {
			s.monitor.TrackRegistration(req.EventID, "error")
		}
		return nil, &models.PersistenceError{Op: "create registration", Err: err}
	}

	s.sendConfirmation(req, ticket.GetString("name"), code)
	s.publishRegistered(req.EventID, registration.Id)

	if s.monitor != nil {
		s.monitor.TrackRegistration(req.EventID, "confirmed")
		s.monitor.TrackRegistrationDuration(time.Since(started))
	}

	return &models.RegistrationResult{
		RegistrationID: registration.Id,
		CheckinCode:    code,
	}, nil
}

func (s *RegistrationService) restoreStock(ticketID string) {
	if err := s.store.IncrementRemaining(ticketID); err != nil {
		log.Printf("Failed to restore stock for ticket %s: %v", ticketID, err)
	}
}

func (s *RegistrationService) sendConfirmation(req models.RegisterRequest, ticketName, code string) {
	if s.mail == nil {
		return
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour registration is confirmed.\n\nTicket: %s\nCheck-in code: %s\n\nPlease keep the check-in code, you will need it at the entrance.",
		req.Name, ticketName, code,
	)

	if err := s.mail.Enqueue(req.Email, "Registration confirmed", body); err != nil {
		log.Printf("Failed to enqueue confirmation email for %s: %v", req.Email, err)
		if s.monitor != nil {
			s.monitor.TrackNotificationFailure("registration_mail")
		}
	}
}

func (s *RegistrationService) publishRegistered(eventID, registrationID string) {
	if s.notifier == nil {
		return
	}

	channel := fmt.Sprintf("event-%s", eventID)
	err := s.notifier.Publish(channel, map[string]any{
		"type":            "registration_created",
		"registration_id": registrationID,
	})
	if err != nil {
		log.Printf("Failed to publish registration event for %s: %v", eventID, err)
		if s.monitor != nil {
			s.monitor.TrackNotificationFailure("registration_realtime")
		}
	}
}
