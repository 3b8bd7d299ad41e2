package services

import (
	"context"
	"fmt"
	"log"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"event-system/models"
	"event-system/monitoring"
	"event-system/store"
)

// PaymentService implements the audited status transition flow for
// payments: allow-list check, scoped lookup, update, append-only history,
// and a best-effort completion email when the payment turns paid.
type PaymentService struct {
	store     store.Store
	mail      MailEnqueuer
	generator ContentGenerator
	notifier  Notifier
	monitor   *monitoring.Monitor
}

func NewPaymentService(st store.Store, mail MailEnqueuer, generator ContentGenerator, notifier Notifier, monitor *monitoring.Monitor) *PaymentService {
	return &PaymentService{
		store:     st,
		mail:      mail,
		generator: generator,
		notifier:  notifier,
		monitor:   monitor,
	}
}

// Create records a new payment for an event, starting as unpaid.
func (s *PaymentService) Create(ctx context.Context, eventID string, req models.CreatePaymentRequest) (*models.Payment, error) {
	if eventID == "" {
		return nil, &models.ValidationError{Message: "event_id is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.FindRecord("events", eventID); err != nil {
		if store.IsNotFound(err) {
			return nil, &models.NotFoundError{Entity: "event", ID: eventID}
		}
		return nil, &models.PersistenceError{Op: "find event", Err: err}
	}

	amount, _ := req.Amount.Float64()
	rec, err := s.store.CreateRecord("payments", map[string]any{
		"event":        eventID,
		"registration": req.RegistrationID,
		"amount":       amount,
		"status":       models.PaymentStatusUnpaid,
		"payer_name":   req.PayerName,
		"payer_email":  req.PayerEmail,
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "create payment", Err: err}
	}

	return models.PaymentFromRecord(rec), nil
}

// Get returns a payment scoped by its owning event.
func (s *PaymentService) Get(ctx context.Context, eventID, paymentID string) (*models.Payment, error) {
	rec, err := s.findScoped(eventID, paymentID)
	if err != nil {
		return nil, err
	}
	return models.PaymentFromRecord(rec), nil
}

// UpdateStatus applies a new payment status and appends one history record
// per attempt that reaches the update. There is no transition graph: any
// allowed value may replace any other, including the current one. History
// and notification failures are logged, never surfaced.
func (s *PaymentService) UpdateStatus(ctx context.Context, eventID, paymentID, newStatus string) (*models.Payment, error) {
	if eventID == "" {
		return nil, &models.ValidationError{Message: "event_id is required"}
	}
	if paymentID == "" {
		return nil, &models.ValidationError{Message: "payment_id is required"}
	}
	if newStatus == "" {
		return nil, &models.ValidationError{Message: "status is required"}
	}
	if !models.IsValidPaymentStatus(newStatus) {
		return nil, &models.InvalidStatusError{Status: newStatus, Allowed: models.PaymentStatuses}
	}

	rec, err := s.findScoped(eventID, paymentID)
	if err != nil {
		return nil, err
	}

	oldStatus := rec.GetString("status")
	rec.Set("status", newStatus)

	if err := s.store.SaveRecord(rec); err != nil {
		return nil, &models.PersistenceError{Op: "update payment status", Err: err}
	}

	// The status update is committed and authoritative from here on; the
	// remaining steps are best-effort.
	s.appendHistory(paymentID, oldStatus, newStatus)

	if newStatus == models.PaymentStatusPaid {
		s.sendCompletionMail(ctx, rec)
	}
	s.publishStatusChanged(eventID, paymentID, oldStatus, newStatus)

	if s.monitor != nil {
		s.monitor.TrackStatusTransition("payment", newStatus)
	}

	return models.PaymentFromRecord(rec), nil
}

func (s *PaymentService) findScoped(eventID, paymentID string) (*core.Record, error) {
	rec, err := s.store.FindFirstByFilter(
		"payments",
		"id = {:id} && event = {:event}",
		dbx.Params{"id": paymentID, "event": eventID},
	)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, &models.NotFoundError{Entity: "payment", ID: paymentID}
		}
		return nil, &models.PersistenceError{Op: "find payment", Err: err}
	}
	return rec, nil
}

func (s *PaymentService) appendHistory(paymentID, oldStatus, newStatus string) {
	_, err := s.store.CreateRecord("payment_history", map[string]any{
		"payment":    paymentID,
		"old_status": oldStatus,
		"new_status": newStatus,
	})
	if err != nil {
		log.Printf("Failed to append payment history for %s (%s -> %s): %v", paymentID, oldStatus, newStatus, err)
	}
}

func (s *PaymentService) sendCompletionMail(ctx context.Context, rec *core.Record) {
	if s.mail == nil {
		return
	}

	eventName := ""
	if event, err := s.store.FindRecord("events", rec.GetString("event")); err == nil {
		eventName = event.GetString("name")
	}

	data := map[string]any{
		"payer_name": rec.GetString("payer_name"),
		"amount":     rec.GetFloat("amount"),
		"event_name": eventName,
	}

	body := ""
	if s.generator != nil {
		generated, err := s.generator.Generate(ctx, "payment completion email", data)
		if err != nil {
			log.Printf("Content generation failed for payment %s: %v", rec.Id, err)
		} else {
			body = generated
		}
	}
	if body == "" {
		body = fmt.Sprintf("Hello %v, your payment has been received.", data["payer_name"])
	}

	if err := s.mail.Enqueue(rec.GetString("payer_email"), "Payment received", body); err != nil {
		log.Printf("Failed to enqueue payment completion email for %s: %v", rec.Id, err)
		if s.monitor != nil {
			s.monitor.TrackNotificationFailure("payment_mail")
		}
	}
}

func (s *PaymentService) publishStatusChanged(eventID, paymentID, oldStatus, newStatus string) {
	if s.notifier == nil {
		return
	}

	channel := fmt.Sprintf("event-%s", eventID)
	err := s.notifier.Publish(channel, map[string]any{
		"type":       "payment_status_changed",
		"payment_id": paymentID,
		"old_status": oldStatus,
		"new_status": newStatus,
	})
	if err != nil {
		log.Printf("Failed to publish payment status change for %s: %v", paymentID, err)
		if s.monitor != nil {
			s.monitor.TrackNotificationFailure("payment_realtime")
		}
	}
}
