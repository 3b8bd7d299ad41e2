package services

import (
	"log"
	"net/mail"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"

	"event-system/store"
)

const (
	MailStatusPending = "pending"
	MailStatusSent    = "sent"
	MailStatusFailed  = "failed"
)

// MailService is the notification sink. Enqueue writes a pending mail_queue
// record; a cron-driven Dispatch drains the queue through the app mailer.
// Delivery is asynchronous, so a successful Enqueue only means the message
// was accepted for later sending.
type MailService struct {
	store       store.Store
	app         core.App
	batchSize   int
	maxAttempts int
}

func NewMailService(st store.Store, app core.App, batchSize int) *MailService {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &MailService{
		store:       st,
		app:         app,
		batchSize:   batchSize,
		maxAttempts: 3,
	}
}

// Enqueue accepts a message for asynchronous delivery.
func (s *MailService) Enqueue(to, subject, body string) error {
	_, err := s.store.CreateRecord("mail_queue", map[string]any{
		"recipient": to,
		"subject":   subject,
		"body":      body,
		"status":    MailStatusPending,
		"attempts":  0,
	})
	return err
}

// Dispatch sends a batch of pending messages. Failures are recorded on the
// queue record; a message is retried until it runs out of attempts.
func (s *MailService) Dispatch() {
	pending, err := s.store.FindAllByFilter(
		"mail_queue",
		"status = {:status}",
		"created",
		s.batchSize,
		dbx.Params{"status": MailStatusPending},
	)
	if err != nil {
		log.Printf("Mail dispatch: failed to load pending messages: %v", err)
		return
	}

	if len(pending) == 0 {
		return
	}

	client := s.app.NewMailClient()
	sent := 0

	for _, rec := range pending {
		message := &mailer.Message{
			From: mail.Address{
				Name:    s.app.Settings().Meta.SenderName,
				Address: s.app.Settings().Meta.SenderAddress,
			},
			To:      []mail.Address{{Address: rec.GetString("recipient")}},
			Subject: rec.GetString("subject"),
			Text:    rec.GetString("body"),
		}

		attempts := rec.GetInt("attempts") + 1
		rec.Set("attempts", attempts)

		if err := client.Send(message); err != nil {
			rec.Set("last_error", err.Error())
			if attempts >= s.maxAttempts {
				rec.Set("status", MailStatusFailed)
				log.Printf("Mail dispatch: giving up on %s after %d attempts: %v", rec.Id, attempts, err)
			}
		} else {
			rec.Set("status", MailStatusSent)
			rec.Set("last_error", "")
			sent++
		}

		if err := s.store.SaveRecord(rec); err != nil {
			log.Printf("Mail dispatch: failed to update queue record %s: %v", rec.Id, err)
		}
	}

	log.Printf("Mail dispatch: sent %d of %d pending messages", sent, len(pending))
}
