package services

// MailEnqueuer is the notification sink: it accepts a destination address,
// subject and body, and queues the message for asynchronous delivery.
// Enqueue reports success/failure synchronously; delivery happens later.
type MailEnqueuer interface {
	Enqueue(to, subject, body string) error
}

// Notifier fans out realtime events to interested clients. All publishes
// are best-effort; callers log failures and move on.
type Notifier interface {
	Publish(channel string, payload map[string]any) error
}
