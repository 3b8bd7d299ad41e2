package models

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or malformed request input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// CapacityExhaustedError reports that a ticket has no remaining stock.
type CapacityExhaustedError struct {
	TicketID string
}

func (e *CapacityExhaustedError) Error() string {
	return fmt.Sprintf("ticket %q is sold out", e.TicketID)
}

// InvalidStatusError reports a target status outside the allow-list.
type InvalidStatusError struct {
	Status  string
	Allowed []string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q, allowed values: %s", e.Status, strings.Join(e.Allowed, ", "))
}

// PersistenceError wraps a failed primary write against the record store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
