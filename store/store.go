// Package store wraps the PocketBase record APIs behind a narrow interface
// so services stay testable without a live database.
package store

import (
	"database/sql"
	"errors"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// Store is the persistence collaborator used by all services: key/filter
// reads, inserts, updates over named collections, plus the atomic ticket
// stock operations.
type Store interface {
	FindRecord(collection, id string) (*core.Record, error)
	FindFirstByFilter(collection, filter string, params dbx.Params) (*core.Record, error)
	FindAllByFilter(collection, filter, sort string, limit int, params dbx.Params) ([]*core.Record, error)
	CreateRecord(collection string, fields map[string]any) (*core.Record, error)
	SaveRecord(record *core.Record) error

	// DecrementRemaining decrements a ticket's remaining count by one, but
	// only while it is still positive. The capacity check and the mutation
	// are a single statement, so remaining can never go negative under
	// concurrent registrations. Returns false when the ticket was sold out.
	DecrementRemaining(ticketID string) (bool, error)

	// IncrementRemaining restores one unit of stock. Used as a compensating
	// write when a registration insert fails after a decrement.
	IncrementRemaining(ticketID string) error

	Health() error
}

// IsNotFound reports whether err means the queried record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

type pbStore struct {
	app core.App
}

// New returns a Store backed by the app's database.
func New(app core.App) Store {
	return &pbStore{app: app}
}

func (s *pbStore) FindRecord(collection, id string) (*core.Record, error) {
	return s.app.FindRecordById(collection, id)
}

func (s *pbStore) FindFirstByFilter(collection, filter string, params dbx.Params) (*core.Record, error) {
	return s.app.FindFirstRecordByFilter(collection, filter, params)
}

func (s *pbStore) FindAllByFilter(collection, filter, sort string, limit int, params dbx.Params) ([]*core.Record, error) {
	return s.app.FindRecordsByFilter(collection, filter, sort, limit, 0, params)
}

func (s *pbStore) CreateRecord(collection string, fields map[string]any) (*core.Record, error) {
	col, err := s.app.FindCollectionByNameOrId(collection)
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(col)
	for name, value := range fields {
		record.Set(name, value)
	}

	if err := s.app.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *pbStore) SaveRecord(record *core.Record) error {
	return s.app.Save(record)
}

func (s *pbStore) DecrementRemaining(ticketID string) (bool, error) {
	result, err := s.app.DB().NewQuery(
		"UPDATE tickets SET remaining = remaining - 1 WHERE id = {:id} AND remaining > 0",
	).Bind(dbx.Params{"id": ticketID}).Execute()
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *pbStore) IncrementRemaining(ticketID string) error {
	_, err := s.app.DB().NewQuery(
		"UPDATE tickets SET remaining = remaining + 1 WHERE id = {:id}",
	).Bind(dbx.Params{"id": ticketID}).Execute()
	return err
}

func (s *pbStore) Health() error {
	_, err := s.app.DB().NewQuery("SELECT 1").Execute()
	return err
}
