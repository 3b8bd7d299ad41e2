package services

import (
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/mock"
)

// MockStore implements store.Store for service tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindRecord(collection, id string) (*core.Record, error) {
	args := m.Called(collection, id)
	if rec, ok := args.Get(0).(*core.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) FindFirstByFilter(collection, filter string, params dbx.Params) (*core.Record, error) {
	args := m.Called(collection, filter, params)
	if rec, ok := args.Get(0).(*core.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) FindAllByFilter(collection, filter, sort string, limit int, params dbx.Params) ([]*core.Record, error) {
	args := m.Called(collection, filter, sort, limit, params)
	if recs, ok := args.Get(0).([]*core.Record); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateRecord(collection string, fields map[string]any) (*core.Record, error) {
	args := m.Called(collection, fields)
	if rec, ok := args.Get(0).(*core.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) SaveRecord(record *core.Record) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockStore) DecrementRemaining(ticketID string) (bool, error) {
	args := m.Called(ticketID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) IncrementRemaining(ticketID string) error {
	args := m.Called(ticketID)
	return args.Error(0)
}

func (m *MockStore) Health() error {
	args := m.Called()
	return args.Error(0)
}

// MockMail implements MailEnqueuer.
type MockMail struct {
	mock.Mock
}

func (m *MockMail) Enqueue(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

// MockNotifier implements Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(channel string, payload map[string]any) error {
	args := m.Called(channel, payload)
	return args.Error(0)
}

// newTestRecord builds an in-memory record with plain text/number fields so
// Get/Set round-trips work without a database.
func newTestRecord(collection, id string, fields map[string]any) *core.Record {
	col := core.NewBaseCollection(collection)
	for name, value := range fields {
		switch value.(type) {
		case int, int64, float64:
			col.Fields.Add(&core.NumberField{Name: name})
		default:
			col.Fields.Add(&core.TextField{Name: name})
		}
	}

	rec := core.NewRecord(col)
	rec.Id = id
	for name, value := range fields {
		rec.Set(name, value)
	}
	return rec
}
