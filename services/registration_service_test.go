package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"event-system/models"
)

func setupRegistrationService() (*RegistrationService, *MockStore, *MockMail, *MockNotifier) {
	st := &MockStore{}
	mail := &MockMail{}
	notifier := &MockNotifier{}
	service := NewRegistrationService(st, mail, notifier, nil)
	return service, st, mail, notifier
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		EventID:  "event1",
		TicketID: "ticket1",
		Name:     "Alice",
		Email:    "alice@example.com",
	}
}

func ticketRecord(id, eventID string) map[string]any {
	return map[string]any{
		"event":     eventID,
		"name":      "General Admission",
		"remaining": 10,
	}
}

func TestRegistrationService_Register_MissingFields(t *testing.T) {
	service, st, _, _ := setupRegistrationService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing event", models.RegisterRequest{TicketID: "t", Name: "A", Email: "a@b.c"}},
		{"missing ticket", models.RegisterRequest{EventID: "e", Name: "A", Email: "a@b.c"}},
		{"missing name", models.RegisterRequest{EventID: "e", TicketID: "t", Email: "a@b.c"}},
		{"missing email", models.RegisterRequest{EventID: "e", TicketID: "t", Name: "A"}},
		{"blank name", models.RegisterRequest{EventID: "e", TicketID: "t", Name: "   ", Email: "a@b.c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := service.Register(ctx, tc.req)

			assert.Nil(t, result)
			var validation *models.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}

	// No store call should have happened for invalid input.
	st.AssertNotCalled(t, "FindRecord", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_TicketNotFound(t *testing.T) {
	service, st, _, _ := setupRegistrationService()

	st.On("FindRecord", "tickets", "ticket1").Return(nil, sql.ErrNoRows)

	result, err := service.Register(context.Background(), validRegisterRequest())

	assert.Nil(t, result)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ticket", notFound.Entity)
	st.AssertNotCalled(t, "DecrementRemaining", mock.Anything)
}

func TestRegistrationService_Register_TicketFromOtherEvent(t *testing.T) {
	service, st, _, _ := setupRegistrationService()

	st.On("FindRecord", "tickets", "ticket1").
		Return(newTestRecord("tickets", "ticket1", ticketRecord("ticket1", "other-event")), nil)

	result, err := service.Register(context.Background(), validRegisterRequest())

	assert.Nil(t, result)
	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)
	st.AssertNotCalled(t, "DecrementRemaining", mock.Anything)
}

func TestRegistrationService_Register_SoldOut(t *testing.T) {
	service, st, mail, _ := setupRegistrationService()

	st.On("FindRecord", "tickets", "ticket1").
		Return(newTestRecord("tickets", "ticket1", ticketRecord("ticket1", "event1")), nil)
	st.On("DecrementRemaining", "ticket1").Return(false, nil)

	result, err := service.Register(context.Background(), validRegisterRequest())

	assert.Nil(t, result)
	var exhausted *models.CapacityExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "ticket1", exhausted.TicketID)

	// No registration row and no notification for a sold-out attempt.
	st.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything)
	mail.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_Success(t *testing.T) {
	service, st, mail, notifier := setupRegistrationService()

	st.On("FindRecord", "tickets", "ticket1").
		Return(newTestRecord("tickets", "ticket1", ticketRecord("ticket1", "event1")), nil)
	st.On("DecrementRemaining", "ticket1").Return(true, nil)

	var createdFields map[string]any
	st.On("CreateRecord", "registrations", mock.Anything).
		Run(func(args mock.Arguments) {
			createdFields = args.Get(1).(map[string]any)
		}).
		Return(newTestRecord("registrations", "reg1", map[string]any{"event": "event1"}), nil)

	mail.On("Enqueue", "alice@example.com", "Registration confirmed", mock.Anything).Return(nil)
	notifier.On("Publish", "event-event1", mock.Anything).Return(nil)

	result, err := service.Register(context.Background(), validRegisterRequest())

	require.NoError(t, err)
	assert.Equal(t, "reg1", result.RegistrationID)
	assert.Len(t, result.CheckinCode, 8) // 4 random bytes, hex encoded

	// Exactly one registration, created as confirmed, hash stored not code.
	require.NotNil(t, createdFields)
	assert.Equal(t, models.RegistrationStatusConfirmed, createdFields["status"])
	assert.NotEmpty(t, createdFields["checkin_hash"])
	assert.NotContains(t, createdFields["checkin_hash"], result.CheckinCode)

	mail.AssertNumberOfCalls(t, "Enqueue", 1)
	st.AssertNotCalled(t, "IncrementRemaining", mock.Anything)
}

func TestRegistrationService_Register_InsertFailureRestoresStock(t *testing.T) {
	service, st, mail, _ := setupRegistrationService()

	st.On("FindRecord", "tickets", "ticket1").
		Return(newTestRecord("tickets", "ticket1", ticketRecord("ticket1", "event1")), nil)
	st.On("DecrementRemaining", "ticket1").Return(true, nil)
	st.On("CreateRecord", "registrations", mock.Anything).Return(nil, errors.New("disk full"))
	st.On("IncrementRemaining", "ticket1").Return(nil)

	result, err := service.Register(context.Background(), validRegisterRequest())

	assert.Nil(t, result)
	var persistence *models.PersistenceError
	assert.ErrorAs(t, err, &persistence)

	// The stock unit taken by the failed attempt must be given back.
	st.AssertNumberOfCalls(t, "IncrementRemaining", 1)
	mail.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_MailFailureDoesNotFailRequest(t *testing.T) {
	service, st, mail, notifier := setupRegistrationService()

	st.On("FindRecord", "tickets", "ticket1").
		Return(newTestRecord("tickets", "ticket1", ticketRecord("ticket1", "event1")), nil)
	st.On("DecrementRemaining", "ticket1").Return(true, nil)
	st.On("CreateRecord", "registrations", mock.Anything).
		Return(newTestRecord("registrations", "reg1", map[string]any{"event": "event1"}), nil)

	mail.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	notifier.On("Publish", mock.Anything, mock.Anything).Return(errors.New("pubnub down"))

	result, err := service.Register(context.Background(), validRegisterRequest())

	// Notification failures are logged, never surfaced.
	require.NoError(t, err)
	assert.Equal(t, "reg1", result.RegistrationID)
}

func TestRegistrationService_Register_LastUnitRace(t *testing.T) {
	// Two requests hit a ticket with one remaining unit. The conditional
	// decrement admits exactly one of them; the other is rejected instead
	// of driving remaining negative.
	service, st, mail, notifier := setupRegistrationService()

	st.On("FindRecord", "tickets", "ticket1").
		Return(newTestRecord("tickets", "ticket1", map[string]any{
			"event":     "event1",
			"name":      "Last Chance",
			"remaining": 1,
		}), nil)
	st.On("DecrementRemaining", "ticket1").Return(true, nil).Once()
	st.On("DecrementRemaining", "ticket1").Return(false, nil).Once()
	st.On("CreateRecord", "registrations", mock.Anything).
		Return(newTestRecord("registrations", "reg1", map[string]any{"event": "event1"}), nil)
	mail.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notifier.On("Publish", mock.Anything, mock.Anything).Return(nil)

	first, err1 := service.Register(context.Background(), validRegisterRequest())
	second, err2 := service.Register(context.Background(), validRegisterRequest())

	require.NoError(t, err1)
	assert.Equal(t, "reg1", first.RegistrationID)

	assert.Nil(t, second)
	var exhausted *models.CapacityExhaustedError
	assert.ErrorAs(t, err2, &exhausted)

	st.AssertNumberOfCalls(t, "CreateRecord", 1)
}
