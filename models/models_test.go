package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatusAllowList(t *testing.T) {
	for _, status := range PaymentStatuses {
		assert.True(t, IsValidPaymentStatus(status), status)
	}

	assert.False(t, IsValidPaymentStatus("completed"))
	assert.False(t, IsValidPaymentStatus("PAID"))
	assert.False(t, IsValidPaymentStatus(""))
}

func TestAttendanceStatusAllowList(t *testing.T) {
	for _, status := range AttendanceStatuses {
		assert.True(t, IsValidAttendanceStatus(status), status)
	}

	assert.False(t, IsValidAttendanceStatus("attending"))
	assert.False(t, IsValidAttendanceStatus("Present"))
	assert.False(t, IsValidAttendanceStatus(""))
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		EventID:  "event1",
		TicketID: "ticket1",
		Name:     "Alice",
		Email:    "alice@example.com",
	}
	assert.NoError(t, valid.Validate())

	blankName := valid
	blankName.Name = "  "
	err := blankName.Validate()
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "participant name is required", validation.Message)

	noTicket := valid
	noTicket.TicketID = ""
	assert.ErrorAs(t, noTicket.Validate(), &validation)
}

func TestCreatePaymentRequest_Validate(t *testing.T) {
	valid := CreatePaymentRequest{
		Amount:     decimal.NewFromInt(150),
		PayerName:  "Bob",
		PayerEmail: "bob@example.com",
	}
	assert.NoError(t, valid.Validate())

	// Zero is a legal amount (free tickets still get a payment row).
	free := valid
	free.Amount = decimal.Zero
	assert.NoError(t, free.Validate())

	negative := valid
	negative.Amount = decimal.NewFromFloat(-0.01)
	var validation *ValidationError
	assert.ErrorAs(t, negative.Validate(), &validation)

	noPayer := valid
	noPayer.PayerName = ""
	assert.ErrorAs(t, noPayer.Validate(), &validation)
}

func TestErrorMessages(t *testing.T) {
	notFound := &NotFoundError{Entity: "ticket", ID: "t1"}
	assert.Equal(t, `ticket "t1" not found`, notFound.Error())

	soldOut := &CapacityExhaustedError{TicketID: "t1"}
	assert.Equal(t, `ticket "t1" is sold out`, soldOut.Error())

	invalid := &InvalidStatusError{Status: "completed", Allowed: PaymentStatuses}
	assert.Contains(t, invalid.Error(), `"completed"`)
	assert.Contains(t, invalid.Error(), "unpaid, paid, cancelled, refunded")
}

func TestPersistenceError_Unwrap(t *testing.T) {
	inner := assert.AnError
	err := &PersistenceError{Op: "create registration", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "create registration")
}
