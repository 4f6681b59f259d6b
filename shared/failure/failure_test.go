package failure_test

import (
	"errors"
	"fmt"
	"mentorbook/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("date is malformed")), code: http.StatusBadRequest, message: "date is malformed"},
		{name: "bad request from string", err: failure.BadRequestFromString("cannot book yourself"), code: http.StatusBadRequest, message: "cannot book yourself"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "payment required", err: failure.PaymentRequired("insufficient coins"), code: http.StatusPaymentRequired, message: "insufficient coins"},
		{name: "forbidden", err: failure.Forbidden("only the target can accept"), code: http.StatusForbidden, message: "only the target can accept"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("slot is no longer available"), code: http.StatusConflict, message: "slot is no longer available"},
		{name: "restricted", err: failure.ResourceRestrictedError, code: http.StatusForbidden, message: "You don't have permission to access this resource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.message)
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "wrapped failure", err: fmt.Errorf("failed to create booking: %w", failure.Conflict("taken")), code: http.StatusConflict},
		{name: "plain error", err: errors.New("connection reset"), code: http.StatusInternalServerError},
		{name: "nil", err: nil, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}
