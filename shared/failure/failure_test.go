package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"nest/shared/failure"
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
		{name: "bad request", err: failure.BadRequest(errors.New("bad input")), code: http.StatusBadRequest, message: "bad input"},
		{name: "bad request from string", err: failure.BadRequestFromString("price is required"), code: http.StatusBadRequest, message: "price is required"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, message: "boom"},
		{name: "unimplemented", err: failure.Unimplemented("Export"), code: http.StatusNotImplemented, message: "Export"},
		{name: "not found", err: failure.NotFound("property not found"), code: http.StatusNotFound, message: "property not found"},
		{name: "conflict", err: failure.Conflict("slot already booked"), code: http.StatusConflict, message: "slot already booked"},
		{name: "forbidden", err: failure.Forbidden("denied"), code: http.StatusForbidden, message: "denied"},
		{name: "too many requests", err: failure.TooManyRequests("slow down"), code: http.StatusTooManyRequests, message: "slow down"},
		{name: "unavailable", err: failure.ServiceUnavailable("shutting down"), code: http.StatusServiceUnavailable, message: "shutting down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure

			assert.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, fail.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "failure", err: failure.NotFound("x"), want: http.StatusNotFound},
		{name: "wrapped failure", err: fmt.Errorf("layer: %w", failure.Conflict("x")), want: http.StatusConflict},
		{name: "predefined", err: failure.InvalidIDParam, want: http.StatusBadRequest},
		{name: "plain error", err: errors.New("x"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	assert.True(t, failure.IsCode(failure.Conflict("x"), http.StatusConflict))
	assert.False(t, failure.IsCode(failure.Conflict("x"), http.StatusNotFound))
	assert.False(t, failure.IsCode(errors.New("x"), http.StatusConflict))
}
