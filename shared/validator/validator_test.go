package validator_test

import (
	"net/http"
	"nest/shared/failure"
	"nest/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewingRequest struct {
	RenterName  string `json:"renterName"  validate:"required,max=10"`
	RenterEmail string `json:"renterEmail" validate:"required,email"`
	Bedrooms    *int   `json:"bedrooms"    validate:"required,gte=0,lte=20"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending confirmed"`
	Date        string `json:"date"        validate:"omitempty,date"`
}

func TestValidateStruct(t *testing.T) {
	two := 2
	tooMany := 21

	tests := []struct {
		name    string
		data    viewingRequest
		wantErr string
	}{
		{
			name: "valid",
			data: viewingRequest{RenterName: "Dana", RenterEmail: "dana@example.com", Bedrooms: &two, Status: "pending"},
		},
		{
			name:    "missing required field reports json name",
			data:    viewingRequest{RenterEmail: "dana@example.com", Bedrooms: &two},
			wantErr: "renterName is required",
		},
		{
			name:    "nil pointer is missing",
			data:    viewingRequest{RenterName: "Dana", RenterEmail: "dana@example.com"},
			wantErr: "bedrooms is required",
		},
		{
			name:    "invalid email",
			data:    viewingRequest{RenterName: "Dana", RenterEmail: "dana", Bedrooms: &two},
			wantErr: "renterEmail must be a valid email address",
		},
		{
			name:    "out of range",
			data:    viewingRequest{RenterName: "Dana", RenterEmail: "dana@example.com", Bedrooms: &tooMany},
			wantErr: "bedrooms must be less than or equal to 20",
		},
		{
			name:    "too long",
			data:    viewingRequest{RenterName: "Dana Scully-Mulder", RenterEmail: "dana@example.com", Bedrooms: &two},
			wantErr: "renterName must be at most 10 characters",
		},
		{
			name:    "oneof",
			data:    viewingRequest{RenterName: "Dana", RenterEmail: "dana@example.com", Bedrooms: &two, Status: "lost"},
			wantErr: "status must be one of pending confirmed",
		},
		{
			name:    "unparsable date",
			data:    viewingRequest{RenterName: "Dana", RenterEmail: "dana@example.com", Bedrooms: &two, Date: "next tuesday"},
			wantErr: "date must be a valid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", wantErr: true},
		{name: "email", field: "test@example.com", tag: "email"},
		{name: "invalid email", field: "invalid-email", tag: "email", wantErr: true},
		{name: "number in range", field: 25, tag: "gte=0,lte=100"},
		{name: "number out of range", field: 150, tag: "gte=0,lte=100", wantErr: true},
		{name: "date only", field: "2024-06-01", tag: "date"},
		{name: "rfc3339", field: "2024-06-01T10:00:00Z", tag: "date"},
		{name: "not a date", field: "01/06/2024", tag: "date", wantErr: true},
		{name: "empty tag", field: "", tag: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid with unknown key",
			body: `{"renterName":"Dana","renterEmail":"dana@example.com","bedrooms":0,"extra":true}`,
		},
		{
			name:    "validation failure",
			body:    `{"renterName":"Dana","renterEmail":"nope","bedrooms":1}`,
			wantErr: "renterEmail must be a valid email address",
		},
		{
			name:    "fractional integer",
			body:    `{"renterName":"Dana","renterEmail":"dana@example.com","bedrooms":1.5}`,
			wantErr: "bedrooms must be of type int",
		},
		{
			name:    "string for integer",
			body:    `{"renterName":"Dana","renterEmail":"dana@example.com","bedrooms":"2"}`,
			wantErr: "bedrooms must be of type int",
		},
		{
			name:    "malformed",
			body:    `{"renterName":"Dana","renterEmail":}`,
			wantErr: "failed to decode request body",
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantErr: "is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data viewingRequest

			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Dana", data.RenterName)
				require.NotNil(t, data.Bedrooms)
				assert.Equal(t, 0, *data.Bedrooms)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
