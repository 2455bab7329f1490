package dto_test

import (
	"nest/infras/jwt"
	"nest/internal/domains/auth/model/dto"
	"nest/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var res dto.TokenResponse
	res.FromTokenPair(tokenPair)

	assert.Equal(t, dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, res)
}

func TestLoginRequest_Validate(t *testing.T) {
	var req dto.LoginRequest

	err := validator.Validate(strings.NewReader(`{"username": "alex"}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")

	req = dto.LoginRequest{}
	require.NoError(t, validator.Validate(strings.NewReader(`{"username": "alex", "password": "x"}`), &req))
}
