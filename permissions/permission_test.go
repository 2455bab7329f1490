package permissions_test

import (
	"nest/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		method   string
		wantSkip bool
		wantAny  bool
	}{
		{name: "portfolio page", path: "/", method: "GET", wantSkip: true, wantAny: true},
		{name: "sub-router index with trailing slash", path: "/v1/properties/", method: "GET", wantSkip: true, wantAny: true},
		{name: "property read", path: "/v1/properties/{id}", method: "GET", wantSkip: true, wantAny: true},
		{name: "property write", path: "/v1/properties/{id}", method: "PATCH", wantAny: true},
		{name: "public booking", path: "/v1/appointments/", method: "POST", wantSkip: true, wantAny: true},
		{name: "appointment listing", path: "/v1/appointments/", method: "GET", wantAny: true},
		{name: "unknown route", path: "/v1/unknown", method: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantAny, permission.Path != "")
		})
	}
}
