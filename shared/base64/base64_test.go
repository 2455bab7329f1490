package base64_test

import (
	"nest/shared/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixel = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: "data:image/png;base64," + pixel, expected: "image/png"},
		{name: "text", input: "data:text/plain;base64,SGVsbG8gV29ybGQ=", expected: "text/plain"},
		{name: "svg with charset", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", expected: "image/svg+xml;charset=utf-8"},
		{name: "empty string", input: "", expected: ""},
		{name: "no base64 marker", input: "data:image/png," + pixel, expected: ""},
		{name: "only prefix", input: "data:", expected: ""},
		{name: "empty media type", input: "data:;base64,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode("data:text/plain;base64,SGVsbG8gV29ybGQ=")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, "Hello World", string(data))

	_, _, err = base64.Decode("image/png;base64," + pixel)
	assert.ErrorIs(t, err, base64.ErrNotDataURI)

	_, _, err = base64.Decode("data:image/png;base64,!!!")
	assert.Error(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", base64.Extension("image/png"))
	assert.Equal(t, ".jpg", base64.Extension("image/jpeg"))
	assert.Empty(t, base64.Extension("application/pdf"))
}
