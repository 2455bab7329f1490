package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURI = errors.New("value is not a base64 data URI")

// GetContentType returns the media type of a data URI such as
// "data:image/png;base64,....", or an empty string.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode splits a data URI into its media type and decoded payload.
func Decode(file string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(file, dataPrefix) {
		return "", nil, ErrNotDataURI
	}

	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrNotDataURI
	}

	_, payload, _ := strings.Cut(file, base64Marker)

	data, err = stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URI payload: %w", err)
	}

	return contentType, data, nil
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Extension returns the file extension for a media type, or "" if unknown.
func Extension(contentType string) string {
	return extensions[contentType]
}
