package export

import (
	"encoding/base64"
	"net/url"
	"strings"
)

const (
	MIMECalendar = "text/calendar"
	MIMEPDF      = "application/pdf"
	MIMECSV      = "text/csv"
)

// TextDataURL encodes a textual payload as a percent-escaped data URL.
func TextDataURL(mime string, payload []byte) string {
	escaped := strings.ReplaceAll(url.QueryEscape(string(payload)), "+", "%20")
	return "data:" + mime + ";charset=utf8," + escaped
}

// Base64DataURL encodes a binary payload as a base64 data URL.
func Base64DataURL(mime string, payload []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

// DecodeDataURL reverses TextDataURL and Base64DataURL. ok is false for
// anything that is not a data URL produced by this package.
func DecodeDataURL(raw string) (mime string, payload []byte, ok bool) {
	if !strings.HasPrefix(raw, "data:") {
		return "", nil, false
	}
	header, body, found := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !found {
		return "", nil, false
	}
	switch {
	case strings.HasSuffix(header, ";base64"):
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return "", nil, false
		}
		return strings.TrimSuffix(header, ";base64"), decoded, true
	case strings.HasSuffix(header, ";charset=utf8"):
		decoded, err := url.QueryUnescape(body)
		if err != nil {
			return "", nil, false
		}
		return strings.TrimSuffix(header, ";charset=utf8"), []byte(decoded), true
	default:
		return "", nil, false
	}
}
