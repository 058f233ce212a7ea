// services/qrcode_service.go
package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can swap it out.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateQRCode renders content as a square PNG of size pixels.
func GenerateQRCode(content string, size int, encode QRCodeEncoder) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	if encode == nil {
		encode = qrcode.Encode
	}
	return encode(content, qrcode.Medium, size)
}

// EventShareURL is the registration page link for an event, pre-selecting
// it through the query string.
func EventShareURL(appURL, eventName string) string {
	return strings.TrimRight(appURL, "/") + "/?" + url.Values{"event": {eventName}}.Encode()
}
