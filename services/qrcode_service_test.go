// file: services/qrcode_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
)

// Mock encoder function (successful)
func mockQRCodeEncoderSuccess(content string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
	return []byte("qr:" + content), nil
}

// Mock encoder function (failure)
func mockQRCodeEncoderFailure(content string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
	return nil, errors.New("QR code generation failed")
}

func TestGenerateQRCode_Success(t *testing.T) {
	data, err := GenerateQRCode("http://localhost:3000/", 200, mockQRCodeEncoderSuccess)

	assert.NoError(t, err)
	assert.Equal(t, "qr:http://localhost:3000/", string(data))
}

func TestGenerateQRCode_RealEncoderProducesPNG(t *testing.T) {
	data, err := GenerateQRCode("http://localhost:3000/", 128, nil)

	assert.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestGenerateQRCode_InvalidSize(t *testing.T) {
	data, err := GenerateQRCode("x", -100, mockQRCodeEncoderSuccess)

	assert.Error(t, err)
	assert.Nil(t, data)
	assert.Equal(t, "invalid size: must be positive", err.Error())
}

func TestGenerateQRCode_EncoderFails(t *testing.T) {
	data, err := GenerateQRCode("x", 200, mockQRCodeEncoderFailure)

	assert.Error(t, err)
	assert.Nil(t, data)
	assert.Equal(t, "QR code generation failed", err.Error())
}

func TestEventShareURL(t *testing.T) {
	assert.Equal(t, "https://fest.example/?event=Battle+of+Bands",
		EventShareURL("https://fest.example/", "Battle of Bands"))
}
