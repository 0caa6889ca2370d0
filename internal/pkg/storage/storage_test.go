package storage

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

func header(filename, mimeType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", mimeType)
	return &multipart.FileHeader{
		Filename: filename,
		Header:   h,
		Size:     size,
	}
}

func TestValidateAttachment(t *testing.T) {
	require.NoError(t, ValidateAttachment(header("photo.jpg", "image/jpeg", 1024)))
	require.NoError(t, ValidateAttachment(header("doc.pdf", "application/pdf", MaxFileSize)))

	err := ValidateAttachment(header("video.mp4", "video/mp4", 1024))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not allowed")

	err = ValidateAttachment(header("big.pdf", "application/pdf", MaxFileSize+1))
	require.Error(t, err)
	require.Contains(t, err.Error(), "maximum size")
}

func TestNewServiceRequiresCredentials(t *testing.T) {
	_, err := NewService("", "", "", "childguard")
	require.Error(t, err)
}
