package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Service handles attachment uploads for reports
type Service struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
}

// UploadResult describes one stored attachment
type UploadResult struct {
	FileName     string
	OriginalName string
	MimeType     string
	Size         int64
	URL          string
}

// Attachment limits. Evidence files are images and documents only.
var (
	AllowedMimeTypes = []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}

	MaxFileSize    = int64(15 * 1024 * 1024) // 15MB per file
	MaxAttachments = 5
)

// NewService creates a new storage service instance
func NewService(cloudName, apiKey, apiSecret, uploadFolder string) (*Service, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if uploadFolder == "" {
		uploadFolder = "childguard"
	}

	return &Service{cld: cld, uploadFolder: uploadFolder}, nil
}

// ValidateAttachment checks one uploaded file against the MIME allow-list
// and the size cap.
func ValidateAttachment(header *multipart.FileHeader) error {
	if header.Size > MaxFileSize {
		return fmt.Errorf("file %s exceeds the maximum size of %d MB", header.Filename, MaxFileSize/(1024*1024))
	}

	mimeType := header.Header.Get("Content-Type")
	if !isAllowedMime(mimeType) {
		return fmt.Errorf("file type %s is not allowed", mimeType)
	}
	return nil
}

// Upload stores one attachment and returns its descriptor. The stored name
// is generated so uploads can never collide or traverse paths.
func (s *Service) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	mimeType := header.Header.Get("Content-Type")

	resourceType := "raw"
	if strings.HasPrefix(mimeType, "image/") {
		resourceType = "image"
	}

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.uploadFolder + "/attachments",
		PublicID:     storedName,
		ResourceType: resourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	return &UploadResult{
		FileName:     storedName,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
		URL:          result.SecureURL,
	}, nil
}

func isAllowedMime(mimeType string) bool {
	for _, allowed := range AllowedMimeTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
