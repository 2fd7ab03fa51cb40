package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
	MaxImageSize  = 5 * 1024 * 1024  // 5MB for forum/profile images
)

// ValidateAttachmentUpload checks an uploaded case attachment against the
// size limit and the allowed file types.
func ValidateAttachmentUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxUploadSize {
		return fmt.Errorf("file size exceeds maximum allowed size of 10MB")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowedExtensions := []string{".pdf", ".doc", ".docx", ".txt", ".jpg", ".jpeg", ".png"}

	isAllowed := false
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		return fmt.Errorf("file type not allowed. Accepted formats: PDF, DOC, DOCX, TXT, JPG, PNG")
	}

	return nil
}

// ValidateImageUpload checks an uploaded image (forum post, profile picture)
// by extension and by sniffing the magic bytes.
func ValidateImageUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxImageSize {
		return fmt.Errorf("image size exceeds maximum allowed size of 5MB")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return fmt.Errorf("image type not allowed. Accepted formats: JPG, PNG, GIF, WEBP")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	buffer = buffer[:n]

	if !isImageContent(buffer) {
		return fmt.Errorf("file is not a valid image")
	}
	return nil
}

// isImageContent checks the magic bytes for the accepted image formats.
func isImageContent(head []byte) bool {
	switch {
	case len(head) >= 3 && head[0] == 0xFF && head[1] == 0xD8 && head[2] == 0xFF: // JPEG
		return true
	case len(head) >= 8 && string(head[:8]) == "\x89PNG\r\n\x1a\n": // PNG
		return true
	case len(head) >= 6 && (string(head[:6]) == "GIF87a" || string(head[:6]) == "GIF89a"): // GIF
		return true
	case len(head) >= 12 && string(head[:4]) == "RIFF" && string(head[8:12]) == "WEBP": // WEBP
		return true
	}
	return false
}
