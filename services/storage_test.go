package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage := NewLocalStorage(tempDir)
	ctx := context.Background()
	content := "incident photo bytes"
	key := "complaints/12/evidence.jpg"
	contentType := "image/jpeg"
	size := int64(len(content))

	t.Run("UploadReader creates file", func(t *testing.T) {
		reader := strings.NewReader(content)
		result, err := storage.UploadReader(ctx, reader, key, contentType, size)
		assert.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, size, result.FileSize)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.NoError(t, err)
	})

	t.Run("Get retrieves file content", func(t *testing.T) {
		reader, retrievedType, err := storage.Get(ctx, key)
		assert.NoError(t, err)
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		assert.Equal(t, content, string(got))
		assert.Equal(t, "image/jpeg", retrievedType)
	})

	t.Run("Get detects MIME types correctly", func(t *testing.T) {
		pdfKey := "assistance/3/medical-certificate.pdf"
		storage.UploadReader(ctx, strings.NewReader("%PDF-1.4"), pdfKey, "application/pdf", 8)

		_, retrievedType, err := storage.Get(ctx, pdfKey)
		assert.NoError(t, err)
		assert.Equal(t, "application/pdf", retrievedType)

		txtKey := "assistance/3/notes.txt"
		storage.UploadReader(ctx, strings.NewReader("notes"), txtKey, "text/plain", 5)
		_, retrievedType, err = storage.Get(ctx, txtKey)
		assert.NoError(t, err)
		assert.Equal(t, "application/octet-stream", retrievedType) // LocalStorage defaults to octet-stream for .txt
	})

	t.Run("Delete removes file", func(t *testing.T) {
		err := storage.Delete(ctx, key)
		assert.NoError(t, err)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("URLs and paths", func(t *testing.T) {
		expected := "/" + filepath.Join(tempDir, "forum_images/banner.png")
		url := storage.GetPublicURL("forum_images/banner.png")
		assert.Equal(t, expected, url)

		signed, err := storage.GetSignedURL(ctx, "forum_images/banner.png", time.Hour)
		assert.NoError(t, err)
		assert.Equal(t, expected, signed)
	})
}

func TestKeyGeneration(t *testing.T) {
	filename := "incident-photo.jpg"

	t.Run("GenerateStorageKey", func(t *testing.T) {
		key := GenerateStorageKey("prefix", filename)
		assert.True(t, strings.HasPrefix(key, "prefix/"))
		assert.True(t, strings.HasSuffix(key, ".jpg"))
		// Check for UUID-like part
		parts := strings.Split(filepath.Base(key), "_")
		assert.Len(t, parts, 2)
	})

	t.Run("GenerateComplaintAttachmentKey", func(t *testing.T) {
		key := GenerateComplaintAttachmentKey(7, filename)
		assert.True(t, strings.HasPrefix(key, "complaints/7/"))
		assert.True(t, strings.HasSuffix(key, ".jpg"))
	})

	t.Run("GenerateAssistanceAttachmentKey", func(t *testing.T) {
		key := GenerateAssistanceAttachmentKey(3, "medical-certificate.pdf")
		assert.True(t, strings.HasPrefix(key, "assistance/3/"))
		assert.True(t, strings.HasSuffix(key, ".pdf"))
	})

	t.Run("GenerateForumImageKey", func(t *testing.T) {
		key := GenerateForumImageKey("fiesta-banner.png")
		assert.True(t, strings.HasPrefix(key, "forum_images/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
	})

	t.Run("GenerateProfilePictureKey", func(t *testing.T) {
		key := GenerateProfilePictureKey(5, filename)
		assert.Equal(t, "profiles/5.jpg", key)
	})
}

func TestIsConfigured(t *testing.T) {
	ls := NewLocalStorage("/tmp")
	assert.True(t, ls.IsConfigured())

	r2 := &R2Storage{bucket: "test-bucket", client: nil}
	assert.False(t, r2.IsConfigured())
}
