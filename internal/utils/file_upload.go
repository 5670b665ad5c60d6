package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrInvalidFileType = errors.New("invalid file type")
)

// AllowedImageTypes are the banner formats accepted by the builder and the API.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// DetectImageContentType sniffs the content type from the first 512 bytes and
// checks it against AllowedImageTypes.
func DetectImageContentType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType := http.DetectContentType(head)

	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return contentType, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidFileType, contentType)
}

// ReadAllLimited reads r fully, failing once more than limit bytes arrive.
// A limit <= 0 disables the check.
func ReadAllLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, limit)
	}
	return data, nil
}

// GetFileExtensionFromContentType returns the file extension (with leading dot)
// for a detected image content type, or "" when unknown.
func GetFileExtensionFromContentType(contentType string) string {
	extensionMap := map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}

	if ext, ok := extensionMap[contentType]; ok {
		return ext
	}
	return ""
}
