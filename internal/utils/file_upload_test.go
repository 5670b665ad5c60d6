package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDetectImageContentType(t *testing.T) {
	contentType, err := DetectImageContentType(pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, ".png", GetFileExtensionFromContentType(contentType))

	_, err = DetectImageContentType([]byte("just some text"))
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = DetectImageContentType(nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadAllLimited(t *testing.T) {
	data, err := ReadAllLimited(bytes.NewReader([]byte("12345")), 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(data))

	_, err = ReadAllLimited(bytes.NewReader([]byte("123456")), 5)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	data, err = ReadAllLimited(bytes.NewReader([]byte("123456")), 0)
	require.NoError(t, err)
	assert.Len(t, data, 6)
}
