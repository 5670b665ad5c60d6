package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/form-builder-service/internal/errors"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Form specific errors
	ErrFormNotFound   = errors.New("form not found")
	ErrBannerNotFound = errors.New("form has no banner")
	ErrInvalidBanner  = errors.New("banner must be a jpeg, png, gif or webp image")
	ErrBannerTooLarge = errors.New("banner exceeds the size limit")

	// Import errors
	ErrInvalidSpreadsheet = errors.New("invalid spreadsheet")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFormNotFound) || errors.Is(err, ErrBannerNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrInvalidBanner) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsTooLarge checks if error represents an oversized upload
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrBannerTooLarge) || errors.Is(err, utils.ErrFileTooLarge)
}

func wrapBannerError(err error) error {
	switch {
	case errors.Is(err, utils.ErrFileTooLarge):
		return fmt.Errorf("%w: %v", ErrBannerTooLarge, err)
	case errors.Is(err, utils.ErrInvalidFileType), errors.Is(err, utils.ErrEmptyFile):
		return fmt.Errorf("%w: %v", ErrInvalidBanner, err)
	default:
		return fmt.Errorf("failed to read banner: %w", err)
	}
}
