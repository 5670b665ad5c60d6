package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/form-builder-service/internal/models"
)

var ErrFormNotFound = errors.New("form not found")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ===== SHARED FILTER STRUCTS =====

type FormFilters struct {
	CreatedBy *string `json:"created_by"`
	Search    string  `json:"search"` // matches the form name
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "created_at", "name"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

// FormRepository persists submitted forms together with their ordered questions.
type FormRepository interface {
	// Create stores the form and its questions in one transaction. Question
	// positions follow slice order.
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id string) (*models.Form, error)
	List(ctx context.Context, filters FormFilters) ([]*models.Form, int64, error)
	Delete(ctx context.Context, id string) error // Soft delete
}
