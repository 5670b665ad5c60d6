package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/SAP-F-2025/form-builder-service/internal/repositories"
	"gorm.io/gorm"
)

type FormPostgreSQL struct {
	db *gorm.DB
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{db: db}
}

// Create creates a new form with its questions
func (f *FormPostgreSQL) Create(ctx context.Context, form *models.Form) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := form.Questions
		form.Questions = nil

		if err := tx.Create(form).Error; err != nil {
			return fmt.Errorf("failed to create form: %w", err)
		}

		if len(questions) > 0 {
			for i := range questions {
				questions[i].FormID = form.ID
				questions[i].Position = i
			}
			if err := tx.CreateInBatches(questions, 100).Error; err != nil {
				return fmt.Errorf("failed to create form questions: %w", err)
			}
		}

		form.Questions = questions
		form.QuestionsCount = len(questions)
		return nil
	})
}

// GetByID retrieves a form with its questions in position order
func (f *FormPostgreSQL) GetByID(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	err := f.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&form).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}

	form.QuestionsCount = len(form.Questions)
	return &form, nil
}

// List retrieves forms with filters and pagination. Questions are not loaded;
// QuestionsCount is filled from a grouped count.
func (f *FormPostgreSQL) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	query := f.db.WithContext(ctx).Model(&models.Form{})
	query = f.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var forms []*models.Form
	if err := f.applyPaginationAndSort(query, filters).Find(&forms).Error; err != nil {
		return nil, 0, err
	}

	if err := f.fillQuestionCounts(ctx, forms); err != nil {
		return nil, 0, err
	}
	return forms, total, nil
}

func (f *FormPostgreSQL) Delete(ctx context.Context, id string) error {
	result := f.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Form{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete form: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrFormNotFound
	}
	return nil
}

// ===== HELPERS =====

func (f *FormPostgreSQL) applyFilters(query *gorm.DB, filters repositories.FormFilters) *gorm.DB {
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := fmt.Sprintf("%%%s%%", search)
		query = query.Where("name ILIKE ?", pattern)
	}
	return query
}

func (f *FormPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.FormFilters) *gorm.DB {
	sortBy := "created_at"
	if filters.SortBy == "name" {
		sortBy = "name"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = repositories.DefaultPageSize
	}
	if limit > repositories.MaxPageSize {
		limit = repositories.MaxPageSize
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	return query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Limit(limit).Offset(offset)
}

func (f *FormPostgreSQL) fillQuestionCounts(ctx context.Context, forms []*models.Form) error {
	if len(forms) == 0 {
		return nil
	}
	ids := make([]string, len(forms))
	for i, form := range forms {
		ids[i] = form.ID
	}

	var rows []struct {
		FormID string
		Count  int
	}
	err := f.db.WithContext(ctx).
		Model(&models.FormQuestion{}).
		Select("form_id, COUNT(*) AS count").
		Where("form_id IN ?", ids).
		Group("form_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to count form questions: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.FormID] = row.Count
	}
	for _, form := range forms {
		form.QuestionsCount = counts[form.ID]
	}
	return nil
}
