package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/form-builder-service/internal/cache"
	"github.com/SAP-F-2025/form-builder-service/internal/events"
	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/SAP-F-2025/form-builder-service/internal/repositories"
	"github.com/SAP-F-2025/form-builder-service/internal/storage"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
	"github.com/SAP-F-2025/form-builder-service/internal/validator"
	"github.com/google/uuid"
)

const formCacheKeyPrefix = "form:"

type FormServiceConfig struct {
	MaxBannerBytes int64
	CacheTTL       time.Duration
}

type formService struct {
	repo      repositories.FormRepository
	banners   storage.BannerStore
	publisher events.EventPublisher
	cache     cache.CacheService // optional
	logger    *slog.Logger
	svcLogger *ServiceLogger
	validator *validator.Validator
	config    FormServiceConfig
}

func NewFormService(
	repo repositories.FormRepository,
	banners storage.BannerStore,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *validator.Validator,
	config FormServiceConfig,
) FormService {
	return &formService{
		repo:      repo,
		banners:   banners,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		svcLogger: NewServiceLogger(logger, LogConfig{Service: "form-builder", Component: "form_service"}),
		validator: validator,
		config:    config,
	}
}

// ===== CORE OPERATIONS =====

func (s *formService) Create(ctx context.Context, req *CreateFormRequest, userID string) (resp *FormResponse, err error) {
	op := s.svcLogger.WithOperation(ctx, "create_form", userID)
	defer func() {
		id := ""
		if resp != nil {
			id = resp.ID
		}
		op.LogResult(id, "form", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if errs := s.validator.Form().ValidateSubmission(req.FormName, req.Questions); len(errs) > 0 {
		return nil, errs
	}

	form := &models.Form{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.FormName),
		CreatedBy: userID,
	}
	if req.FormDes != "" {
		des := req.FormDes
		form.Description = &des
	}

	for i, q := range req.Questions {
		row, err := models.NewFormQuestion(i, q)
		if err != nil {
			return nil, fmt.Errorf("failed to encode question %d: %w", i, err)
		}
		form.Questions = append(form.Questions, row)
	}

	if req.Banner != nil {
		if err := s.saveBanner(ctx, form, req.Banner); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, form); err != nil {
		if form.HasBanner() {
			if delErr := s.banners.Delete(ctx, *form.BannerPath); delErr != nil {
				s.logger.Warn("Failed to remove banner of unsaved form", "form_id", form.ID, "error", delErr)
			}
		}
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.publish(ctx, events.NewFormEvent(events.EventFormSubmitted, events.FormSubmittedEvent{
		FormID:        form.ID,
		FormName:      form.Name,
		QuestionCount: len(form.Questions),
		HasBanner:     form.HasBanner(),
		SubmittedBy:   userID,
		SubmittedAt:   form.CreatedAt,
	}))

	op.LogAudit(AuditEventCreate, form.ID, "form", map[string]interface{}{
		"question_count": len(form.Questions),
		"has_banner":     form.HasBanner(),
	})

	return s.buildFormResponse(form, req.Questions), nil
}

func (s *formService) Get(ctx context.Context, id string) (*FormResponse, error) {
	key := formCacheKeyPrefix + id

	if s.cache != nil {
		var cached FormResponse
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Form cache unavailable", "form_id", id, "error", err)
		}
	}

	form, err := s.getForm(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := toQuestions(form.Questions)
	if err != nil {
		return nil, err
	}
	resp := s.buildFormResponse(form, questions)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.config.CacheTTL); err != nil {
			s.logger.Warn("Failed to cache form", "form_id", id, "error", err)
		}
	}

	return resp, nil
}

func (s *formService) List(ctx context.Context, req *ListFormsRequest) (*FormListResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	filters := repositories.FormFilters{
		Search:    strings.TrimSpace(req.Search),
		Limit:     req.Limit,
		Offset:    req.Offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if filters.Limit <= 0 {
		filters.Limit = repositories.DefaultPageSize
	}
	if req.CreatedBy != "" {
		createdBy := req.CreatedBy
		filters.CreatedBy = &createdBy
	}

	forms, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	resp := &FormListResponse{
		Forms:  make([]*FormResponse, 0, len(forms)),
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}
	for _, form := range forms {
		resp.Forms = append(resp.Forms, s.buildFormResponse(form, nil))
	}
	return resp, nil
}

func (s *formService) Delete(ctx context.Context, id string, userID string) (err error) {
	op := s.svcLogger.WithOperation(ctx, "delete_form", userID)
	defer func() { op.LogResult(id, "form", err) }()

	form, err := s.getForm(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrFormNotFound) {
			return ErrFormNotFound
		}
		return fmt.Errorf("failed to delete form: %w", err)
	}

	if form.HasBanner() {
		if err := s.banners.Delete(ctx, *form.BannerPath); err != nil {
			s.logger.Warn("Failed to delete banner", "form_id", id, "error", err)
		}
	}
	s.invalidate(ctx, id)

	s.publish(ctx, events.NewFormEvent(events.EventFormDeleted, events.FormDeletedEvent{
		FormID:    id,
		DeletedAt: time.Now().UTC(),
	}))
	op.LogAudit(AuditEventDelete, id, "form", nil)
	return nil
}

func (s *formService) OpenBanner(ctx context.Context, id string) (*BannerFile, error) {
	form, err := s.getForm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !form.HasBanner() {
		return nil, ErrBannerNotFound
	}

	rc, err := s.banners.Open(ctx, *form.BannerPath)
	if errors.Is(err, storage.ErrBannerNotFound) {
		return nil, ErrBannerNotFound
	}
	if err != nil {
		return nil, err
	}

	file := &BannerFile{
		Reader: rc,
		Size:   form.BannerSize,
	}
	if form.BannerFileName != nil {
		file.FileName = *form.BannerFileName
	}
	if form.BannerContentType != nil {
		file.ContentType = *form.BannerContentType
	}
	return file, nil
}

// ===== HELPERS =====

func (s *formService) saveBanner(ctx context.Context, form *models.Form, banner *BannerUpload) error {
	data, err := utils.ReadAllLimited(banner.Reader, s.config.MaxBannerBytes)
	if err != nil {
		return wrapBannerError(err)
	}
	contentType, err := utils.DetectImageContentType(data)
	if err != nil {
		return wrapBannerError(err)
	}

	path, err := s.banners.Save(ctx, form.ID, contentType, data)
	if err != nil {
		return fmt.Errorf("failed to store banner: %w", err)
	}

	fileName := banner.FileName
	form.BannerPath = &path
	form.BannerFileName = &fileName
	form.BannerContentType = &contentType
	form.BannerSize = int64(len(data))
	return nil
}

func (s *formService) getForm(ctx context.Context, id string) (*models.Form, error) {
	form, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrFormNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return form, nil
}

func (s *formService) publish(ctx context.Context, event *events.FormEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishFormEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish form event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err)
	}
}

func (s *formService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, formCacheKeyPrefix+id); err != nil {
		s.logger.Warn("Failed to invalidate form cache", "form_id", id, "error", err)
	}
}

func (s *formService) buildFormResponse(form *models.Form, questions []models.Question) *FormResponse {
	resp := &FormResponse{
		ID:             form.ID,
		FormName:       form.Name,
		Questions:      questions,
		QuestionsCount: form.QuestionsCount,
		HasBanner:      form.HasBanner(),
		CreatedBy:      form.CreatedBy,
		CreatedAt:      form.CreatedAt,
	}
	if questions != nil {
		resp.QuestionsCount = len(questions)
	}
	if form.Description != nil {
		resp.FormDes = *form.Description
	}
	if form.BannerFileName != nil {
		resp.BannerFileName = *form.BannerFileName
	}
	return resp
}

func toQuestions(rows []models.FormQuestion) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.ToQuestion()
		if err != nil {
			return nil, fmt.Errorf("failed to decode question %s: %w", row.QuestionKey, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
