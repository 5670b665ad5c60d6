package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/SAP-F-2025/form-builder-service/internal/services"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	// SubmitSuccessMessage is the acknowledgement clients display after a submission.
	SubmitSuccessMessage = "Form Submitted Successfully"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// multipart text fields and part headers on top of the banner itself
	formFieldsAllowance = 1 << 20
)

type FormHandler struct {
	BaseHandler
	formService    services.FormService
	maxBannerBytes int64
}

func NewFormHandler(formService services.FormService, maxBannerBytes int64, logger utils.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler:    NewBaseHandler(logger),
		formService:    formService,
		maxBannerBytes: maxBannerBytes,
	}
}

// SubmitForm accepts a multipart form submission
// @Summary Submit form
// @Description Accepts formName, formDes, questions (JSON array) and an optional banner image
// @Tags forms
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} SuccessResponse{data=services.FormResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forms [post]
func (h *FormHandler) SubmitForm(c *gin.Context) {
	h.LogRequest(c, "Submitting form")

	if h.maxBannerBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBannerBytes+formFieldsAllowance)
	}
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RespondWithError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return
		}
		h.RespondWithError(c, http.StatusBadRequest, "Invalid multipart payload", err, err.Error())
		return
	}

	req := &services.CreateFormRequest{
		FormName: c.PostForm("formName"),
		FormDes:  c.PostForm("formDes"),
	}

	if raw := c.PostForm("questions"); raw != "" {
		var questions []models.Question
		if err := json.Unmarshal([]byte(raw), &questions); err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid questions payload", err, err.Error())
			return
		}
		req.Questions = questions
	}

	file, header, err := c.Request.FormFile("banner")
	switch {
	case err == nil:
		defer file.Close()
		req.Banner = &services.BannerUpload{FileName: header.Filename, Reader: file}
	case errors.Is(err, http.ErrMissingFile):
	default:
		h.RespondWithError(c, http.StatusBadRequest, "Invalid banner upload", err, err.Error())
		return
	}

	form, err := h.formService.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, SubmitSuccessMessage, form, "form_id", form.ID)
}

// ListForms lists submitted forms
// @Router /forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	var req services.ListFormsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", err, err.Error())
		return
	}

	resp, err := h.formService.List(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetForm returns a form with its questions
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	form, err := h.formService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// DeleteForm removes a form and its banner
// @Router /forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting form", "form_id", id)

	if err := h.formService.Delete(c.Request.Context(), id, GetUserID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Form deleted successfully", nil, "form_id", id)
}

// GetBanner streams the stored banner image
// @Router /forms/{id}/banner [get]
func (h *FormHandler) GetBanner(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	banner, err := h.formService.OpenBanner(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer banner.Reader.Close()

	headers := map[string]string{}
	if banner.FileName != "" {
		headers["Content-Disposition"] = fmt.Sprintf("inline; filename=%q", banner.FileName)
	}
	c.DataFromReader(http.StatusOK, banner.Size, banner.ContentType, banner.Reader, headers)
}

// ExportForm downloads the question list as an xlsx workbook
// @Router /forms/{id}/export [get]
func (h *FormHandler) ExportForm(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	data, err := h.formService.ExportToExcel(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "form-"+id+".xlsx"))
	c.Data(http.StatusOK, xlsxContentType, data)
	h.LogResponse(c, http.StatusOK, "Form exported", "form_id", id, "bytes", len(data))
}

// ImportQuestions parses an uploaded workbook into a question list. Nothing is
// stored; the result seeds an editor.
// @Router /forms/import [post]
func (h *FormHandler) ImportQuestions(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "File is required", err, err.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Cannot read upload", err)
		return
	}
	defer src.Close()

	questions, err := h.formService.ImportQuestionsFromExcel(c.Request.Context(), src)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Questions imported", gin.H{"questions": questions}, "count", len(questions))
}

func (h *FormHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, "Validation failed", nil, validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, "Validation failed", nil, services.ValidationErrors{*validationError})
		return
	}

	switch {
	case services.IsTooLarge(err):
		h.RespondWithError(c, http.StatusRequestEntityTooLarge, "Banner too large", nil, err.Error())
	case errors.Is(err, services.ErrInvalidBanner):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "Invalid banner", nil, err.Error())
	case errors.Is(err, services.ErrInvalidSpreadsheet):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid spreadsheet", nil, err.Error())
	case errors.Is(err, services.ErrFormNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Form not found", nil)
	case errors.Is(err, services.ErrBannerNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Banner not found", nil)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
