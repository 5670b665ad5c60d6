package services

import (
	"context"
	"io"
	"time"

	"github.com/SAP-F-2025/form-builder-service/internal/models"
)

// FormService accepts form submissions and serves stored forms
type FormService interface {
	Create(ctx context.Context, req *CreateFormRequest, userID string) (*FormResponse, error)
	Get(ctx context.Context, id string) (*FormResponse, error)
	List(ctx context.Context, req *ListFormsRequest) (*FormListResponse, error)
	Delete(ctx context.Context, id string, userID string) error
	OpenBanner(ctx context.Context, id string) (*BannerFile, error)

	// Spreadsheet round trip of a form's question list
	ExportToExcel(ctx context.Context, id string, userID string) ([]byte, error)
	ImportQuestionsFromExcel(ctx context.Context, reader io.Reader) ([]models.Question, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type CreateFormRequest struct {
	FormName  string            `json:"formName" validate:"not_blank,max=200"`
	FormDes   string            `json:"formDes" validate:"max=5000"`
	Questions []models.Question `json:"questions" validate:"min=1,dive"`
	Banner    *BannerUpload     `json:"-"`
}

// BannerUpload is the raw banner part of a submission. Content type is
// sniffed from the data, the client supplied one is not trusted.
type BannerUpload struct {
	FileName string
	Reader   io.Reader
}

type ListFormsRequest struct {
	CreatedBy string `form:"created_by"`
	Search    string `form:"search"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset    int    `form:"offset" validate:"omitempty,min=0"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at name"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type FormResponse struct {
	ID             string            `json:"id"`
	FormName       string            `json:"formName"`
	FormDes        string            `json:"formDes"`
	Questions      []models.Question `json:"questions,omitempty"`
	QuestionsCount int               `json:"questionsCount"`
	HasBanner      bool              `json:"hasBanner"`
	BannerFileName string            `json:"bannerFileName,omitempty"`
	CreatedBy      string            `json:"createdBy,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type FormListResponse struct {
	Forms  []*FormResponse `json:"forms"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// BannerFile is an open stored banner; the caller closes Reader.
type BannerFile struct {
	Reader      io.ReadCloser
	FileName    string
	ContentType string
	Size        int64
}
