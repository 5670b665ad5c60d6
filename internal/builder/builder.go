// Package builder holds the form container: the form name and description,
// an optional banner image and the question list editor. It runs the
// submission gate and hands the assembled payload to a Submitter.
package builder

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SAP-F-2025/form-builder-service/internal/editor"
	apperrors "github.com/SAP-F-2025/form-builder-service/internal/errors"
	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
)

const DefaultMaxBannerBytes = 5 << 20

// Banner is a selected image, kept in memory until submission.
type Banner struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Submission is the payload handed to the transport.
type Submission struct {
	FormName  string
	FormDes   string
	Questions []models.Question
	Banner    *Banner
}

// QuestionsJSON encodes the questions as the JSON array sent in the
// "questions" field. A nil list encodes as [].
func (s Submission) QuestionsJSON() ([]byte, error) {
	questions := s.Questions
	if questions == nil {
		questions = []models.Question{}
	}
	return json.Marshal(questions)
}

// Acknowledgement is the JSON body a successful submission returns.
type Acknowledgement struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type Submitter interface {
	Submit(ctx context.Context, submission Submission) (*Acknowledgement, error)
}

// SubmitError reports a failed transport call. The builder state is left
// untouched, so the same form can be submitted again.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("form submission failed: %v", e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

func (e *SubmitError) Retryable() bool {
	return true
}

type Builder struct {
	formName       string
	formDes        string
	banner         *Banner
	editor         *editor.Editor
	submitter      Submitter
	logger         utils.Logger
	maxBannerBytes int64
}

type Option func(*Builder)

func WithEditor(e *editor.Editor) Option {
	return func(b *Builder) {
		b.editor = e
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

func WithMaxBannerBytes(n int64) Option {
	return func(b *Builder) {
		b.maxBannerBytes = n
	}
}

func New(submitter Submitter, opts ...Option) *Builder {
	b := &Builder{
		submitter:      submitter,
		maxBannerBytes: DefaultMaxBannerBytes,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.editor == nil {
		b.editor = editor.New()
	}
	if b.logger == nil {
		b.logger = utils.NewDiscardLogger()
	}
	return b
}

func (b *Builder) SetName(name string)       { b.formName = name }
func (b *Builder) SetDescription(des string) { b.formDes = des }
func (b *Builder) Name() string              { return b.formName }
func (b *Builder) Description() string       { return b.formDes }

// Editor exposes the question list editor for structural edits.
func (b *Builder) Editor() *editor.Editor {
	return b.editor
}

// SelectBanner reads an image and makes it the form banner, replacing any
// earlier selection. Non-image content is rejected and the previous banner kept.
func (b *Builder) SelectBanner(fileName string, r io.Reader) error {
	data, err := utils.ReadAllLimited(r, b.maxBannerBytes)
	if err != nil {
		return fmt.Errorf("failed to read banner: %w", err)
	}
	contentType, err := utils.DetectImageContentType(data)
	if err != nil {
		return err
	}
	b.banner = &Banner{FileName: fileName, ContentType: contentType, Data: data}
	return nil
}

func (b *Builder) ClearBanner() {
	b.banner = nil
}

func (b *Builder) Banner() *Banner {
	if b.banner == nil {
		return nil
	}
	cp := *b.banner
	cp.Data = append([]byte(nil), b.banner.Data...)
	return &cp
}

// BannerPreview returns the banner as a data URL for display.
func (b *Builder) BannerPreview() (string, bool) {
	if b.banner == nil {
		return "", false
	}
	return "data:" + b.banner.ContentType + ";base64," + base64.StdEncoding.EncodeToString(b.banner.Data), true
}

// Validate is the submission gate: a name and at least one question.
func (b *Builder) Validate() apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	if strings.TrimSpace(b.formName) == "" {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("formName", "Form Name is required", "required", b.formName))
	}
	if b.editor.Len() == 0 {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("questions", "Add at least one question", "min", 0))
	}
	return errs
}

// Submission assembles the current payload. Questions are a snapshot.
func (b *Builder) Submission() Submission {
	return Submission{
		FormName:  strings.TrimSpace(b.formName),
		FormDes:   b.formDes,
		Questions: b.editor.Questions(),
		Banner:    b.Banner(),
	}
}

// Submit runs the gate and, when it passes, sends the form. A gate failure
// returns ValidationErrors without calling the transport; a transport failure
// returns *SubmitError. The builder is never reset.
func (b *Builder) Submit(ctx context.Context) (*Acknowledgement, error) {
	if errs := b.Validate(); len(errs) > 0 {
		b.logger.WarnContext(ctx, "Form submission blocked", "errors", errs.UserMessages())
		return nil, errs
	}
	if b.submitter == nil {
		return nil, &SubmitError{Err: errors.New("no submitter configured")}
	}

	submission := b.Submission()
	ack, err := b.submitter.Submit(ctx, submission)
	if err != nil {
		b.logger.ErrorContext(ctx, "Form submission failed", "form_name", submission.FormName, "error", err)
		return nil, &SubmitError{Err: err}
	}

	b.logger.InfoContext(ctx, "Form submitted",
		"form_name", submission.FormName,
		"questions", len(submission.Questions),
		"has_banner", submission.Banner != nil)
	return ack, nil
}
