// Package client sends assembled forms to the backend as multipart POSTs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/SAP-F-2025/form-builder-service/internal/builder"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
)

const (
	DefaultPath    = "/formController"
	DefaultTimeout = 30 * time.Second

	// error bodies are truncated to this many bytes
	maxErrorBody = 4 << 10
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

type FormClient struct {
	BaseURL    string
	Path       string
	Timeout    time.Duration
	UserID     string
	HTTPClient *http.Client
	Logger     utils.Logger
}

var _ builder.Submitter = (*FormClient)(nil)

func New(baseURL string) *FormClient {
	return &FormClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Path:    DefaultPath,
		Timeout: DefaultTimeout,
	}
}

// Submit posts the submission as multipart/form-data with the fields formName,
// formDes and questions (a JSON array) plus an optional banner file part.
// There is no retry.
func (c *FormClient) Submit(ctx context.Context, submission builder.Submission) (*builder.Acknowledgement, error) {
	body, contentType, err := encodeSubmission(submission)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.UserID != "" {
		req.Header.Set("X-User-ID", c.UserID)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logger().Error("unexpected error in http call", "url", req.URL.String(), "error", err)
		return nil, fmt.Errorf("failed to submit form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	var ack builder.Acknowledgement
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		c.logger().Error("Error decoding response", "error", err)
		return nil, fmt.Errorf("failed to decode acknowledgement: %w", err)
	}
	return &ack, nil
}

func encodeSubmission(submission builder.Submission) (io.Reader, string, error) {
	questions, err := submission.QuestionsJSON()
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode questions: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"formName", submission.FormName},
		{"formDes", submission.FormDes},
		{"questions", string(questions)},
	}
	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field[0], err)
		}
	}

	if banner := submission.Banner; banner != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="banner"; filename=%q`, bannerFileName(banner)))
		header.Set("Content-Type", banner.ContentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create banner part: %w", err)
		}
		if _, err := part.Write(banner.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write banner: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func bannerFileName(banner *builder.Banner) string {
	if banner.FileName != "" {
		return banner.FileName
	}
	return "banner" + utils.GetFileExtensionFromContentType(banner.ContentType)
}

func (c *FormClient) url() string {
	path := c.Path
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(c.BaseURL, "/") + path
}

func (c *FormClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (c *FormClient) logger() utils.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return utils.NewDiscardLogger()
}
