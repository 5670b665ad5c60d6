package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/form-builder-service/internal/builder"
	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	got []builder.Submission
}

func (r *recordingSubmitter) Submit(_ context.Context, s builder.Submission) (*builder.Acknowledgement, error) {
	r.got = append(r.got, s)
	return &builder.Acknowledgement{Message: "Form Submitted Successfully"}, nil
}

const surveyYAML = `
name: Customer survey
description: Tell us about your visit
questions:
  - name: How did you hear about us?
    required: true
    options: [Friend, Advert, Other]
  - name: Pick all that apply
    type: Multiple Choice
    options: [Food, Service]
  - name: Anything else?
    type: text
`

func TestDefinition_Apply(t *testing.T) {
	def, err := LoadDefinition(strings.NewReader(surveyYAML))
	require.NoError(t, err)

	b := builder.New(&recordingSubmitter{})
	require.NoError(t, def.Apply(b, t.TempDir()))

	assert.Equal(t, "Customer survey", b.Name())
	questions := b.Editor().Questions()
	require.Len(t, questions, 3)

	assert.Equal(t, models.QuestionSingle, questions[0].QuestionType)
	assert.True(t, questions[0].Required)
	assert.Equal(t, []string{"Friend", "Advert", "Other"}, questions[0].Options)

	assert.Equal(t, models.QuestionMultiple, questions[1].QuestionType)
	assert.Equal(t, []string{"Food", "Service"}, questions[1].Options)

	assert.Equal(t, models.QuestionText, questions[2].QuestionType)
	assert.NotEqual(t, questions[0].ID, questions[1].ID)
}

func TestDefinition_ApplyErrors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		def := &Definition{Name: "x", Questions: []QuestionEntry{{Name: "q", Type: "dropdown"}}}
		err := def.Apply(builder.New(&recordingSubmitter{}), ".")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question 1")
	})

	t.Run("missing banner", func(t *testing.T) {
		def := &Definition{Name: "x", Banner: "nope.png"}
		err := def.Apply(builder.New(&recordingSubmitter{}), t.TempDir())
		assert.ErrorContains(t, err, "open banner")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadDefinition(strings.NewReader("name: x\ncolour: red\n"))
		assert.Error(t, err)
	})
}

func TestDefinition_BannerRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banner.png"), png, 0o600))

	def := &Definition{Name: "x", Banner: "banner.png"}
	b := builder.New(&recordingSubmitter{})
	require.NoError(t, def.Apply(b, dir))

	banner := b.Banner()
	require.NotNil(t, banner)
	assert.Equal(t, "banner.png", banner.FileName)
	assert.Equal(t, "image/png", banner.ContentType)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(surveyYAML), 0o600))

	t.Run("dry run prints payload", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		cfg := Config{File: path, DryRun: true, StateFile: filepath.Join(dir, "state.yaml")}

		code := run(context.Background(), cfg, nil, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		assert.Contains(t, stdout.String(), "avatar: "+"https://api.dicebear.com/6.x/bottts/svg?seed=")
		assert.Contains(t, stdout.String(), `"formName": "Customer survey"`)
	})

	t.Run("blocked form", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		cfg := Config{File: "-", DryRun: true}

		code := run(context.Background(), cfg, strings.NewReader("name: \"  \"\n"), &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Equal(t, "Form Name is required\nAdd at least one question\n", stderr.String())
	})

	t.Run("unreachable server is retryable", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		cfg := Config{File: path, Server: "http://127.0.0.1:1", Path: "/formController", Timeout: 2 * time.Second}

		code := run(context.Background(), cfg, nil, &stdout, &stderr)
		assert.Equal(t, 2, code)
		assert.Contains(t, stderr.String(), "please try again")
	})
}
