package validator

import (
	"testing"

	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionPayload struct {
	Name      string            `json:"formName" validate:"not_blank"`
	Questions []models.Question `json:"questions" validate:"required,min=1,dive"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	t.Run("valid payload", func(t *testing.T) {
		err := v.Validate(questionPayload{
			Name: "Survey",
			Questions: []models.Question{
				{ID: "q1", QuestionType: models.QuestionText},
			},
		})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := v.Validate(questionPayload{
			Name: "   ",
			Questions: []models.Question{
				{ID: "q1", QuestionType: "dropdown"},
			},
		})
		require.Error(t, err)

		errs, ok := err.(ValidationErrors)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"formName", "questionType"}, errs.Fields())
	})
}

func TestFormValidator_ValidateSubmission(t *testing.T) {
	fv := NewFormValidator()
	question := models.Question{ID: "q1", QuestionType: models.QuestionSingle, Options: []string{""}}

	t.Run("empty name", func(t *testing.T) {
		errs := fv.ValidateSubmission("", []models.Question{question})
		require.Len(t, errs, 1)
		assert.Equal(t, "formName", errs[0].Field)
	})

	t.Run("no questions", func(t *testing.T) {
		errs := fv.ValidateSubmission("Survey", nil)
		require.Len(t, errs, 1)
		assert.Equal(t, "questions", errs[0].Field)
	})

	t.Run("both missing", func(t *testing.T) {
		errs := fv.ValidateSubmission("", nil)
		assert.Equal(t, []string{"formName", "questions"}, errs.Fields())
	})

	t.Run("choice question without options", func(t *testing.T) {
		broken := question
		broken.Options = nil
		errs := fv.ValidateSubmission("Survey", []models.Question{broken})
		require.Len(t, errs, 1)
		assert.Equal(t, "questions[0].options", errs[0].Field)
	})

	t.Run("text question without options", func(t *testing.T) {
		text := models.Question{ID: "q2", QuestionType: models.QuestionText}
		assert.Empty(t, fv.ValidateSubmission("Survey", []models.Question{text}))
	})

	t.Run("duplicate ids", func(t *testing.T) {
		errs := fv.ValidateSubmission("Survey", []models.Question{question, question})
		require.Len(t, errs, 1)
		assert.Equal(t, "questions[1].id", errs[0].Field)
		assert.Equal(t, "unique", errs[0].Rule)
	})
}
