package validator

import (
	"strings"

	"github.com/SAP-F-2025/form-builder-service/internal/editor"
	"github.com/SAP-F-2025/form-builder-service/internal/models"
)

// FormValidator holds the rules a complete form must satisfy before it is
// accepted for submission.
type FormValidator struct{}

func NewFormValidator() *FormValidator {
	return &FormValidator{}
}

// ValidateSubmission applies the submission gate: a form needs a name and at
// least one question. Structural question checks run only when both hold.
func (v *FormValidator) ValidateSubmission(formName string, questions []models.Question) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(formName) == "" {
		errs = append(errs, ValidationError{
			Field:   "formName",
			Message: "is required",
			Rule:    "required",
		})
	}
	if len(questions) == 0 {
		errs = append(errs, ValidationError{
			Field:   "questions",
			Message: "must contain at least one question",
			Rule:    "min",
			Value:   0,
		})
	}
	if len(errs) > 0 {
		return errs
	}

	return v.ValidateQuestions(questions)
}

// ValidateQuestions checks ids, types and option lists.
func (v *FormValidator) ValidateQuestions(questions []models.Question) ValidationErrors {
	return editor.Validate(questions)
}
