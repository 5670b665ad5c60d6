package editor

import (
	"fmt"

	apperrors "github.com/SAP-F-2025/form-builder-service/internal/errors"
	"github.com/SAP-F-2025/form-builder-service/internal/models"
)

// Validate checks a question sequence received from outside the editor
// against the invariants the editor operations maintain.
func Validate(questions []models.Question) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	seen := make(map[string]int, len(questions))

	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)

		if q.ID == "" {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(prefix+".id", "is required", "required", q.ID))
		} else if first, dup := seen[q.ID]; dup {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(prefix+".id",
				fmt.Sprintf("duplicates questions[%d].id", first), "unique", q.ID))
		} else {
			seen[q.ID] = i
		}

		if !q.QuestionType.IsValid() {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(prefix+".questionType",
				"must be a valid question type (single, multiple, text, document)", "question_type", q.QuestionType))
			continue
		}

		if q.QuestionType.HasOptions() && len(q.Options) == 0 {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(prefix+".options",
				"must contain at least one option", "min", len(q.Options)))
		}
	}

	return errs
}
