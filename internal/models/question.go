package models

import "strings"

type QuestionType string

const (
	QuestionSingle   QuestionType = "single"
	QuestionMultiple QuestionType = "multiple"
	QuestionText     QuestionType = "text"
	QuestionDocument QuestionType = "document"
)

// QuestionTypes lists every supported question type in display order.
var QuestionTypes = []QuestionType{
	QuestionSingle,
	QuestionMultiple,
	QuestionText,
	QuestionDocument,
}

func (t QuestionType) IsValid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether questions of this type render and edit an option list.
func (t QuestionType) HasOptions() bool {
	return t == QuestionSingle || t == QuestionMultiple
}

// Label returns the human readable name shown next to the type selector.
func (t QuestionType) Label() string {
	switch t {
	case QuestionSingle:
		return "Single Choice"
	case QuestionMultiple:
		return "Multiple Choice"
	case QuestionText:
		return "Text"
	case QuestionDocument:
		return "Document Upload"
	default:
		return string(t)
	}
}

// Question is one item of a form under construction. The JSON keys are the
// wire format of the "questions" field of a form submission.
type Question struct {
	ID           string       `json:"id" validate:"required"`
	QuestionName string       `json:"questionName"`
	QuestionType QuestionType `json:"questionType" validate:"required,question_type"`
	Options      []string     `json:"options"`
	Required     bool         `json:"required"`
}

// Clone returns a copy that owns its own options slice.
func (q Question) Clone() Question {
	dup := q
	if q.Options != nil {
		dup.Options = make([]string, len(q.Options))
		copy(dup.Options, q.Options)
	}
	return dup
}

// ParseQuestionType accepts a wire value or a label, ignoring case.
func ParseQuestionType(s string) (QuestionType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range QuestionTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, true
		}
	}
	return "", false
}
