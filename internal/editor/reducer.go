package editor

import (
	"fmt"

	"github.com/SAP-F-2025/form-builder-service/internal/models"
)

// State is an immutable snapshot of the question sequence. Reduce never
// modifies the State it is given.
type State struct {
	Questions []models.Question `json:"questions"`
}

func (s State) Len() int {
	return len(s.Questions)
}

// Clone returns a deep copy; options slices are not shared.
func (s State) Clone() State {
	if s.Questions == nil {
		return State{}
	}
	questions := make([]models.Question, len(s.Questions))
	for i, q := range s.Questions {
		questions[i] = q.Clone()
	}
	return State{Questions: questions}
}

// IndexOf returns the position of the question with the given id or -1.
func (s State) IndexOf(id string) int {
	for i, q := range s.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// Field names a question attribute that SetQuestionField may change.
type Field string

const (
	FieldQuestionName Field = "questionName"
	FieldQuestionType Field = "questionType"
	FieldRequired     Field = "required"
)

// Action is a single transition of the question sequence.
type Action interface {
	Name() string
	apply(s State, ids IDGenerator) (State, error)
}

// Reduce applies action to state. On success it returns the next snapshot;
// on failure it returns state unchanged and an *OperationError.
func Reduce(state State, action Action, ids IDGenerator) (State, error) {
	if ids == nil {
		ids = RandomIDs()
	}
	next, err := action.apply(state.Clone(), ids)
	if err != nil {
		return state, opError(action.Name(), err)
	}
	return next, nil
}

type AddQuestion struct{}

func (AddQuestion) Name() string { return "add question" }

func (AddQuestion) apply(s State, ids IDGenerator) (State, error) {
	id, err := uniqueID(s, ids)
	if err != nil {
		return s, err
	}
	s.Questions = append(s.Questions, models.Question{
		ID:           id,
		QuestionName: "",
		QuestionType: models.QuestionSingle,
		Options:      []string{""},
		Required:     false,
	})
	return s, nil
}

type DuplicateQuestion struct {
	Index int
}

func (DuplicateQuestion) Name() string { return "duplicate question" }

func (a DuplicateQuestion) apply(s State, ids IDGenerator) (State, error) {
	if a.Index < 0 || a.Index >= len(s.Questions) {
		return s, questionIndexError(a.Index, len(s.Questions))
	}
	id, err := uniqueID(s, ids)
	if err != nil {
		return s, err
	}
	dup := s.Questions[a.Index].Clone()
	dup.ID = id

	questions := make([]models.Question, 0, len(s.Questions)+1)
	questions = append(questions, s.Questions[:a.Index+1]...)
	questions = append(questions, dup)
	questions = append(questions, s.Questions[a.Index+1:]...)
	s.Questions = questions
	return s, nil
}

// DeleteQuestion removes the question with ID. An unknown ID is a no-op.
type DeleteQuestion struct {
	ID string
}

func (DeleteQuestion) Name() string { return "delete question" }

func (a DeleteQuestion) apply(s State, _ IDGenerator) (State, error) {
	i := s.IndexOf(a.ID)
	if i < 0 {
		return s, nil
	}
	s.Questions = append(s.Questions[:i], s.Questions[i+1:]...)
	return s, nil
}

// SetQuestionField changes one scalar field. Options are never touched, even
// when the question type changes.
type SetQuestionField struct {
	Index int
	Field Field
	Value any
}

func (SetQuestionField) Name() string { return "set question field" }

func (a SetQuestionField) apply(s State, _ IDGenerator) (State, error) {
	if a.Index < 0 || a.Index >= len(s.Questions) {
		return s, questionIndexError(a.Index, len(s.Questions))
	}
	q := &s.Questions[a.Index]

	switch a.Field {
	case FieldQuestionName:
		v, ok := a.Value.(string)
		if !ok {
			return s, fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, a.Field, a.Value)
		}
		q.QuestionName = v
	case FieldQuestionType:
		var t models.QuestionType
		switch v := a.Value.(type) {
		case models.QuestionType:
			t = v
		case string:
			t = models.QuestionType(v)
		default:
			return s, fmt.Errorf("%w: %s expects a question type, got %T", ErrInvalidValue, a.Field, a.Value)
		}
		if !t.IsValid() {
			return s, fmt.Errorf("%w: unknown question type %q", ErrInvalidValue, t)
		}
		q.QuestionType = t
	case FieldRequired:
		v, ok := a.Value.(bool)
		if !ok {
			return s, fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidValue, a.Field, a.Value)
		}
		q.Required = v
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, a.Field)
	}
	return s, nil
}

type SetOption struct {
	QuestionIndex int
	OptionIndex   int
	Value         string
}

func (SetOption) Name() string { return "set option" }

func (a SetOption) apply(s State, _ IDGenerator) (State, error) {
	q, err := questionAt(s, a.QuestionIndex)
	if err != nil {
		return s, err
	}
	if a.OptionIndex < 0 || a.OptionIndex >= len(q.Options) {
		return s, optionIndexError(a.OptionIndex, len(q.Options))
	}
	q.Options[a.OptionIndex] = a.Value
	return s, nil
}

type AddOption struct {
	QuestionIndex int
}

func (AddOption) Name() string { return "add option" }

func (a AddOption) apply(s State, _ IDGenerator) (State, error) {
	q, err := questionAt(s, a.QuestionIndex)
	if err != nil {
		return s, err
	}
	q.Options = append(q.Options, "")
	return s, nil
}

// DeleteOption removes one option. A question never loses its last option.
type DeleteOption struct {
	QuestionIndex int
	OptionIndex   int
}

func (DeleteOption) Name() string { return "delete option" }

func (a DeleteOption) apply(s State, _ IDGenerator) (State, error) {
	q, err := questionAt(s, a.QuestionIndex)
	if err != nil {
		return s, err
	}
	if a.OptionIndex < 0 || a.OptionIndex >= len(q.Options) {
		return s, optionIndexError(a.OptionIndex, len(q.Options))
	}
	if len(q.Options) <= 1 {
		return s, ErrLastOption
	}
	q.Options = append(q.Options[:a.OptionIndex], q.Options[a.OptionIndex+1:]...)
	return s, nil
}

// MoveQuestion relocates the question at From so that it ends up at To.
type MoveQuestion struct {
	From int
	To   int
}

func (MoveQuestion) Name() string { return "move question" }

func (a MoveQuestion) apply(s State, _ IDGenerator) (State, error) {
	n := len(s.Questions)
	if a.From < 0 || a.From >= n {
		return s, questionIndexError(a.From, n)
	}
	if a.To < 0 || a.To >= n {
		return s, questionIndexError(a.To, n)
	}
	if a.From == a.To {
		return s, nil
	}
	moved := s.Questions[a.From]
	rest := append(s.Questions[:a.From:a.From], s.Questions[a.From+1:]...)

	questions := make([]models.Question, 0, n)
	questions = append(questions, rest[:a.To]...)
	questions = append(questions, moved)
	questions = append(questions, rest[a.To:]...)
	s.Questions = questions
	return s, nil
}

func questionAt(s State, index int) (*models.Question, error) {
	if index < 0 || index >= len(s.Questions) {
		return nil, questionIndexError(index, len(s.Questions))
	}
	return &s.Questions[index], nil
}

const maxIDAttempts = 8

func uniqueID(s State, ids IDGenerator) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := ids.NewID()
		if id != "" && s.IndexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
