// Package editor implements the question list editor: an ordered sequence of
// questions and the operations that restructure it.
//
// Every operation is a pure transition (see Reduce). Editor is a small holder
// that keeps the latest snapshot and applies actions one at a time; it is not
// safe for concurrent use.
package editor

import (
	"github.com/SAP-F-2025/form-builder-service/internal/models"
)

type Editor struct {
	state State
	ids   IDGenerator
}

type Option func(*Editor)

func WithIDGenerator(ids IDGenerator) Option {
	return func(e *Editor) {
		e.ids = ids
	}
}

// WithQuestions seeds the editor with an existing question sequence.
func WithQuestions(questions []models.Question) Option {
	return func(e *Editor) {
		e.state = State{Questions: questions}.Clone()
	}
}

// New creates an editor with an empty question sequence.
func New(opts ...Option) *Editor {
	e := &Editor{ids: RandomIDs()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatch applies action and keeps the result. A rejected action leaves the
// current snapshot in place.
func (e *Editor) Dispatch(action Action) error {
	next, err := Reduce(e.state, action, e.ids)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// State returns a deep copy of the current snapshot.
func (e *Editor) State() State {
	return e.state.Clone()
}

func (e *Editor) Questions() []models.Question {
	return e.state.Clone().Questions
}

func (e *Editor) Len() int {
	return e.state.Len()
}

// AddQuestion appends a blank single-choice question and returns its id.
func (e *Editor) AddQuestion() (string, error) {
	if err := e.Dispatch(AddQuestion{}); err != nil {
		return "", err
	}
	return e.state.Questions[e.state.Len()-1].ID, nil
}

// DuplicateQuestion copies the question at index right after it and returns
// the id of the copy.
func (e *Editor) DuplicateQuestion(index int) (string, error) {
	if err := e.Dispatch(DuplicateQuestion{Index: index}); err != nil {
		return "", err
	}
	return e.state.Questions[index+1].ID, nil
}

func (e *Editor) DeleteQuestion(id string) error {
	return e.Dispatch(DeleteQuestion{ID: id})
}

func (e *Editor) SetQuestionField(index int, field Field, value any) error {
	return e.Dispatch(SetQuestionField{Index: index, Field: field, Value: value})
}

func (e *Editor) SetQuestionName(index int, name string) error {
	return e.SetQuestionField(index, FieldQuestionName, name)
}

func (e *Editor) SetQuestionType(index int, t models.QuestionType) error {
	return e.SetQuestionField(index, FieldQuestionType, t)
}

func (e *Editor) SetRequired(index int, required bool) error {
	return e.SetQuestionField(index, FieldRequired, required)
}

func (e *Editor) SetOption(questionIndex, optionIndex int, value string) error {
	return e.Dispatch(SetOption{QuestionIndex: questionIndex, OptionIndex: optionIndex, Value: value})
}

func (e *Editor) AddOption(questionIndex int) error {
	return e.Dispatch(AddOption{QuestionIndex: questionIndex})
}

func (e *Editor) DeleteOption(questionIndex, optionIndex int) error {
	return e.Dispatch(DeleteOption{QuestionIndex: questionIndex, OptionIndex: optionIndex})
}

func (e *Editor) MoveQuestion(from, to int) error {
	return e.Dispatch(MoveQuestion{From: from, To: to})
}
