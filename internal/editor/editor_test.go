package editor

import (
	"testing"

	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_StartEmptyAddQuestion(t *testing.T) {
	e := New()
	require.Equal(t, 0, e.Len())

	id, err := e.AddQuestion()
	require.NoError(t, err)

	questions := e.Questions()
	require.Len(t, questions, 1)
	assert.Equal(t, id, questions[0].ID)
	assert.Equal(t, models.QuestionSingle, questions[0].QuestionType)
	assert.Equal(t, []string{""}, questions[0].Options)
}

func TestEditor_DuplicateShiftsFollowingQuestions(t *testing.T) {
	e := New(WithIDGenerator(SequentialIDs("q")))
	idA, _ := e.AddQuestion()
	idB, _ := e.AddQuestion()
	require.NoError(t, e.SetQuestionName(0, "A"))
	require.NoError(t, e.SetQuestionName(1, "B"))

	dupID, err := e.DuplicateQuestion(0)
	require.NoError(t, err)

	questions := e.Questions()
	require.Len(t, questions, 3)
	assert.Equal(t, idA, questions[0].ID)
	assert.Equal(t, dupID, questions[1].ID)
	assert.NotEqual(t, idA, dupID)
	assert.Equal(t, "A", questions[1].QuestionName)
	assert.Equal(t, idB, questions[2].ID)
}

func TestEditor_DeleteLastOptionRejected(t *testing.T) {
	e := New()
	_, err := e.AddQuestion()
	require.NoError(t, err)
	require.NoError(t, e.SetOption(0, 0, "a"))
	require.NoError(t, e.AddOption(0))
	require.NoError(t, e.SetOption(0, 1, "b"))

	require.NoError(t, e.DeleteOption(0, 0))
	assert.Equal(t, []string{"b"}, e.Questions()[0].Options)

	err = e.DeleteOption(0, 0)
	require.ErrorIs(t, err, ErrLastOption)
	assert.True(t, IsPrecondition(err))
	assert.Equal(t, []string{"b"}, e.Questions()[0].Options)
}

func TestEditor_RejectedActionKeepsState(t *testing.T) {
	e := New(WithIDGenerator(SequentialIDs("q")))
	_, _ = e.AddQuestion()
	before := e.State()

	_, err := e.DuplicateQuestion(3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "duplicate question")

	assert.ErrorIs(t, e.SetQuestionType(0, "dropdown"), ErrInvalidValue)
	assert.ErrorIs(t, e.MoveQuestion(0, 2), ErrIndexOutOfRange)
	assert.Equal(t, before, e.State())
}

func TestEditor_SnapshotsAreCopies(t *testing.T) {
	e := New()
	_, _ = e.AddQuestion()

	questions := e.Questions()
	questions[0].Options[0] = "mutated"
	questions[0].QuestionName = "mutated"

	assert.Equal(t, []string{""}, e.Questions()[0].Options)
	assert.Equal(t, "", e.Questions()[0].QuestionName)
}

func TestEditor_WithQuestions(t *testing.T) {
	seed := []models.Question{
		{ID: "x", QuestionName: "Name?", QuestionType: models.QuestionText},
	}
	e := New(WithQuestions(seed), WithIDGenerator(IDGeneratorFunc(func() string { return "y" })))
	seed[0].QuestionName = "changed"

	require.NoError(t, e.SetRequired(0, true))
	id, err := e.AddQuestion()
	require.NoError(t, err)
	assert.Equal(t, "y", id)

	questions := e.Questions()
	assert.Equal(t, "Name?", questions[0].QuestionName)
	assert.True(t, questions[0].Required)

	require.NoError(t, e.DeleteQuestion("x"))
	require.NoError(t, e.DeleteQuestion("x"))
	assert.Equal(t, 1, e.Len())
}

func TestValidate(t *testing.T) {
	valid := []models.Question{
		{ID: "a", QuestionType: models.QuestionSingle, Options: []string{"yes", "no"}},
		{ID: "b", QuestionType: models.QuestionDocument},
	}
	assert.Empty(t, Validate(valid))

	invalid := []models.Question{
		{ID: "", QuestionType: models.QuestionText},
		{ID: "a", QuestionType: models.QuestionMultiple},
		{ID: "a", QuestionType: "dropdown"},
	}
	errs := Validate(invalid)
	assert.Equal(t, []string{
		"questions[0].id",
		"questions[1].options",
		"questions[2].id",
		"questions[2].questionType",
	}, errs.Fields())
}
