package editor

import (
	"math/rand"
	"testing"

	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reduceAll(t *testing.T, ids IDGenerator, actions ...Action) State {
	t.Helper()
	var s State
	for _, a := range actions {
		next, err := Reduce(s, a, ids)
		require.NoError(t, err, a.Name())
		s = next
	}
	return s
}

func TestReduce_AddQuestion(t *testing.T) {
	ids := SequentialIDs("q")

	s := reduceAll(t, ids, AddQuestion{})

	require.Equal(t, 1, s.Len())
	q := s.Questions[0]
	assert.Equal(t, "q-1", q.ID)
	assert.Equal(t, "", q.QuestionName)
	assert.Equal(t, models.QuestionSingle, q.QuestionType)
	assert.Equal(t, []string{""}, q.Options)
	assert.False(t, q.Required)
}

func TestReduce_AddQuestionAlwaysUsesFreshID(t *testing.T) {
	ids := SequentialIDs("q")
	s := reduceAll(t, ids, AddQuestion{}, AddQuestion{}, AddQuestion{})

	for i := 0; i < 20; i++ {
		before := s.Len()
		next, err := Reduce(s, AddQuestion{}, nil)
		require.NoError(t, err)
		require.Equal(t, before+1, next.Len())

		added := next.Questions[next.Len()-1]
		assert.Equal(t, next.Len()-1, next.IndexOf(added.ID), "new id must not collide")
		s = next
	}
}

func TestReduce_AddQuestionRetriesOnCollision(t *testing.T) {
	calls := 0
	ids := IDGeneratorFunc(func() string {
		calls++
		if calls <= 2 {
			return "same"
		}
		return "other"
	})

	s := reduceAll(t, ids, AddQuestion{}, AddQuestion{})
	assert.Equal(t, "same", s.Questions[0].ID)
	assert.Equal(t, "other", s.Questions[1].ID)
}

func TestReduce_AddQuestionFailsWhenIDsRunOut(t *testing.T) {
	ids := IDGeneratorFunc(func() string { return "same" })
	s := reduceAll(t, ids, AddQuestion{})

	next, err := Reduce(s, AddQuestion{}, ids)
	require.ErrorIs(t, err, ErrIDExhausted)
	assert.Equal(t, s, next)
}

func TestReduce_DuplicateQuestion(t *testing.T) {
	ids := SequentialIDs("q")
	s := reduceAll(t, ids,
		AddQuestion{},
		AddQuestion{},
		SetQuestionField{Index: 0, Field: FieldQuestionName, Value: "A"},
		SetQuestionField{Index: 0, Field: FieldQuestionType, Value: models.QuestionMultiple},
		SetOption{QuestionIndex: 0, OptionIndex: 0, Value: "red"},
		AddOption{QuestionIndex: 0},
		SetOption{QuestionIndex: 0, OptionIndex: 1, Value: "blue"},
		SetQuestionField{Index: 1, Field: FieldQuestionName, Value: "B"},
	)
	a, b := s.Questions[0], s.Questions[1]

	next, err := Reduce(s, DuplicateQuestion{Index: 0}, ids)
	require.NoError(t, err)

	require.Equal(t, 3, next.Len())
	assert.Equal(t, a, next.Questions[0])
	assert.Equal(t, b, next.Questions[2])

	dup := next.Questions[1]
	assert.NotEqual(t, a.ID, dup.ID)
	assert.Equal(t, a.QuestionName, dup.QuestionName)
	assert.Equal(t, a.QuestionType, dup.QuestionType)
	assert.Equal(t, a.Options, dup.Options)
	assert.Equal(t, a.Required, dup.Required)

	t.Run("options are independent", func(t *testing.T) {
		edited, err := Reduce(next, SetOption{QuestionIndex: 1, OptionIndex: 0, Value: "green"}, ids)
		require.NoError(t, err)
		assert.Equal(t, []string{"red", "blue"}, edited.Questions[0].Options)
		assert.Equal(t, []string{"green", "blue"}, edited.Questions[1].Options)
	})

	t.Run("last position", func(t *testing.T) {
		edited, err := Reduce(next, DuplicateQuestion{Index: 2}, ids)
		require.NoError(t, err)
		require.Equal(t, 4, edited.Len())
		assert.Equal(t, "B", edited.Questions[3].QuestionName)
	})
}

func TestReduce_DuplicateQuestionOutOfRange(t *testing.T) {
	s := reduceAll(t, SequentialIDs("q"), AddQuestion{})

	for _, index := range []int{-1, 1, 5} {
		next, err := Reduce(s, DuplicateQuestion{Index: index}, nil)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.True(t, IsPrecondition(err))
		assert.Equal(t, s, next)
	}
}

func TestReduce_DeleteQuestion(t *testing.T) {
	s := reduceAll(t, SequentialIDs("q"), AddQuestion{}, AddQuestion{}, AddQuestion{})

	next, err := Reduce(s, DeleteQuestion{ID: "q-2"}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, next.Len())
	assert.Equal(t, "q-1", next.Questions[0].ID)
	assert.Equal(t, "q-3", next.Questions[1].ID)
	assert.Equal(t, -1, next.IndexOf("q-2"))

	// The input snapshot is untouched.
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "q-2", s.Questions[1].ID)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		same, err := Reduce(next, DeleteQuestion{ID: "missing"}, nil)
		require.NoError(t, err)
		assert.Equal(t, next, same)
	})
}

func TestReduce_SetQuestionField(t *testing.T) {
	s := reduceAll(t, SequentialIDs("q"), AddQuestion{}, SetOption{QuestionIndex: 0, OptionIndex: 0, Value: "yes"})

	t.Run("type change keeps options", func(t *testing.T) {
		next, err := Reduce(s, SetQuestionField{Index: 0, Field: FieldQuestionType, Value: "text"}, nil)
		require.NoError(t, err)
		assert.Equal(t, models.QuestionText, next.Questions[0].QuestionType)
		assert.Equal(t, []string{"yes"}, next.Questions[0].Options)
	})

	t.Run("required", func(t *testing.T) {
		next, err := Reduce(s, SetQuestionField{Index: 0, Field: FieldRequired, Value: true}, nil)
		require.NoError(t, err)
		assert.True(t, next.Questions[0].Required)
	})

	tests := []struct {
		name   string
		action SetQuestionField
		target error
	}{
		{"index out of range", SetQuestionField{Index: 1, Field: FieldQuestionName, Value: "x"}, ErrIndexOutOfRange},
		{"unknown field", SetQuestionField{Index: 0, Field: "options", Value: []string{}}, ErrUnknownField},
		{"wrong name type", SetQuestionField{Index: 0, Field: FieldQuestionName, Value: 3}, ErrInvalidValue},
		{"unknown question type", SetQuestionField{Index: 0, Field: FieldQuestionType, Value: "dropdown"}, ErrInvalidValue},
		{"wrong required type", SetQuestionField{Index: 0, Field: FieldRequired, Value: "yes"}, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Reduce(s, tt.action, nil)
			require.ErrorIs(t, err, tt.target)
			assert.Equal(t, s, next)
		})
	}
}

func TestReduce_Options(t *testing.T) {
	s := reduceAll(t, SequentialIDs("q"),
		AddQuestion{},
		SetOption{QuestionIndex: 0, OptionIndex: 0, Value: "a"},
		AddOption{QuestionIndex: 0},
		SetOption{QuestionIndex: 0, OptionIndex: 1, Value: "b"},
	)
	require.Equal(t, []string{"a", "b"}, s.Questions[0].Options)

	next, err := Reduce(s, DeleteOption{QuestionIndex: 0, OptionIndex: 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, next.Questions[0].Options)
	assert.Equal(t, []string{"a", "b"}, s.Questions[0].Options)

	again, err := Reduce(next, DeleteOption{QuestionIndex: 0, OptionIndex: 0}, nil)
	require.ErrorIs(t, err, ErrLastOption)
	assert.Equal(t, []string{"b"}, again.Questions[0].Options)

	t.Run("option index out of range", func(t *testing.T) {
		_, err := Reduce(s, SetOption{QuestionIndex: 0, OptionIndex: 2, Value: "c"}, nil)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = Reduce(s, DeleteOption{QuestionIndex: 0, OptionIndex: -1}, nil)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("question index out of range", func(t *testing.T) {
		_, err := Reduce(s, AddOption{QuestionIndex: 1}, nil)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = Reduce(s, SetOption{QuestionIndex: 3, OptionIndex: 0}, nil)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}

func TestReduce_MoveQuestion(t *testing.T) {
	s := reduceAll(t, SequentialIDs("q"), AddQuestion{}, AddQuestion{}, AddQuestion{}, AddQuestion{})

	order := func(st State) []string {
		out := make([]string, 0, st.Len())
		for _, q := range st.Questions {
			out = append(out, q.ID)
		}
		return out
	}

	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 2, []string{"q-2", "q-3", "q-1", "q-4"}},
		{3, 0, []string{"q-4", "q-1", "q-2", "q-3"}},
		{1, 1, []string{"q-1", "q-2", "q-3", "q-4"}},
		{2, 3, []string{"q-1", "q-2", "q-4", "q-3"}},
	}
	for _, tt := range tests {
		next, err := Reduce(s, MoveQuestion{From: tt.from, To: tt.to}, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, order(next), "move %d -> %d", tt.from, tt.to)
	}
	assert.Equal(t, []string{"q-1", "q-2", "q-3", "q-4"}, order(s))

	_, err := Reduce(s, MoveQuestion{From: 0, To: 4}, nil)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestReduce_PrefixOrderPreserved(t *testing.T) {
	ids := SequentialIDs("q")
	s := reduceAll(t, ids, AddQuestion{}, AddQuestion{}, AddQuestion{})
	prefix := []string{s.Questions[0].ID, s.Questions[1].ID}

	actions := []Action{
		DuplicateQuestion{Index: 2},
		AddQuestion{},
		DuplicateQuestion{Index: 3},
		DeleteQuestion{ID: s.Questions[2].ID},
		AddQuestion{},
	}
	for _, a := range actions {
		next, err := Reduce(s, a, ids)
		require.NoError(t, err)
		s = next
		assert.Equal(t, prefix, []string{s.Questions[0].ID, s.Questions[1].ID}, a.Name())
	}
	assert.Equal(t, 6, s.Len())
}

func TestReduce_PrefixUntouchedByLaterEdits(t *testing.T) {
	for k := 0; k <= 4; k++ {
		rng := rand.New(rand.NewSource(int64(k + 1)))
		ids := SequentialIDs("q")
		s := reduceAll(t, ids, AddQuestion{}, AddQuestion{}, AddQuestion{}, AddQuestion{}, AddQuestion{})

		prefix := make([]string, k)
		for i := range prefix {
			prefix[i] = s.Questions[i].ID
		}

		for step := 0; step < 200; step++ {
			var action Action
			tail := s.Len() - k
			switch op := rng.Intn(4); {
			case op == 0 || tail == 0:
				action = AddQuestion{}
			case op == 1:
				action = DuplicateQuestion{Index: k + rng.Intn(tail)}
			case op == 2:
				action = DeleteQuestion{ID: s.Questions[k+rng.Intn(tail)].ID}
			default:
				action = MoveQuestion{From: k + rng.Intn(tail), To: k + rng.Intn(tail)}
			}

			next, err := Reduce(s, action, ids)
			require.NoError(t, err, "k=%d step=%d %s", k, step, action.Name())
			s = next

			require.GreaterOrEqual(t, s.Len(), k)
			for i, id := range prefix {
				require.Equal(t, id, s.Questions[i].ID, "k=%d step=%d %s", k, step, action.Name())
			}
		}
	}
}
