package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

const bankJSON = `{
  "questions": [
    {"id": "en-1", "locale": "en", "category": "sweet", "prompt": "Capital of France?", "correct_answer": "Paris", "alternatives": ["Paris, France"]},
    {"id": "en-2", "locale": "en", "category": "spicy", "prompt": "Who painted the Mona Lisa?", "correct_answer": "Leonardo da Vinci"},
    {"id": "fr-1", "locale": "fr", "category": "sweet", "prompt": "Qui a peint la Joconde ?", "correct_answer": "Léonard de Vinci"}
  ]
}`

func TestQuestionRepository(t *testing.T) {
	r, err := newQuestionRepository([]byte(bankJSON))
	require.NoError(t, err)

	q, err := r.GetByID("en-1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", q.CorrectAnswer)
	assert.Equal(t, []string{"Paris, France"}, q.Alternatives)

	_, err = r.GetByID("missing")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	assert.Equal(t, []string{"en", "fr"}, r.Locales())
}

func TestQuestionRepositoryRandom(t *testing.T) {
	r, err := newQuestionRepository([]byte(bankJSON))
	require.NoError(t, err)

	q, err := r.Random("en", entities.CategorySpicy, nil)
	require.NoError(t, err)
	assert.Equal(t, "en-2", q.ID)

	q, err = r.Random("en", "", func(id string) bool { return id == "en-2" })
	require.NoError(t, err)
	assert.Equal(t, "en-1", q.ID)

	_, err = r.Random("fr", entities.CategorySpicy, nil)
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = r.Random("de", "", nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestQuestionRepositoryRejectsInvalidBank(t *testing.T) {
	bad := []string{
		`{"questions": []}`,
		`{"questions": [{"id": "x", "locale": "it", "category": "sweet", "prompt": "p", "correct_answer": "a"}]}`,
		`{"questions": [{"id": "x", "locale": "en", "category": "salty", "prompt": "p", "correct_answer": "a"}]}`,
		`{"questions": [{"id": "x", "locale": "en", "category": "sweet", "prompt": "p", "correct_answer": " "}]}`,
		`{"questions": [
			{"id": "x", "locale": "en", "category": "sweet", "prompt": "p", "correct_answer": "a"},
			{"id": "x", "locale": "en", "category": "sweet", "prompt": "q", "correct_answer": "b"}
		]}`,
		`not json`,
	}

	for _, data := range bad {
		_, err := newQuestionRepository([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestNewQuestionRepositoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(bankJSON), 0o600))

	r, err := NewQuestionRepository(path)
	require.NoError(t, err)
	assert.Len(t, r.Locales(), 2)

	_, err = NewQuestionRepository(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
