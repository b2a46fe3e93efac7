package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"strings"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoQuestions      = errors.New("no questions available")
)

// SupportedLocales are the content languages questions may be written in.
var SupportedLocales = []string{"de", "en", "es", "fr", "pt"}

// QuestionRepository provides access to the question bank.
// The bank is loaded from a JSON file once and never changes afterwards.
type QuestionRepository struct {
	questions []*entities.Question
	byID      map[string]*entities.Question
}

// NewQuestionRepository loads the question bank from path.
func NewQuestionRepository(path string) (*QuestionRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return newQuestionRepository(data)
}

func newQuestionRepository(data []byte) (*QuestionRepository, error) {
	var wrapper struct {
		Questions []*entities.Question `json:"questions"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	if len(wrapper.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	byID := make(map[string]*entities.Question, len(wrapper.Questions))
	for i, q := range wrapper.Questions {
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("question #%d: %w", i, err)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("question #%d: duplicate id %q", i, q.ID)
		}
		byID[q.ID] = q
	}

	return &QuestionRepository{
		questions: wrapper.Questions,
		byID:      byID,
	}, nil
}

func validateQuestion(q *entities.Question) error {
	switch {
	case q == nil:
		return errors.New("empty entry")
	case strings.TrimSpace(q.ID) == "":
		return errors.New("missing id")
	case !slices.Contains(SupportedLocales, q.Locale):
		return fmt.Errorf("unsupported locale %q", q.Locale)
	case !q.Category.Valid():
		return fmt.Errorf("unknown category %q", q.Category)
	case strings.TrimSpace(q.Prompt) == "":
		return errors.New("missing prompt")
	case strings.TrimSpace(q.CorrectAnswer) == "":
		return errors.New("missing correct answer")
	}
	return nil
}

// GetByID retrieves a question by its id.
func (r *QuestionRepository) GetByID(id string) (*entities.Question, error) {
	q, ok := r.byID[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// Random picks a random question in locale. An empty category means any category.
// Questions for which skip returns true are not picked; skip may be nil.
func (r *QuestionRepository) Random(locale string, category entities.Category, skip func(id string) bool) (*entities.Question, error) {
	candidates := make([]*entities.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if q.Locale != locale {
			continue
		}
		if category != "" && q.Category != category {
			continue
		}
		if skip != nil && skip(q.ID) {
			continue
		}
		candidates = append(candidates, q)
	}

	if len(candidates) == 0 {
		return nil, ErrNoQuestions
	}

	return candidates[rand.Intn(len(candidates))], nil
}

// Locales returns the locales the bank has questions for, sorted.
func (r *QuestionRepository) Locales() []string {
	seen := make(map[string]struct{})
	for _, q := range r.questions {
		seen[q.Locale] = struct{}{}
	}

	locales := make([]string, 0, len(seen))
	for l := range seen {
		locales = append(locales, l)
	}
	slices.Sort(locales)

	return locales
}

// Count returns the number of questions in locale.
func (r *QuestionRepository) Count(locale string) int {
	n := 0
	for _, q := range r.questions {
		if q.Locale == locale {
			n++
		}
	}
	return n
}
