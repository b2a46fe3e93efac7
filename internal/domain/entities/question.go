package entities

// Category is the flavour of a question: light "sweet" trivia or bolder "spicy" ones.
type Category string

const (
	CategorySweet Category = "sweet"
	CategorySpicy Category = "spicy"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategorySweet || c == CategorySpicy
}

// Question is a free-text trivia question with its canonical answer.
type Question struct {
	ID            string   `json:"id"`             // stable question identifier
	Locale        string   `json:"locale"`         // content language: "de", "en", "es", "pt", "fr"
	Category      Category `json:"category"`       // "sweet" or "spicy"
	Prompt        string   `json:"prompt"`         // question text shown to players
	CorrectAnswer string   `json:"correct_answer"` // canonical answer
	Alternatives  []string `json:"alternatives"`   // other accepted phrasings, may be empty
}

// Comparison builds the comparison of a player's answer against this question.
func (q *Question) Comparison(playerAnswer string) AnswerComparison {
	return AnswerComparison{
		PlayerAnswer:  playerAnswer,
		CorrectAnswer: q.CorrectAnswer,
		Alternatives:  q.Alternatives,
		Locale:        q.Locale,
	}
}
