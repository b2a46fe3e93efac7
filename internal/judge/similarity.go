package judge

import (
	"context"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/normalize"
)

const DefaultThreshold = 0.8

// SimilarityJudge accepts answers close enough to a correct one by edit distance.
// It works offline and is used when no LLM is configured.
type SimilarityJudge struct {
	threshold float64 // Similarity threshold (0.0 - 1.0)
}

// NewSimilarityJudge creates a new SimilarityJudge. A threshold outside (0, 1] means DefaultThreshold.
func NewSimilarityJudge(threshold float64) *SimilarityJudge {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &SimilarityJudge{threshold: threshold}
}

// Judge implements service.FuzzyJudge.
func (j *SimilarityJudge) Judge(ctx context.Context, c entities.AnswerComparison) (entities.JudgeResult, error) {
	if err := ctx.Err(); err != nil {
		return entities.JudgeResult{}, err
	}

	player := normalize.Answer(c.PlayerAnswer)

	if similarity(player, normalize.Answer(c.CorrectAnswer)) >= j.threshold {
		return entities.JudgeResult{Accepted: true}, nil
	}

	for _, alt := range c.Alternatives {
		if similarity(player, normalize.Answer(alt)) >= j.threshold {
			return entities.JudgeResult{Accepted: true, MatchedAlternative: alt}, nil
		}
	}

	return entities.JudgeResult{}, nil
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func similarity(s1, s2 string) float64 {
	r1, r2 := []rune(s1), []rune(s2)
	maxLen := max(len(r1), len(r2))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshteinDistance(r1, r2))/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two rune slices.
func levenshteinDistance(r1, r2 []rune) int {
	cols := len(r2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // Insertion
				prev[j]+1,      // Deletion
				prev[j-1]+cost, // Substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
