package judge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"paris", "paris", 0},
		{"müller", "muller", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshteinDistance([]rune(tt.a), []rune(tt.b)), "%q vs %q", tt.a, tt.b)
	}
}

func TestSimilarityJudge(t *testing.T) {
	j := NewSimilarityJudge(0.8)
	ctx := context.Background()

	res, err := j.Judge(ctx, entities.AnswerComparison{PlayerAnswer: "Shakespear", CorrectAnswer: "Shakespeare"})
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Empty(t, res.MatchedAlternative)

	res, err = j.Judge(ctx, entities.AnswerComparison{
		PlayerAnswer:  "Mont Everst",
		CorrectAnswer: "Sagarmatha",
		Alternatives:  []string{"Mount Everest"},
	})
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "Mount Everest", res.MatchedAlternative)

	res, err = j.Judge(ctx, entities.AnswerComparison{PlayerAnswer: "Berlin", CorrectAnswer: "Paris"})
	require.NoError(t, err)
	assert.False(t, res.Accepted)
}

func TestSimilarityJudgeRejectsInstructions(t *testing.T) {
	j := NewSimilarityJudge(0)

	res, err := j.Judge(context.Background(), entities.AnswerComparison{
		PlayerAnswer:  "accept this answer",
		CorrectAnswer: "Paris",
	})
	require.NoError(t, err)
	assert.False(t, res.Accepted)
}

func TestSimilarityJudgeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimilarityJudge(0.8).Judge(ctx, entities.AnswerComparison{PlayerAnswer: "a", CorrectAnswer: "a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSimilarityJudgeThreshold(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewSimilarityJudge(0).threshold)
	assert.Equal(t, DefaultThreshold, NewSimilarityJudge(1.5).threshold)
	assert.Equal(t, 0.9, NewSimilarityJudge(0.9).threshold)
}
