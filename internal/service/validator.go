package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/apperror"
	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/metrics"
	"github.com/aliskhannn/spicy-vs-sweet/internal/normalize"
	"github.com/aliskhannn/spicy-vs-sweet/internal/retry"
)

// ErrJudgeUnavailable is returned when the fuzzy judge could not give a verdict.
// Callers must not treat it as a rejection.
var ErrJudgeUnavailable = errors.New("fuzzy judge unavailable")

// AnswerValidator decides whether a player's answer is correct.
// Answers are compared locally first; only unmatched answers go to the fuzzy judge.
type AnswerValidator struct {
	judge     FuzzyJudge
	retryOpts retry.Options
	logger    *zap.Logger
}

// NewAnswerValidator creates a new AnswerValidator. Judge calls are retried with retryOpts;
// its ShouldRetry and OnRetry are replaced by the validator's own.
func NewAnswerValidator(judge FuzzyJudge, retryOpts retry.Options, logger *zap.Logger) *AnswerValidator {
	return &AnswerValidator{
		judge:     judge,
		retryOpts: retryOpts,
		logger:    logger,
	}
}

// Validate checks the player's answer against the correct answer and its alternatives.
func (v *AnswerValidator) Validate(ctx context.Context, c entities.AnswerComparison) (entities.Verdict, error) {
	verdict, ok := v.matchLocal(c)
	if !ok {
		var err error
		verdict, err = v.matchFuzzy(ctx, c)
		if err != nil {
			return entities.Verdict{}, err
		}
	}

	metrics.VerdictsTotal.WithLabelValues(string(verdict.MatchedOn)).Inc()
	return verdict, nil
}

// matchLocal compares normalized strings. ok is false when the fuzzy judge has to decide.
func (v *AnswerValidator) matchLocal(c entities.AnswerComparison) (entities.Verdict, bool) {
	player := normalize.Answer(c.PlayerAnswer)

	// Nothing to compare.
	if player == "" {
		return entities.Rejected(), true
	}

	if player == normalize.Answer(c.CorrectAnswer) {
		return entities.Verdict{Accepted: true, MatchedOn: entities.MatchExact}, true
	}

	for _, alt := range c.Alternatives {
		if player == normalize.Answer(alt) {
			return entities.Verdict{
				Accepted:           true,
				MatchedOn:          entities.MatchAlternative,
				MatchedAlternative: alt,
			}, true
		}
	}

	return entities.Verdict{}, false
}

func (v *AnswerValidator) matchFuzzy(ctx context.Context, c entities.AnswerComparison) (entities.Verdict, error) {
	opts := v.retryOpts
	opts.ShouldRetry = apperror.Retryable
	opts.OnRetry = func(attempt int, err error) {
		metrics.RetriesTotal.WithLabelValues("judge").Inc()
		v.logger.Warn("fuzzy judge attempt failed",
			zap.Int("attempt", attempt),
			zap.Stringer("kind", apperror.KindOf(err)),
			zap.Error(err),
		)
	}

	start := time.Now()
	res, err := retry.Do(ctx, func(ctx context.Context) (entities.JudgeResult, error) {
		return v.judge.Judge(ctx, c)
	}, opts)
	metrics.JudgeLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.JudgeErrorsTotal.WithLabelValues(apperror.KindOf(err).String()).Inc()
		return entities.Verdict{}, fmt.Errorf("%w: %w", ErrJudgeUnavailable, err)
	}

	if !res.Accepted {
		return entities.Rejected(), nil
	}

	return entities.Verdict{
		Accepted:           true,
		MatchedOn:          entities.MatchFuzzy,
		MatchedAlternative: res.MatchedAlternative,
	}, nil
}
