// Package app wires the components shared by the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/config"
	"github.com/aliskhannn/spicy-vs-sweet/internal/health"
	"github.com/aliskhannn/spicy-vs-sweet/internal/infra/redis"
	"github.com/aliskhannn/spicy-vs-sweet/internal/judge"
	"github.com/aliskhannn/spicy-vs-sweet/internal/service"
)

// FuzzyJudge is the configured fuzzy judge with its resources.
type FuzzyJudge struct {
	service.FuzzyJudge
	Checks map[string]health.Checker
	close  func() error
}

// Close releases the judge's connections.
func (j *FuzzyJudge) Close() error {
	if j.close == nil {
		return nil
	}
	return j.close()
}

// NewFuzzyJudge builds the fuzzy judge: Gemini when an API key is configured,
// the offline similarity judge otherwise, behind the Redis cache when REDIS_URL is set.
func NewFuzzyJudge(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*FuzzyJudge, error) {
	out := &FuzzyJudge{Checks: map[string]health.Checker{}}

	var j judge.Judger
	if cfg.Judge.APIKey != "" {
		g, err := judge.NewGeminiJudge(ctx, cfg.Judge.APIKey, cfg.Judge.Model, cfg.Judge.Timeout)
		if err != nil {
			return nil, fmt.Errorf("gemini judge: %w", err)
		}
		j = g
		logger.Info("using gemini judge", zap.String("model", cfg.Judge.Model))
	} else {
		j = judge.NewSimilarityJudge(cfg.Judge.Threshold)
		logger.Info("GEMINI_API_KEY not set, using similarity judge",
			zap.Float64("threshold", cfg.Judge.Threshold),
		)
	}

	if cfg.Redis.URL != "" {
		cache, err := redis.NewJudgeCache(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("judge cache: %w", err)
		}
		j = judge.NewCachedJudge(j, cache, cfg.Judge.CacheTTL, logger)
		out.Checks["redis"] = cache
		out.close = cache.Close
		logger.Info("judge cache enabled", zap.Duration("ttl", cfg.Judge.CacheTTL))
	}

	out.FuzzyJudge = j
	return out, nil
}
