package judge

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/metrics"
	"github.com/aliskhannn/spicy-vs-sweet/internal/normalize"
)

const DefaultCacheTTL = 24 * time.Hour

// Judger is anything that can judge a comparison.
type Judger interface {
	Judge(ctx context.Context, c entities.AnswerComparison) (entities.JudgeResult, error)
}

// Cache stores fuzzy judge results.
type Cache interface {
	Get(ctx context.Context, key string) (entities.JudgeResult, bool, error)
	Set(ctx context.Context, key string, res entities.JudgeResult, ttl time.Duration) error
}

// CachedJudge remembers results of the wrapped judge, so players typing the same
// near-miss do not cost another LLM call. Errors are never cached and cache
// failures only cost a cache miss.
type CachedJudge struct {
	next   Judger
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedJudge wraps next with cache.
func NewCachedJudge(next Judger, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedJudge {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedJudge{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Judge implements service.FuzzyJudge.
func (j *CachedJudge) Judge(ctx context.Context, c entities.AnswerComparison) (entities.JudgeResult, error) {
	key := CacheKey(c)

	res, ok, err := j.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.JudgeCacheTotal.WithLabelValues("error").Inc()
		j.logger.Warn("judge cache read failed", zap.String("key", key), zap.Error(err))
	case ok:
		metrics.JudgeCacheTotal.WithLabelValues("hit").Inc()
		return res, nil
	default:
		metrics.JudgeCacheTotal.WithLabelValues("miss").Inc()
	}

	res, err = j.next.Judge(ctx, c)
	if err != nil {
		return entities.JudgeResult{}, err
	}

	if err := j.cache.Set(ctx, key, res, j.ttl); err != nil {
		j.logger.Warn("judge cache write failed", zap.String("key", key), zap.Error(err))
	}

	return res, nil
}

// CacheKey identifies a comparison by its normalized content. Alternatives keep their
// order because the first matching one is reported.
func CacheKey(c entities.AnswerComparison) string {
	var sb strings.Builder
	sb.WriteString(c.Locale)
	sb.WriteByte(0)
	sb.WriteString(normalize.Answer(c.PlayerAnswer))
	sb.WriteByte(0)
	sb.WriteString(normalize.Answer(c.CorrectAnswer))
	for _, alt := range c.Alternatives {
		sb.WriteByte(0)
		// Raw text: a matched alternative is reported verbatim.
		sb.WriteString(alt)
	}

	return "judge:v1:" + strconv.FormatUint(xxhash.Sum64String(sb.String()), 16)
}
