package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/spicy-vs-sweet/internal/apperror"
)

func TestDecode(t *testing.T) {
	res, err := decode([]byte(`{"accepted":true,"matched_alternative":"Paris, France"}`))
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "Paris, France", res.MatchedAlternative)

	_, err = decode([]byte("garbage"))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, apperror.KindTransient, classify(context.DeadlineExceeded))
	assert.Equal(t, apperror.KindUnknown, classify(errors.New("WRONGTYPE")))
}

func TestNewJudgeCacheInvalidURL(t *testing.T) {
	_, err := NewJudgeCache(context.Background(), "not a url")
	assert.Error(t, err)
}
