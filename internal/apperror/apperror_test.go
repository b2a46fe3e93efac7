package apperror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"untagged", base, KindUnknown},
		{"tagged", New(KindPermission, "judge", base), KindPermission},
		{"wrapped tagged", fmt.Errorf("validate: %w", New(KindTransient, "judge", base)), KindTransient},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	base := errors.New("boom")

	assert.False(t, Retryable(nil))
	assert.True(t, Retryable(base))
	assert.True(t, Retryable(New(KindTransient, "op", base)))
	assert.False(t, Retryable(New(KindPermission, "op", base)))
	assert.False(t, Retryable(New(KindMalformed, "op", base)))
	assert.False(t, Retryable(New(KindInvalid, "op", base)))
	assert.False(t, Retryable(fmt.Errorf("op: %w", context.Canceled)))
}

func TestNewNil(t *testing.T) {
	assert.NoError(t, New(KindTransient, "op", nil))
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := New(KindTransient, "save verdict", base)

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "save verdict: transient: boom", err.Error())
}
