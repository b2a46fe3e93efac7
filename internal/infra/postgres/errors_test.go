package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/spicy-vs-sweet/internal/apperror"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperror.Kind
	}{
		{"no rows", pgx.ErrNoRows, apperror.KindNotFound},
		{"serialization", &pgconn.PgError{Code: "40001"}, apperror.KindTransient},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, apperror.KindTransient},
		{"connection failure", &pgconn.PgError{Code: "08006"}, apperror.KindTransient},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, apperror.KindTransient},
		{"too many connections", &pgconn.PgError{Code: "53300"}, apperror.KindTransient},
		{"bad password", &pgconn.PgError{Code: "28P01"}, apperror.KindPermission},
		{"insufficient privilege", &pgconn.PgError{Code: "42501"}, apperror.KindPermission},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, apperror.KindMalformed},
		{"unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), apperror.KindInvalid},
		{"deadline", context.DeadlineExceeded, apperror.KindTransient},
		{"other", errors.New("boom"), apperror.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestTag(t *testing.T) {
	assert.NoError(t, Tag("op", nil))

	err := Tag("save verdict", &pgconn.PgError{Code: "28000"})
	assert.Equal(t, apperror.KindPermission, apperror.KindOf(err))
	assert.False(t, apperror.Retryable(err))
}
