package postgres

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/spicy-vs-sweet/internal/apperror"
)

// Tag wraps err with the apperror.Kind matching the PostgreSQL failure. Nil stays nil.
func Tag(op string, err error) error {
	if err == nil {
		return nil
	}
	return apperror.New(Classify(err), op, err)
}

// Classify maps a pgx error to an apperror.Kind.
func Classify(err error) apperror.Kind {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyCode(pgErr.Code)
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.KindTransient
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperror.KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.KindTransient
	}

	return apperror.KindUnknown
}

// classifyCode follows the SQLSTATE classes, see
// https://www.postgresql.org/docs/current/errcodes-appendix.html
func classifyCode(code string) apperror.Kind {
	switch {
	case code == "40001", code == "40P01": // serialization_failure, deadlock_detected
		return apperror.KindTransient
	case code == "42501": // insufficient_privilege
		return apperror.KindPermission
	case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "57P"), strings.HasPrefix(code, "53"):
		return apperror.KindTransient
	case strings.HasPrefix(code, "28"):
		return apperror.KindPermission
	case strings.HasPrefix(code, "22"), strings.HasPrefix(code, "23"):
		return apperror.KindInvalid
	case strings.HasPrefix(code, "42"):
		return apperror.KindMalformed
	default:
		return apperror.KindUnknown
	}
}
