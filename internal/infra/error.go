package infra

import (
	"errors"

	"roomledger/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err by its Postgres error code unless kind is given.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: k, msg: msg, err: err}
}

func NotFound(msg string) error {
	return RepositoryError{Kind: KindNotFound, msg: msg}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindExclusionViolated  RepositoryErrorKind = "EXCLUSION_VIOLATED"
	KindContention         RepositoryErrorKind = "CONTENTION"
)

const (
	PgErrCodeUniqueViolation      = "23505"
	PgErrCodeForeignKeyViolation  = "23503"
	PgErrCodeExclusionViolation   = "23P01"
	PgErrCodeSerializationFailure = "40001"
	PgErrCodeDeadlockDetected     = "40P01"
	PgErrCodeLockNotAvailable     = "55P03"
)

func classify(err error) RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure
	}
	switch pgErr.Code {
	case PgErrCodeUniqueViolation:
		return KindDuplicateKey
	case PgErrCodeForeignKeyViolation:
		return KindForeignKeyViolated
	case PgErrCodeExclusionViolation:
		return KindExclusionViolated
	case PgErrCodeSerializationFailure, PgErrCodeDeadlockDetected, PgErrCodeLockNotAvailable:
		return KindContention
	default:
		return KindDBFailure
	}
}

// IsContention reports serialization failures, deadlocks and lock timeouts,
// whether or not they were wrapped by a repository.
func IsContention(err error) bool {
	if IsKind(err, KindContention) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return classify(pgErr) == KindContention
}

// ConstraintName returns the violated constraint, if err carries one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
