package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for the domain layer. Handlers translate everything the
// storage layer produces into one of these before responding.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("storage unavailable")
)

// RespondError maps domain errors to HTTP responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		Error(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, ErrForbidden):
		Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		Error(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// TranslatePG converts low-level postgres errors into domain sentinels.
// Unique-constraint violations become ErrDuplicate so callers answer 409.
func TranslatePG(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrValidation
		}
	}
	return err
}
