package service

import (
	"context"
	"errors"
	"log/slog"

	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
	"github.com/listenupapp/catalog-server/internal/logger"
	"github.com/listenupapp/catalog-server/internal/normalize"
	"github.com/listenupapp/catalog-server/internal/store"
)

// storeError translates a store failure into a domain error, attributing
// NotFound to kind. Domain errors pass through and context errors become
// Canceled.
func storeError(kind domainerrors.Entity, err error) error {
	var domainErr *domainerrors.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainerrors.Canceled(err)
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.EntityNotFound(kind, "")
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflict(kind.Title() + " already exists").WithCause(err)
	case errors.Is(err, store.ErrForeignKey):
		return domainerrors.NotFound("Referenced record not found").WithCause(err)
	default:
		return domainerrors.Storage(err)
	}
}

// logFailure records storage failures on the request logger; expected
// outcomes such as NotFound are left to the access log.
func logFailure(ctx context.Context, fallback *slog.Logger, op string, err error, args ...any) {
	if errors.Is(err, domainerrors.ErrStorage) {
		logger.FromContext(ctx, fallback).Error(op+" failed", append(args, "error", err)...)
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := normalize.Text(*s)
	return &v
}

// optional turns an empty string into nil so that "" clears a nullable column.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
