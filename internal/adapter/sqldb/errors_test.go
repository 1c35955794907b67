package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "slide", "s1"); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(sql.ErrNoRows, "presentation", "p1")
	if !errors.Is(got, domain.ErrNotFound) {
		t.Fatalf("MapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := "presentation p1: not found"; got.Error() != want {
		t.Errorf("MapError(ErrNoRows).Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_WrappedNoRows(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("scan row: %w", sql.ErrNoRows)
	if got := MapError(wrapped, "template", "t1"); !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(wrapped ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want error
	}{
		{"foreign key", "23503", domain.ErrNotFound},
		{"not null", "23502", domain.ErrValidation},
		{"check", "23514", domain.ErrValidation},
		{"invalid text", "22P02", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(&pgconn.PgError{Code: tt.code}, "slide", "s1")
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(%s) = %v, want wrapping %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMapError_UnknownPgCodePassesThrough(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "42P01"}
	got := MapError(pgErr, "slide", "s1")

	var target *pgconn.PgError
	if !errors.As(got, &target) {
		t.Fatalf("MapError lost the original *pgconn.PgError: %v", got)
	}
	if errors.Is(got, domain.ErrNotFound) || errors.Is(got, domain.ErrValidation) {
		t.Errorf("MapError(42P01) unexpectedly mapped to a domain error: %v", got)
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.Canceled, context.DeadlineExceeded} {
		got := MapError(ctxErr, "rule", "r1")
		if !errors.Is(got, ctxErr) {
			t.Errorf("MapError(%v) = %v, want wrapping the context error", ctxErr, got)
		}
		if errors.Is(got, domain.ErrNotFound) {
			t.Errorf("MapError(%v) mapped to ErrNotFound", ctxErr)
		}
	}
}
