package errors

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyError_Nil(t *testing.T) {
	info := classifyError(nil)

	if info.category != CategoryUnknown || info.sanitized != "" {
		t.Errorf("unexpected classification for nil: %+v", info)
	}
}

func TestClassifyError_PgError(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", Message: "duplicate key"}

	if got := classifyError(err).category; got != CategoryDatabase {
		t.Errorf("expected database category, got %s", got)
	}
}

func TestClassifyError_NoRows(t *testing.T) {
	err := fmt.Errorf("lookup: %w", pgx.ErrNoRows)

	if got := classifyError(err).category; got != CategoryNotFound {
		t.Errorf("expected not_found category, got %s", got)
	}
}

func TestClassifyError_ContextDeadline(t *testing.T) {
	err := fmt.Errorf("query: %w", context.DeadlineExceeded)

	if got := classifyError(err).category; got != CategoryTimeout {
		t.Errorf("expected timeout category, got %s", got)
	}
}

func TestClassifyError_UpstreamAPI(t *testing.T) {
	cases := []string{
		"api request failed with status 500",
		"rate limit exceeded",
		"model overloaded, retry later",
	}

	for _, msg := range cases {
		if got := classifyError(fmt.Errorf("%s", msg)).category; got != CategoryUpstream {
			t.Errorf("expected upstream category for %q, got %s", msg, got)
		}
	}
}

func TestClassifyError_Network(t *testing.T) {
	err := fmt.Errorf("dial tcp 127.0.0.1:5432: connection refused")

	if got := classifyError(err).category; got != CategoryNetwork {
		t.Errorf("expected network category, got %s", got)
	}
}

func TestSanitizeError_ProductionHidesDetails(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"ENVIRONMENT", "production")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"ENVIRONMENT")

	err := &pgconn.PgError{Code: "42P01", Message: "relation \"secret_table\" does not exist"}
	got := sanitizeError(err)

	if got != "database operation failed" {
		t.Errorf("expected sanitized message in production, got %q", got)
	}
}

func TestSanitizeError_DevelopmentKeepsDetails(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"ENVIRONMENT", "development")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"ENVIRONMENT")

	err := fmt.Errorf("dial tcp: connection refused")

	if got := sanitizeError(err); got != err.Error() {
		t.Errorf("expected full message in development, got %q", got)
	}
}
