package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPgError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	if !IsUniqueViolation(dup, "") {
		t.Fatalf("expected 23505 to count as unique violation")
	}
	if !IsUniqueViolation(dup, "users_email_key") {
		t.Fatalf("expected match on constraint name")
	}
	if IsUniqueViolation(dup, "orders_pkey") {
		t.Fatalf("expected mismatched constraint to be rejected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatalf("foreign key violation should not count")
	}
}

func TestIsUniqueViolationWrapped(t *testing.T) {
	dup := fmt.Errorf("saving row: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(dup, "") {
		t.Fatalf("expected wrapped pg error to be detected")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	if !IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "categories_name_key"`), "") {
		t.Fatalf("expected postgres message fallback")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: categories.name"), "") {
		t.Fatalf("expected sqlite message fallback")
	}
	if !IsUniqueViolation(errors.New("violates categories_name_key"), "categories_name_key") {
		t.Fatalf("expected constraint name fallback")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatalf("nil error is never a violation")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatalf("unrelated error should not match")
	}
}
