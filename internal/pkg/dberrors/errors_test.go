package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func uniqueErr(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(uniqueErr("students_email_key")) {
		t.Error("23505 should be a unique violation")
	}
	if !IsUniqueViolation(fmt.Errorf("wrapped: %w", uniqueErr("students_email_key"))) {
		t.Error("wrapped 23505 should be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(errors.New("plain error")) {
		t.Error("plain error is not a unique violation")
	}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := uniqueErr("students_email_key")
	if !IsDuplicateConstraintError(err, "students_email_key") {
		t.Error("matching constraint should be detected")
	}
	if IsDuplicateConstraintError(err, "students_student_no_key") {
		t.Error("different constraint should not match")
	}
}

func TestConstraintName(t *testing.T) {
	if got := ConstraintName(uniqueErr("sessions_token_key")); got != "sessions_token_key" {
		t.Errorf("ConstraintName = %q", got)
	}
	if got := ConstraintName(errors.New("plain error")); got != "" {
		t.Errorf("ConstraintName on non-pg error = %q, want empty", got)
	}
}
