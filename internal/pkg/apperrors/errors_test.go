package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestPersistence(t *testing.T) {
	t.Parallel()

	if Persistence("noop", nil) != nil {
		t.Fatal("expected nil for nil cause")
	}

	err := Persistence("replace recommendations", context.DeadlineExceeded)
	if !errors.Is(err, ErrPersistenceFailure) {
		t.Errorf("%v does not match ErrPersistenceFailure", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("%v does not match its cause", err)
	}
	if got, want := err.Error(), "persistence failure: replace recommendations: context deadline exceeded"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !IsNotFound(fmt.Errorf("load: %w", ErrScholarshipNotFound)) {
		t.Error("wrapped scholarship not found should match")
	}
	if !IsNotFound(ErrProfileNotFound) {
		t.Error("profile not found should match")
	}
	if IsNotFound(ErrPersistenceFailure) {
		t.Error("persistence failure should not match")
	}
}
