package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", New(KindNotFound, "gone"), KindNotFound},
		{"wrapped with fmt", fmt.Errorf("outer: %w", New(KindConflict, "clash")), KindConflict},
		{"plain error defaults to storage", errors.New("boom"), KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindStorage, "query users", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to match its cause")
	}
	if err.Error() != "query users: connection reset" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsInvalidTransition(New(KindInvalidTransition, "nope")) {
		t.Error("IsInvalidTransition should match")
	}
	if IsNotFound(New(KindValidation, "bad")) {
		t.Error("IsNotFound should not match a validation error")
	}
	if IsValidation(nil) {
		t.Error("nil is no kind at all")
	}
}
