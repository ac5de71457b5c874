package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"typed", Errorf(ENOTFOUND, "missing"), ENOTFOUND},
		{"wrapped", fmt.Errorf("context: %w", Errorf(ECONFLICT, "dup")), ECONFLICT},
		{"plain", errors.New("boom"), EINTERNAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := Errorf(EINVALID, "Message body must not be empty.")
	if got := ErrorMessage(err); got != "Message body must not be empty." {
		t.Errorf("ErrorMessage() = %q", got)
	}

	// Internals never leak to clients.
	if got := ErrorMessage(errors.New("pq: connection refused")); got != "An internal error has occurred." {
		t.Errorf("ErrorMessage(plain) = %q", got)
	}
}

func TestErrorfFormats(t *testing.T) {
	err := Errorf(ENOTFOUND, "chat %d not found", 7)
	if err.Message != "chat 7 not found" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != "not_found: chat 7 not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
