// ABOUTME: Tests for the user-visible message unwrap chain

package rpc

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	structured := &Error{Message: "invalid_request", Data: &ErrorData{Message: "Model not found"}}
	bare := &Error{Message: "invalid_request"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "fallback"},
		{"structured data message", structured, "Model not found"},
		{"wrapped structured", fmt.Errorf("sending: %w", structured), "Model not found"},
		{"error message only", bare, "invalid_request"},
		{"plain error", errors.New("dial tcp: refused"), "dial tcp: refused"},
		{"empty data falls to message", &Error{Message: "oops", Data: &ErrorData{}}, "oops"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err, "fallback"); got != tt.want {
			t.Errorf("%s: UserMessage = %q, want %q", tt.name, got, tt.want)
		}
	}
}
