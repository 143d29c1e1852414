package shared

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

type displayErr struct{ msg string }

func (d displayErr) Error() string       { return "wrapped: " + d.msg }
func (d displayErr) UserMessage() string { return d.msg }

func TestUserMessage(t *testing.T) {
	tc := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{name: "nil", err: nil, fallback: "x", want: ""},
		{name: "user facing wins", err: fmt.Errorf("ctx: %w", displayErr{"Seat already taken"}), fallback: "Booking failed", want: "Seat already taken"},
		{name: "user facing without message uses fallback", err: displayErr{""}, fallback: "Booking failed", want: "Booking failed"},
		{name: "validation error", err: &ValidationError{Message: "Passwords do not match"}, want: "Passwords do not match"},
		{name: "seat booked sentinel", err: fmt.Errorf("%w: A1", ErrSeatBooked), want: "This seat is already booked"},
		{name: "timeout sentinel", err: fmt.Errorf("%w", ErrTimeout), want: TimeoutMessage},
		{name: "network sentinel", err: ErrNetwork, want: NetworkMessage},
		{name: "plain error uses fallback", err: errors.New("boom"), fallback: "Login failed", want: "Login failed"},
		{name: "plain error without fallback", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, tt.fallback); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	err := &ValidationError{Field: "Email", Message: "Please enter a valid email address"}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected ValidationError to unwrap to ErrValidation")
	}
}

func TestLogger(t *testing.T) {
	t.Run("SetLogLevel", func(t *testing.T) {
		l := NewLogger(nil)
		if err := SetLogLevel(l, "debug"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", l.GetLevel())
		}
		if err := SetLogLevel(l, "loud"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "showtime.log")
		l, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		l.Info("hello")
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected 36 character UUID, got %d", len(a))
	}
}

func TestMarshalJSON(t *testing.T) {
	compact, err := MarshalJSON(map[string]int{"a": 1}, false)
	if err != nil || string(compact) != `{"a":1}` {
		t.Errorf("unexpected compact output %q, %v", compact, err)
	}

	pretty, err := MarshalJSON(map[string]int{"a": 1}, true)
	if err != nil || string(pretty) != "{\n  \"a\": 1\n}" {
		t.Errorf("unexpected pretty output %q, %v", pretty, err)
	}
}
