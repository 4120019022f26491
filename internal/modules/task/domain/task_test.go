package domain

import (
	"errors"
	"testing"

	apperrors "timetrack/internal/platform/errors"
)

func TestParsePriority(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw  string
		want Priority
	}{
		{raw: "low", want: PriorityLow},
		{raw: "Medium", want: PriorityMedium},
		{raw: " HIGH ", want: PriorityHigh},
		{raw: "0", want: PriorityLow},
		{raw: "2", want: PriorityHigh},
	}
	for _, tc := range cases {
		got, err := ParsePriority(tc.raw)
		if err != nil {
			t.Fatalf("ParsePriority(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePriority(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, apperrors.ErrUnknownPriority) {
		t.Fatalf("expected unknown priority error, got %v", err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()
	if err := (Task{Name: "review", Priority: PriorityMedium}).Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}
	if err := (Task{Name: "  "}).Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
	if err := (Task{Name: "x", Priority: Priority(7)}).Validate(); !errors.Is(err, apperrors.ErrUnknownPriority) {
		t.Fatalf("expected unknown priority, got %v", err)
	}
	if got := Priority(7).String(); got != "Priority(7)" {
		t.Fatalf("unexpected string for out-of-range priority: %s", got)
	}
}
