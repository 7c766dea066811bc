package domain

import (
	"errors"
	"testing"
)

func TestValidateDeckName(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain name", input: "Spanish"},
		{name: "empty", input: "", wantErr: true},
		{name: "only spaces", input: "   \t", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDeckName(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("Expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCardText(t *testing.T) {
	testCases := []struct {
		name    string
		front   string
		back    string
		wantErr bool
	}{
		{name: "both sides", front: "hola", back: "hello"},
		{name: "front only", front: "hola"},
		{name: "back only", back: "hello"},
		{name: "both empty", wantErr: true},
		{name: "both blank", front: " ", back: "\n", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCardText(tc.front, tc.back)
			if tc.wantErr != (err != nil) {
				t.Fatalf("ValidateCardText(%q, %q) error = %v, wantErr %v", tc.front, tc.back, err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestNotFoundKinds(t *testing.T) {
	if !errors.Is(ErrDeckNotFound, ErrNotFound) {
		t.Error("Expected ErrDeckNotFound to match ErrNotFound")
	}
	if !errors.Is(ErrCardNotFound, ErrNotFound) {
		t.Error("Expected ErrCardNotFound to match ErrNotFound")
	}
	if errors.Is(ErrDeckNotFound, ErrCardNotFound) {
		t.Error("Deck and card not-found errors should be distinct")
	}
}
