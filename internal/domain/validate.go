package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type deckInput struct {
	Name string `validate:"required"`
}

type cardInput struct {
	Front string `validate:"required_without=Back"`
	Back  string `validate:"required_without=Front"`
}

// ValidateDeckName rejects blank deck names. The store itself accepts any name,
// so callers run this before AddDeck or RenameDeck.
func ValidateDeckName(name string) error {
	if err := validate.Struct(deckInput{Name: strings.TrimSpace(name)}); err != nil {
		return fmt.Errorf("%w: deck name must not be empty", ErrValidation)
	}
	return nil
}

// ValidateCardText rejects a card whose front and back are both blank.
func ValidateCardText(front, back string) error {
	in := cardInput{Front: strings.TrimSpace(front), Back: strings.TrimSpace(back)}
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: card needs a front or a back", ErrValidation)
	}
	return nil
}
