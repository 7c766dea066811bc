package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when caller input is rejected before it reaches the store.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation references a deck or card that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReferential is returned when a card is inserted against a deck that does not exist.
	ErrReferential = errors.New("referenced deck does not exist")

	// ErrFormat is returned when an import source is not in the expected shape.
	ErrFormat = errors.New("invalid format")

	// ErrIO is returned when a file or the database cannot be accessed.
	ErrIO = errors.New("i/o failure")

	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)
)
