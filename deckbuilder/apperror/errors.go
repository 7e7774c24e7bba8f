// Package apperror defines the domain failures surfaced to API clients.
// Each carries a machine-readable code and the HTTP status it maps to at the
// boundary; anything not constructed here is treated as an internal error.
package apperror

import (
	"fmt"
	"net/http"
)

// Error codes. These are part of the client contract.
const (
	CodeCardNotFound                 = "card_not_found"
	CodeDeckNotFound                 = "deck_not_found"
	CodeUserAlreadyExists            = "user_already_exists"
	CodeInvalidCredentials           = "invalid_credentials"
	CodeImportFileNotFound           = "import_file_not_found"
	CodeCardsAlreadyImported         = "cards_already_imported"
	CodeNoQuantityForDeckCard        = "no_quantity_for_deck_card"
	CodeMinimumNumberOfCardsInDeck   = "minimum_number_of_cards_in_deck"
	CodeNumberOfCardsExceedingAmount = "number_of_cards_exceeding_amount"
)

// KnownError is a typed domain failure. It is never retried internally and
// always propagated to the caller.
type KnownError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *KnownError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *KnownError) Unwrap() error {
	return e.Err
}

func CardNotFoundByID(cardID string) *KnownError {
	return &KnownError{
		Code:    CodeCardNotFound,
		Message: fmt.Sprintf("Card not found (%s).", cardID),
		Status:  http.StatusNotFound,
	}
}

func CardNotFoundBySetAndCode(setCode, code string) *KnownError {
	return &KnownError{
		Code:    CodeCardNotFound,
		Message: fmt.Sprintf("Card not found (%s, %s).", setCode, code),
		Status:  http.StatusNotFound,
	}
}

func DeckNotFound(deckID string) *KnownError {
	return &KnownError{
		Code:    CodeDeckNotFound,
		Message: fmt.Sprintf("Deck not found (%s).", deckID),
		Status:  http.StatusNotFound,
	}
}

func UserAlreadyExists(email string) *KnownError {
	return &KnownError{
		Code:    CodeUserAlreadyExists,
		Message: fmt.Sprintf("User already exists (%s).", email),
		Status:  http.StatusConflict,
	}
}

func InvalidCredentials() *KnownError {
	return &KnownError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid credentials.",
		Status:  http.StatusBadRequest,
	}
}

func ImportFileNotFound(path string, err error) *KnownError {
	return &KnownError{
		Code:    CodeImportFileNotFound,
		Message: fmt.Sprintf("File not found on path %q.", path),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func CardsAlreadyImported() *KnownError {
	return &KnownError{
		Code:    CodeCardsAlreadyImported,
		Message: "Cards were already imported.",
		Status:  http.StatusBadRequest,
	}
}

func MinimumNumberOfCardsInDeck(minimumNumberOfCards int) *KnownError {
	return &KnownError{
		Code:    CodeMinimumNumberOfCardsInDeck,
		Message: fmt.Sprintf("Your deck should contain at least %d cards.", minimumNumberOfCards),
		Status:  http.StatusUnprocessableEntity,
	}
}

func NoQuantityForDeckCard(cardID string) *KnownError {
	return &KnownError{
		Code:    CodeNoQuantityForDeckCard,
		Message: fmt.Sprintf("You must specify a quantity of cards for %s.", cardID),
		Status:  http.StatusUnprocessableEntity,
	}
}

func NumberOfCardsExceedingAmount(numberOfCards, maximumAmount int) *KnownError {
	return &KnownError{
		Code:    CodeNumberOfCardsExceedingAmount,
		Message: fmt.Sprintf("There are %d card(s) exceeding the maximum amount of %d copies.", numberOfCards, maximumAmount),
		Status:  http.StatusUnprocessableEntity,
	}
}
