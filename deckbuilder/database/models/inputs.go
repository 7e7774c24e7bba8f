package models

// CreateDeckInput is the client payload for deck creation.
type CreateDeckInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CreatedBy   string          `json:"createdBy"`
	Cards       []DeckCardInput `json:"cards"`
}

type DeckCardInput struct {
	CardID   string `json:"cardId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type CreateUserInput struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Decks     []string `json:"decks,omitempty"`
}

type CredentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
