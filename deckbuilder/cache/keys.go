package cache

import "fmt"

// Cache key taxonomy. Invalidation call sites depend on these literal
// prefixes (for example, wiping imported cards invalidates everything under
// "card"), so the strings must not drift.
const (
	KeyDecksList  = "decks_list"
	KeyUsersList  = "users_list"
	KeyCountCards = "cards_count"
)

func KeyDeckByID(deckID string) string {
	return fmt.Sprintf("deck_byId_%s", deckID)
}

func KeyCardByID(cardID string) string {
	return fmt.Sprintf("card_byId_%s", cardID)
}

func KeyUserByID(userID string) string {
	return fmt.Sprintf("user_byId_%s", userID)
}

func KeyUserByEmail(email string) string {
	return fmt.Sprintf("user_byEmail_%s", email)
}

func KeyCardsBySet(setCode string) string {
	return fmt.Sprintf("cards_bySet_%s", setCode)
}

func KeyCardsSearchByQuery(query string) string {
	return fmt.Sprintf("cards_searchByQuery_%s", query)
}

func KeyCardBySetAndCode(setCode, code string) string {
	return fmt.Sprintf("card_bySetAndCode_%s_%s", setCode, code)
}
