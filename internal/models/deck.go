package models

import "time"

type Deck struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckWithCards is a deck together with its cards, newest first.
type DeckWithCards struct {
	Deck
	Cards []Card `json:"cards"`
}
