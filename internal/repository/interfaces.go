package repository

import (
	"context"

	"github.com/vytor/flashycardy/internal/models"
)

// Lookups return nil (or false) with a nil error when the row does not exist
// or belongs to another user.

// UserRepository handles user account data access
type UserRepository interface {
	Create(ctx context.Context, user models.User) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// DeckRepository handles owner-scoped deck data access
type DeckRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Deck, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	GetForUser(ctx context.Context, id int64, userID string) (*models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) (*models.Deck, error)
	Update(ctx context.Context, deck models.Deck) (*models.Deck, error)
	Delete(ctx context.Context, id int64, userID string) (bool, error)
}

// CardRepository handles card data access. Owner checks go through the
// card's deck.
type CardRepository interface {
	ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error)
	GetForOwner(ctx context.Context, id int64, userID string) (*models.Card, error)
	Insert(ctx context.Context, card models.Card) (*models.Card, error)
	UpdateForOwner(ctx context.Context, card models.Card, userID string) (*models.Card, error)
	DeleteForOwner(ctx context.Context, id int64, userID string) (bool, error)
}
