package services

import (
	"context"

	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/repository"
)

// DeckInput carries the create and edit deck forms.
type DeckInput struct {
	Name        string
	Description string
}

// DeckService handles deck-related business logic. Every method is scoped
// to the calling user.
type DeckService interface {
	ListDecks(ctx context.Context, userID string) ([]models.Deck, error)
	CountDecks(ctx context.Context, userID string) (int, error)
	GetDeck(ctx context.Context, userID string, deckID int64) (*models.Deck, error)
	GetDeckWithCards(ctx context.Context, userID string, deckID int64) (*models.DeckWithCards, error)
	CreateDeck(ctx context.Context, userID string, input DeckInput) (*models.Deck, error)
	UpdateDeck(ctx context.Context, userID string, deckID int64, input DeckInput) (*models.Deck, error)
	DeleteDeck(ctx context.Context, userID string, deckID int64) error
}

type deckService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository) DeckService {
	return &deckService{deckRepo: deckRepo, cardRepo: cardRepo}
}

// deckNotFound does not distinguish a missing deck from someone else's.
func deckNotFound(id int64) *errors.AppError {
	err := errors.NewNotFoundError("deck", id)
	err.Message = "Deck not found or access denied"
	return err
}

func (in DeckInput) validate() (DeckInput, error) {
	name, err := requiredText("name", in.Name, MaxDeckNameLength)
	if err != nil {
		return DeckInput{}, err
	}
	desc, err := optionalText("description", in.Description, MaxDeckDescriptionLength)
	if err != nil {
		return DeckInput{}, err
	}
	return DeckInput{Name: name, Description: desc}, nil
}

func (s *deckService) ListDecks(ctx context.Context, userID string) ([]models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks: user_id=%s", userID)

	decks, err := s.deckRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) CountDecks(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx)

	n, err := s.deckRepo.CountByUser(ctx, userID)
	if err != nil {
		log.Error("failed to count decks: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

func (s *deckService) GetDeck(ctx context.Context, userID string, deckID int64) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: id=%d, user_id=%s", deckID, userID)

	deck, err := s.deckRepo.GetForUser(ctx, deckID, userID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, deckNotFound(deckID)
	}
	return deck, nil
}

func (s *deckService) GetDeckWithCards(ctx context.Context, userID string, deckID int64) (*models.DeckWithCards, error) {
	log := logger.FromContext(ctx)

	deck, err := s.GetDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.ListByDeck(ctx, deck.ID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if cards == nil {
		cards = []models.Card{}
	}

	return &models.DeckWithCards{Deck: *deck, Cards: cards}, nil
}

func (s *deckService) CreateDeck(ctx context.Context, userID string, input DeckInput) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: user_id=%s", userID)

	input, err := input.validate()
	if err != nil {
		return nil, err
	}

	deck, err := s.deckRepo.Insert(ctx, models.Deck{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("deck created: id=%d", deck.ID)
	return deck, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, userID string, deckID int64, input DeckInput) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating deck: id=%d, user_id=%s", deckID, userID)

	input, err := input.validate()
	if err != nil {
		return nil, err
	}

	deck, err := s.deckRepo.Update(ctx, models.Deck{
		ID:          deckID,
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, deckNotFound(deckID)
	}
	return deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, userID string, deckID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d, user_id=%s", deckID, userID)

	deleted, err := s.deckRepo.Delete(ctx, deckID, userID)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return deckNotFound(deckID)
	}

	log.Info("deck deleted: id=%d", deckID)
	return nil
}
