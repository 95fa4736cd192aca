package services

import (
	"context"

	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/repository"
)

// CardInput carries the add and edit card forms.
type CardInput struct {
	Front string
	Back  string
}

// CardService handles card-related business logic. A card is reachable only
// through a deck owned by the caller.
type CardService interface {
	CreateCard(ctx context.Context, userID string, deckID int64, input CardInput) (*models.Card, error)
	UpdateCard(ctx context.Context, userID string, deckID, cardID int64, input CardInput) (*models.Card, error)
	DeleteCard(ctx context.Context, userID string, deckID, cardID int64) error
}

type cardService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
}

// NewCardService creates a new CardService
func NewCardService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository) CardService {
	return &cardService{deckRepo: deckRepo, cardRepo: cardRepo}
}

func (in CardInput) validate() (CardInput, error) {
	front, err := requiredText("front", in.Front, MaxCardSideLength)
	if err != nil {
		return CardInput{}, err
	}
	back, err := requiredText("back", in.Back, MaxCardSideLength)
	if err != nil {
		return CardInput{}, err
	}
	return CardInput{Front: front, Back: back}, nil
}

func cardNotFound(id int64) *errors.AppError {
	err := errors.NewNotFoundError("card", id)
	err.Message = "Card not found or access denied"
	return err
}

// ownedCard loads the card and checks it sits in deckID.
func (s *cardService) ownedCard(ctx context.Context, userID string, deckID, cardID int64) (*models.Card, error) {
	card, err := s.cardRepo.GetForOwner(ctx, cardID, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil || card.DeckID != deckID {
		return nil, cardNotFound(cardID)
	}
	return card, nil
}

func (s *cardService) CreateCard(ctx context.Context, userID string, deckID int64, input CardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: deck_id=%d, user_id=%s", deckID, userID)

	input, err := input.validate()
	if err != nil {
		return nil, err
	}

	deck, err := s.deckRepo.GetForUser(ctx, deckID, userID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, deckNotFound(deckID)
	}

	card, err := s.cardRepo.Insert(ctx, models.Card{
		DeckID: deck.ID,
		Front:  input.Front,
		Back:   input.Back,
	})
	if err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, userID string, deckID, cardID int64, input CardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d, deck_id=%d", cardID, deckID)

	input, err := input.validate()
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedCard(ctx, userID, deckID, cardID); err != nil {
		return nil, err
	}

	card, err := s.cardRepo.UpdateForOwner(ctx, models.Card{
		ID:     cardID,
		DeckID: deckID,
		Front:  input.Front,
		Back:   input.Back,
	}, userID)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, cardNotFound(cardID)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, userID string, deckID, cardID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d, deck_id=%d", cardID, deckID)

	if _, err := s.ownedCard(ctx, userID, deckID, cardID); err != nil {
		return err
	}

	deleted, err := s.cardRepo.DeleteForOwner(ctx, cardID, userID)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return cardNotFound(cardID)
	}
	return nil
}
