package services

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/samber/lo"
	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/repository"
	"github.com/vytor/flashycardy/internal/study"
)

// StudyView is what the study page renders.
type StudyView struct {
	study.View
	Deck      models.Deck
	SessionID string
}

// StudyService runs study sessions over a user's deck.
type StudyService interface {
	Start(ctx context.Context, userID string, deckID int64) (string, error)
	View(ctx context.Context, userID string, deckID int64, sessionID string) (*StudyView, error)
	Apply(ctx context.Context, userID string, deckID int64, sessionID string, action study.Action) (*StudyView, error)
	End(ctx context.Context, userID string, sessionID string)
}

type studyService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	store    *study.Store
	opts     []study.Option
}

// NewStudyService creates a new StudyService keeping sessions in store.
func NewStudyService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository, store *study.Store, opts ...study.Option) StudyService {
	return &studyService{deckRepo: deckRepo, cardRepo: cardRepo, store: store, opts: opts}
}

func (s *studyService) deck(ctx context.Context, userID string, deckID int64) (*models.Deck, error) {
	deck, err := s.deckRepo.GetForUser(ctx, deckID, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, deckNotFound(deckID)
	}
	return deck, nil
}

func sessionError(err error) error {
	if stderrors.Is(err, study.ErrSessionNotFound) {
		return &errors.AppError{
			Code:    errors.ErrCodeNotFound,
			Message: "Study session expired",
			Status:  http.StatusNotFound,
			Err:     err,
		}
	}
	return errors.NewInternalError(err)
}

// Start builds a session over the deck's current cards. A deck without cards
// yields an error wrapping study.ErrEmptyDeck.
func (s *studyService) Start(ctx context.Context, userID string, deckID int64) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting study session: deck_id=%d, user_id=%s", deckID, userID)

	deck, err := s.deck(ctx, userID, deckID)
	if err != nil {
		return "", err
	}

	cards, err := s.cardRepo.ListByDeck(ctx, deck.ID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return "", errors.NewInternalError(err)
	}

	sess, err := study.NewSession(lo.Map(cards, func(c models.Card, _ int) study.Card {
		return study.Card{ID: c.ID, Front: c.Front, Back: c.Back}
	}), s.opts...)
	if stderrors.Is(err, study.ErrEmptyDeck) {
		return "", &errors.AppError{
			Code:    errors.ErrCodeBadRequest,
			Message: "This deck has no cards to study",
			Status:  http.StatusBadRequest,
			Err:     err,
		}
	}
	if err != nil {
		return "", errors.NewInternalError(err)
	}

	id, err := s.store.Create(userID, deck.ID, sess)
	if err != nil {
		log.Error("failed to register study session: %v", err)
		return "", errors.NewInternalError(err)
	}

	log.Info("study session started: id=%s, deck_id=%d, cards=%d", id, deck.ID, sess.Total())
	return id, nil
}

func (s *studyService) View(ctx context.Context, userID string, deckID int64, sessionID string) (*StudyView, error) {
	deck, err := s.deck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	view, err := s.store.View(sessionID, userID, deckID)
	if err != nil {
		return nil, sessionError(err)
	}
	return &StudyView{View: view, Deck: *deck, SessionID: sessionID}, nil
}

func (s *studyService) Apply(ctx context.Context, userID string, deckID int64, sessionID string, action study.Action) (*StudyView, error) {
	log := logger.FromContext(ctx)
	log.Debug("study action: session=%s, action=%s", sessionID, action)

	deck, err := s.deck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	view, err := s.store.Apply(sessionID, userID, deckID, func(sess *study.Session) error {
		return sess.Apply(action)
	})
	if err != nil {
		if stderrors.Is(err, study.ErrUnknownAction) {
			return nil, errors.NewBadRequestError(err.Error())
		}
		return nil, sessionError(err)
	}
	return &StudyView{View: view, Deck: *deck, SessionID: sessionID}, nil
}

func (s *studyService) End(ctx context.Context, userID string, sessionID string) {
	if s.store.Delete(sessionID, userID) {
		logger.FromContext(ctx).Debug("study session ended: id=%s", sessionID)
	}
}
