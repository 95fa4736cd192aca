package services_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/services"
	"github.com/vytor/flashycardy/internal/testutil/mocks"
)

type DeckServiceTestSuite struct {
	suite.Suite
	decks *mocks.MockDeckRepository
	cards *mocks.MockCardRepository
	svc   services.DeckService
	ctx   context.Context
}

func TestDeckServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DeckServiceTestSuite))
}

func (s *DeckServiceTestSuite) SetupTest() {
	s.decks = new(mocks.MockDeckRepository)
	s.cards = new(mocks.MockCardRepository)
	s.svc = services.NewDeckService(s.decks, s.cards)
	s.ctx = context.Background()
}

func (s *DeckServiceTestSuite) TearDownTest() {
	s.decks.AssertExpectations(s.T())
	s.cards.AssertExpectations(s.T())
}

func (s *DeckServiceTestSuite) TestListAndCount() {
	s.decks.On("ListByUser", s.ctx, "u1").Return([]models.Deck{{ID: 2}, {ID: 1}}, nil)
	s.decks.On("CountByUser", s.ctx, "u1").Return(2, nil)

	decks, err := s.svc.ListDecks(s.ctx, "u1")
	s.Require().NoError(err)
	s.Len(decks, 2)

	n, err := s.svc.CountDecks(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *DeckServiceTestSuite) TestListDecks_Error() {
	s.decks.On("ListByUser", s.ctx, "u1").Return(nil, stderrors.New("boom"))

	_, err := s.svc.ListDecks(s.ctx, "u1")
	s.True(errors.IsCode(err, errors.ErrCodeInternal))
}

func (s *DeckServiceTestSuite) TestGetDeckWithCards() {
	s.decks.On("GetForUser", s.ctx, int64(7), "u1").Return(&models.Deck{ID: 7, UserID: "u1", Name: "Go"}, nil)
	s.cards.On("ListByDeck", s.ctx, int64(7)).Return(nil, nil)

	deck, err := s.svc.GetDeckWithCards(s.ctx, "u1", 7)
	s.Require().NoError(err)
	s.Equal("Go", deck.Name)
	s.NotNil(deck.Cards)
	s.Empty(deck.Cards)
}

func (s *DeckServiceTestSuite) TestGetDeck_ForeignOrMissing() {
	s.decks.On("GetForUser", s.ctx, int64(7), "u2").Return(nil, nil)

	_, err := s.svc.GetDeckWithCards(s.ctx, "u2", 7)
	appErr, ok := errors.As(err)
	s.Require().True(ok)
	s.Equal(errors.ErrCodeNotFound, appErr.Code)
	s.Equal("Deck not found or access denied", appErr.Message)
}

func (s *DeckServiceTestSuite) TestCreateDeck_TrimsInput() {
	s.decks.On("Insert", s.ctx, models.Deck{UserID: "u1", Name: "Spanish", Description: "verbs"}).
		Return(&models.Deck{ID: 1, UserID: "u1", Name: "Spanish", Description: "verbs"}, nil)

	deck, err := s.svc.CreateDeck(s.ctx, "u1", services.DeckInput{Name: "  Spanish ", Description: " verbs "})
	s.Require().NoError(err)
	s.Equal(int64(1), deck.ID)
}

func (s *DeckServiceTestSuite) TestCreateDeck_Validation() {
	cases := []struct {
		name  string
		input services.DeckInput
		field string
	}{
		{"blank name", services.DeckInput{Name: "   "}, "name"},
		{"long name", services.DeckInput{Name: strings.Repeat("n", services.MaxDeckNameLength+1)}, "name"},
		{"long description", services.DeckInput{Name: "ok", Description: strings.Repeat("d", services.MaxDeckDescriptionLength+1)}, "description"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.svc.CreateDeck(s.ctx, "u1", tc.input)
			appErr, ok := errors.As(err)
			s.Require().True(ok)
			s.Equal(errors.ErrCodeValidation, appErr.Code)
			s.Equal(tc.field, appErr.Field)
		})
	}
}

func (s *DeckServiceTestSuite) TestCreateDeck_CountsCharactersNotBytes() {
	name := strings.Repeat("é", services.MaxDeckNameLength)
	s.decks.On("Insert", s.ctx, models.Deck{UserID: "u1", Name: name}).Return(&models.Deck{ID: 1}, nil)

	_, err := s.svc.CreateDeck(s.ctx, "u1", services.DeckInput{Name: name})
	s.NoError(err)
}

func (s *DeckServiceTestSuite) TestUpdateDeck() {
	s.decks.On("Update", s.ctx, models.Deck{ID: 3, UserID: "u1", Name: "Renamed"}).
		Return(&models.Deck{ID: 3, Name: "Renamed"}, nil)
	s.decks.On("Update", s.ctx, models.Deck{ID: 4, UserID: "u1", Name: "Renamed"}).
		Return(nil, nil)

	deck, err := s.svc.UpdateDeck(s.ctx, "u1", 3, services.DeckInput{Name: "Renamed"})
	s.Require().NoError(err)
	s.Equal("Renamed", deck.Name)

	_, err = s.svc.UpdateDeck(s.ctx, "u1", 4, services.DeckInput{Name: "Renamed"})
	s.True(errors.IsCode(err, errors.ErrCodeNotFound))
}

func (s *DeckServiceTestSuite) TestDeleteDeck() {
	s.decks.On("Delete", s.ctx, int64(3), "u1").Return(true, nil)
	s.decks.On("Delete", s.ctx, int64(4), "u1").Return(false, nil)

	s.NoError(s.svc.DeleteDeck(s.ctx, "u1", 3))
	s.True(errors.IsCode(s.svc.DeleteDeck(s.ctx, "u1", 4), errors.ErrCodeNotFound))
}
