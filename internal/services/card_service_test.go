package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/services"
	"github.com/vytor/flashycardy/internal/testutil/mocks"
)

type CardServiceTestSuite struct {
	suite.Suite
	decks *mocks.MockDeckRepository
	cards *mocks.MockCardRepository
	svc   services.CardService
	ctx   context.Context
}

func TestCardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CardServiceTestSuite))
}

func (s *CardServiceTestSuite) SetupTest() {
	s.decks = new(mocks.MockDeckRepository)
	s.cards = new(mocks.MockCardRepository)
	s.svc = services.NewCardService(s.decks, s.cards)
	s.ctx = context.Background()
}

func (s *CardServiceTestSuite) TearDownTest() {
	s.decks.AssertExpectations(s.T())
	s.cards.AssertExpectations(s.T())
}

func (s *CardServiceTestSuite) TestCreateCard() {
	s.decks.On("GetForUser", s.ctx, int64(5), "u1").Return(&models.Deck{ID: 5, UserID: "u1"}, nil)
	s.cards.On("Insert", s.ctx, models.Card{DeckID: 5, Front: "hola", Back: "hello"}).
		Return(&models.Card{ID: 9, DeckID: 5, Front: "hola", Back: "hello"}, nil)

	card, err := s.svc.CreateCard(s.ctx, "u1", 5, services.CardInput{Front: " hola ", Back: "hello\n"})
	s.Require().NoError(err)
	s.Equal(int64(9), card.ID)
}

func (s *CardServiceTestSuite) TestCreateCard_ForeignDeck() {
	s.decks.On("GetForUser", s.ctx, int64(5), "u2").Return(nil, nil)

	_, err := s.svc.CreateCard(s.ctx, "u2", 5, services.CardInput{Front: "a", Back: "b"})
	s.True(errors.IsCode(err, errors.ErrCodeNotFound))
}

func (s *CardServiceTestSuite) TestCreateCard_Validation() {
	cases := []struct {
		name  string
		input services.CardInput
		field string
	}{
		{"blank front", services.CardInput{Front: " ", Back: "b"}, "front"},
		{"blank back", services.CardInput{Front: "a", Back: ""}, "back"},
		{"long front", services.CardInput{Front: strings.Repeat("f", services.MaxCardSideLength+1), Back: "b"}, "front"},
		{"long back", services.CardInput{Front: "a", Back: strings.Repeat("b", services.MaxCardSideLength+1)}, "back"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.svc.CreateCard(s.ctx, "u1", 5, tc.input)
			appErr, ok := errors.As(err)
			s.Require().True(ok)
			s.Equal(errors.ErrCodeValidation, appErr.Code)
			s.Equal(tc.field, appErr.Field)
		})
	}
}

func (s *CardServiceTestSuite) TestUpdateCard() {
	s.cards.On("GetForOwner", s.ctx, int64(9), "u1").Return(&models.Card{ID: 9, DeckID: 5}, nil)
	s.cards.On("UpdateForOwner", s.ctx, models.Card{ID: 9, DeckID: 5, Front: "new", Back: "side"}, "u1").
		Return(&models.Card{ID: 9, DeckID: 5, Front: "new", Back: "side"}, nil)

	card, err := s.svc.UpdateCard(s.ctx, "u1", 5, 9, services.CardInput{Front: "new", Back: "side"})
	s.Require().NoError(err)
	s.Equal("new", card.Front)
}

func (s *CardServiceTestSuite) TestUpdateCard_WrongDeck() {
	s.cards.On("GetForOwner", s.ctx, int64(9), "u1").Return(&models.Card{ID: 9, DeckID: 6}, nil)

	_, err := s.svc.UpdateCard(s.ctx, "u1", 5, 9, services.CardInput{Front: "new", Back: "side"})
	s.True(errors.IsCode(err, errors.ErrCodeNotFound))
}

func (s *CardServiceTestSuite) TestDeleteCard() {
	s.cards.On("GetForOwner", s.ctx, int64(9), "u1").Return(&models.Card{ID: 9, DeckID: 5}, nil)
	s.cards.On("DeleteForOwner", s.ctx, int64(9), "u1").Return(true, nil)
	s.cards.On("GetForOwner", s.ctx, int64(10), "u1").Return(nil, nil)

	s.NoError(s.svc.DeleteCard(s.ctx, "u1", 5, 9))
	s.True(errors.IsCode(s.svc.DeleteCard(s.ctx, "u1", 5, 10), errors.ErrCodeNotFound))
}
