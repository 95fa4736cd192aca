package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/repository"
	"github.com/vytor/flashycardy/internal/repository/sqlite"
	"github.com/vytor/flashycardy/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestCreateAndLookup() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, models.User{ID: "u_1", Email: "ada@example.com", Name: "Ada", PasswordHash: "hash"})
	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Assert().Equal("ada@example.com", created.Email)
	s.Assert().False(created.CreatedAt.IsZero())

	byID, err := s.repo.Get(ctx, "u_1")
	s.Require().NoError(err)
	s.Require().NotNil(byID)
	s.Assert().Equal("Ada", byID.Name)
	s.Assert().Equal("hash", byID.PasswordHash)

	byEmail, err := s.repo.GetByEmail(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(byEmail)
	s.Assert().Equal("u_1", byEmail.ID)
}

func (s *UserRepositorySuite) TestMissingUserIsNil() {
	u, err := s.repo.GetByEmail(context.Background(), "nobody@example.com")
	s.Require().NoError(err)
	s.Assert().Nil(u)
}

func (s *UserRepositorySuite) TestDuplicateEmailFails() {
	ctx := context.Background()
	_, err := s.repo.Create(ctx, models.User{ID: "u_1", Email: "dup@example.com", PasswordHash: "h"})
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, models.User{ID: "u_2", Email: "dup@example.com", PasswordHash: "h"})
	s.Assert().Error(err)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
