package services

import (
	"context"
	stderrors "errors"
	"net/mail"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vytor/flashycardy/internal/auth"
	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/repository"
)

const invalidCredentials = "invalid email or password"

// SignUpInput carries the sign-up form.
type SignUpInput struct {
	Email    string
	Name     string
	Password string
}

// AuthService handles account creation and credential checks
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	newID      func() (string, error)
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		newID:      func() (string, error) { return gonanoid.New() },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(input.Email)
	log.Debug("signing up: email=%s", email)

	if email == "" {
		return nil, errors.NewValidationError("email", "is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, errors.NewValidationError("email", "is not a valid address")
	}
	name, err := optionalText("name", input.Name, MaxUserNameLength)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < MinPasswordLength {
		return nil, errors.NewValidationError("password", "must be at least 8 characters")
	}
	if len(input.Password) > MaxPasswordLength {
		return nil, errors.NewValidationError("password", "must be at most 72 bytes")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up email: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewValidationError("email", "is already registered")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, errors.NewInternalError(err)
	}
	id, err := s.newID()
	if err != nil {
		log.Error("failed to generate user id: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user, err := s.userRepo.Create(ctx, models.User{
		ID:           "user_" + id,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("user signed up: id=%s", user.ID)
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	log.Debug("signing in: email=%s", email)

	if email == "" || password == "" {
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up email: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if stderrors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("password mismatch: user_id=%s", user.ID)
			return nil, errors.NewUnauthorizedError(invalidCredentials)
		}
		log.Error("failed to compare password: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%s", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}
