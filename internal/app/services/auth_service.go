package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/auth"
	"github.com/yigit/clubhub/internal/pkg/helpers"
	"github.com/yigit/clubhub/internal/pkg/normalize"
)

// AuthService handles account registration and sign-in
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
	hash       func(string) (string, error)
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
		hash:       auth.HashPassword,
		now:        helpers.NowUTC,
	}
}

// WithPasswordHasher swaps the hashing function; tests use a cheap bcrypt cost
func (s *AuthService) WithPasswordHasher(hash func(string) (string, error)) *AuthService {
	s.hash = hash
	return s
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters long")
	}

	hasLetter, hasDigit := false, false
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewValidationError("password must contain at least one letter and one digit")
	}

	return nil
}

// Signup registers a new account
func (s *AuthService) Signup(ctx context.Context, cmd models.SignupCommand) (*models.User, error) {
	email := normalize.Email(cmd.Email)
	name := normalize.Name(cmd.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name must contain text")
	}
	if !cmd.Role.Valid() {
		return nil, apperrors.NewValidationError("role must be student or admin")
	}
	if err := s.validatePassword(cmd.Password); err != nil {
		return nil, err
	}

	hashed, err := s.hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  hashed,
		Role:      cmd.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			s.logger.Warn().Str("email", email).Msg("Signup with an existing email")
		}
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Signin checks credentials and issues an access token
func (s *AuthService) Signin(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalize.Email(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		s.logger.Warn().Str("userID", user.ID).Msg("Failed sign-in attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(auth.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Msg("User signed in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        dto.NewUserResponse(user),
	}, nil
}

// Me returns the account of the caller
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
