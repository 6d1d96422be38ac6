package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pollapi/internal/auth"
	"pollapi/internal/model"
	"pollapi/internal/repository"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AccountService defines the use cases for registration and sessions.
type AccountService interface {
	// Register creates a new account with a bcrypt-hashed password.
	Register(ctx context.Context, in RegisterInput) (*model.Account, error)

	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)

	// Refresh exchanges a valid refresh token for a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)

	// Get returns a single account by its ID.
	Get(ctx context.Context, id string) (*model.Account, error)
}

type accountService struct {
	repo       repository.AccountRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAccountService constructs a new AccountService.
func NewAccountService(repo repository.AccountRepository, tokens *auth.TokenManager, bcryptCost int) AccountService {
	return &accountService{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &model.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, acc)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return stored, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	acc, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Hash anyway so missing accounts cost the same as wrong passwords.
			_ = auth.CheckPassword("$2a$10$000000000000000000000uGZRXTEnOYyX2QA2QIqC6uBGBBJqsy3W", password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(acc.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.IssuePair(acc.ID)
}

func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	accountID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	// The account must still exist; tokens may outlive deletions.
	if _, err := s.repo.FindByID(ctx, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return s.tokens.IssuePair(accountID)
}

func (s *accountService) Get(ctx context.Context, id string) (*model.Account, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	acc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return acc, nil
}
