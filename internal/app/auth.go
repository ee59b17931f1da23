package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"middlebro/internal/domain"
)

// AuthService registers business operators and exchanges their credentials
// for bearer tokens.
type AuthService struct {
	accounts domain.AccountRepository
	tokens   domain.TokenManager
	cost     int
}

func NewAuthService(accounts domain.AccountRepository, tokens domain.TokenManager) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.cost = cost
	return s
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.accounts.CreateUser(ctx, email, string(hash), name)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Login returns a signed bearer token. Unknown email and wrong password are
// reported as the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.accounts.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID, user.Email)
}

// Profile is the authenticated view of a business account: never the hash.
type Profile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (Profile, error) {
	user, err := s.accounts.GetUserByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}
