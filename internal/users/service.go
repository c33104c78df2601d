package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-match/internal/shared/auth"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLen = 8

type Service struct {
	Repo   Repo
	Signer *auth.Signer
}

func NewService(repo Repo, signer *auth.Signer) *Service {
	return &Service{Repo: repo, Signer: signer}
}

type RegisterInput struct {
	Email    string
	Username string
	FullName string
	Password string
}

// Register creates a user with a bcrypt password hash and returns it with a session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	if s == nil || s.Repo == nil || s.Signer == nil {
		return User{}, "", errors.New("users service not configured")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, "", fmt.Errorf("invalid email: %w", err)
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return User{}, "", errors.New("username is required")
	}
	if len(in.Password) < minPasswordLen {
		return User{}, "", fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := s.Signer.Sign(user.ID, user.Email, user.Username)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies the password and returns the user with a fresh session token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	if s == nil || s.Repo == nil || s.Signer == nil {
		return User{}, "", errors.New("users service not configured")
	}
	user, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}
	token, err := s.Signer.Sign(user.ID, user.Email, user.Username)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}
