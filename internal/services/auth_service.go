package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"tradebinder/internal/auth"
	"tradebinder/internal/domain"
	"tradebinder/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users  *repos.UserRepo
	Secret string
}

// Login verifies credentials and issues an API token.
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	token, err := auth.GenerateToken(s.Secret, u.ID, u.Name)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// UserFromToken resolves the bearer token to a known user.
func (s *AuthService) UserFromToken(tokenStr string) (*domain.User, error) {
	claims, err := auth.ValidateToken(s.Secret, tokenStr)
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(claims.UserID)
}
