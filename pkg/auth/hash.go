package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=hash.go -destination=mock_hash.go -package=auth

var ErrEmptyPassword = errors.New("password cannot be empty")

type HashServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) bool
}

// HashService stores trader passwords as bcrypt hashes.
type HashService struct {
	cost int
}

// NewHashService falls back to bcrypt.DefaultCost when cost is below
// bcrypt.MinCost, zero included.
func NewHashService(cost int) *HashService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &HashService{cost: cost}
}

// HashPassword fails for passwords longer than 72 bytes; bcrypt would
// otherwise ignore the tail.
func (s *HashService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *HashService) ComparePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
