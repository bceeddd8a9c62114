package hashing

import (
	"errors"

	"github.com/giang1412/ecom/config"
	"github.com/giang1412/ecom/services/logging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed    = errors.New("failed to hash password")
	ErrPasswordMismatch = errors.New("password does not match hash")
)

// Service is a one-way password hashing boundary over bcrypt.
type Service struct {
	cost   int
	logger *logging.Service
}

func NewService(cfg *config.Config, logger *logging.Service) *Service {
	cost := cfg.Auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		cost:   cost,
		logger: logger,
	}
}

func (s *Service) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return "", ErrHashingFailed
	}
	return string(hash), nil
}

func (s *Service) Compare(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		s.logger.Debug("password comparison failed", zap.Error(err))
		return ErrPasswordMismatch
	}
	return nil
}
