package profile

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/giang1412/ecom/services/auth"
	"github.com/giang1412/ecom/services/logging"
)

var ErrUserNotFound = errors.New("user not found")

type UpdateRequest struct {
	Name        string
	PhoneNumber string
}

type Service struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewService(db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// Me returns the user's own profile with secret fields stripped.
func (s *Service) Me(userID uint) (*auth.User, error) {
	var user auth.User
	if err := s.db.Preload("Role").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user.Password = ""
	user.TOTPSecret = ""
	return &user, nil
}

func (s *Service) Update(userID uint, req UpdateRequest) (*auth.User, error) {
	result := s.db.Model(&auth.User{}).Where("id = ?", userID).Updates(map[string]any{
		"name":         req.Name,
		"phone_number": req.PhoneNumber,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return s.Me(userID)
}
