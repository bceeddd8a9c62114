package language

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/giang1412/ecom/services/logging"
)

var (
	ErrLanguageAlreadyExists = errors.New("language already exists")
	ErrLanguageNotFound      = errors.New("language not found")
)

// Language is a catalog entry keyed by a caller-chosen code such as
// "en" or "vi".
type Language struct {
	ID          string `json:"id" gorm:"primaryKey;size:10"`
	Name        string `json:"name" gorm:"size:255;not null"`
	CreatedByID uint   `json:"created_by_id"`
	UpdatedByID uint   `json:"updated_by_id"`
}

type ListResult struct {
	Data       []Language `json:"data"`
	TotalItems int        `json:"total_items"`
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

func (s *Service) List() (*ListResult, error) {
	var languages []Language
	if err := s.db.Find(&languages).Error; err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return &ListResult{
		Data:       languages,
		TotalItems: len(languages),
	}, nil
}

func (s *Service) Create(createdByID uint, id, name string) (*Language, error) {
	language := Language{
		ID:          id,
		Name:        name,
		CreatedByID: createdByID,
	}
	if err := s.db.Create(&language).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLanguageAlreadyExists
		}
		return nil, fmt.Errorf("failed to create language: %w", err)
	}

	s.logger.Info("language created",
		zap.String("language_id", id),
		zap.Uint("created_by", createdByID))
	return &language, nil
}

func (s *Service) Get(id string) (*Language, error) {
	var language Language
	if err := s.db.First(&language, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to look up language: %w", err)
	}
	return &language, nil
}

func (s *Service) Update(updatedByID uint, id, name string) (*Language, error) {
	result := s.db.Model(&Language{}).Where("id = ?", id).Updates(map[string]any{
		"name":          name,
		"updated_by_id": updatedByID,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update language: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrLanguageNotFound
	}
	return s.Get(id)
}

// Delete removes the row permanently; the catalog keeps no tombstones.
func (s *Service) Delete(id string) error {
	result := s.db.Delete(&Language{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete language: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLanguageNotFound
	}

	s.logger.Info("language deleted", zap.String("language_id", id))
	return nil
}
