package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

type SpaceRepository interface {
	Create(space *models.Space) error
	FindByID(id uuid.UUID) (*models.Space, error)
}

type spaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) SpaceRepository {
	return &spaceRepository{db: db}
}

// Create implements SpaceRepository.
func (r *spaceRepository) Create(space *models.Space) error {
	if err := r.db.Create(space).Error; err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}
	return nil
}

// FindByID implements SpaceRepository.
func (r *spaceRepository) FindByID(id uuid.UUID) (*models.Space, error) {
	var space models.Space
	if err := r.db.Where("id = ?", id).First(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("space %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find space: %w", err)
	}
	return &space, nil
}
