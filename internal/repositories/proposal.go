package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	FindByID(id uuid.UUID) (*models.Proposal, error)
	FindCompletedBySpace(spaceID uuid.UUID) ([]models.Proposal, error)
	UpdateStatus(id uuid.UUID, status models.ProposalStatus) error
	UpdateAnalysis(id uuid.UUID, analysis *models.AnalysisResult) error
	UpdateComparison(id uuid.UUID, comparison *models.ComparisonResult) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Proposal, error)
}

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(proposal *models.Proposal) error {
	if err := r.db.Create(proposal).Error; err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

func (r *proposalRepository) FindByID(id uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := r.db.Where("id = ?", id).First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("proposal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find proposal: %w", err)
	}
	return &proposal, nil
}

// FindCompletedBySpace returns analyzed proposals of a space, oldest first.
// The order is the input order handed to the comparator.
func (r *proposalRepository) FindCompletedBySpace(spaceID uuid.UUID) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.
		Where("space_id = ? AND status = ?", spaceID, models.StatusCompleted).
		Order("created_at ASC").
		Find(&proposals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find proposals: %w", err)
	}
	return proposals, nil
}

func (r *proposalRepository) UpdateStatus(id uuid.UUID, status models.ProposalStatus) error {
	return r.update(id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}, "status")
}

func (r *proposalRepository) UpdateAnalysis(id uuid.UUID, analysis *models.AnalysisResult) error {
	// Updates with a map skips serializers, so go through the model.
	result := r.db.Model(&models.Proposal{ID: id}).
		Select("status", "analysis", "error_message", "updated_at").
		Updates(&models.Proposal{
			Status:    models.StatusCompleted,
			Analysis:  analysis,
			UpdatedAt: time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("proposal %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *proposalRepository) UpdateComparison(id uuid.UUID, comparison *models.ComparisonResult) error {
	result := r.db.Model(&models.Proposal{ID: id}).
		Select("comparison", "updated_at").
		Updates(&models.Proposal{
			Comparison: comparison,
			UpdatedAt:  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update comparison: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("proposal %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *proposalRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	}, "error")
}

func (r *proposalRepository) FindPendingJobs(limit int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&proposals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return proposals, nil
}

func (r *proposalRepository) update(id uuid.UUID, updates map[string]interface{}, what string) error {
	result := r.db.Model(&models.Proposal{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("proposal %s: %w", id, ErrNotFound)
	}

	return nil
}
