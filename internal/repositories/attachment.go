package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

type AttachmentRepository interface {
	Create(attachment *models.Attachment) error
	FindByProposalID(proposalID uuid.UUID) ([]models.Attachment, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

// Create implements AttachmentRepository.
func (a *attachmentRepository) Create(attachment *models.Attachment) error {
	if err := a.db.Create(attachment).Error; err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	return nil
}

// FindByProposalID implements AttachmentRepository.
func (a *attachmentRepository) FindByProposalID(proposalID uuid.UUID) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := a.db.Where("proposal_id = ?", proposalID).Order("created_at ASC").Find(&attachments).Error; err != nil {
		return nil, fmt.Errorf("failed to find attachments: %w", err)
	}

	return attachments, nil
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}
