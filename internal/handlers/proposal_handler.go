package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

type ProposalHandler struct {
	spaceRepo      repositories.SpaceRepository
	proposalRepo   repositories.ProposalRepository
	attachmentRepo repositories.AttachmentRepository
	storageService services.StorageService
	worker         services.Worker
}

func NewProposalHandler(
	spaceRepo repositories.SpaceRepository,
	proposalRepo repositories.ProposalRepository,
	attachmentRepo repositories.AttachmentRepository,
	storageService services.StorageService,
	worker services.Worker,
) *ProposalHandler {
	return &ProposalHandler{
		spaceRepo:      spaceRepo,
		proposalRepo:   proposalRepo,
		attachmentRepo: attachmentRepo,
		storageService: storageService,
		worker:         worker,
	}
}

// HandleSubmit handles POST /spaces/:id/proposals
func (h *ProposalHandler) HandleSubmit(c *fiber.Ctx) error {
	spaceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid space ID format",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	var req models.SubmitProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	files := form.File["attachments"]
	req.HasAttachments = len(files) > 0

	if err := req.Validate(); err != nil {
		return validationError(c, err)
	}

	if _, err := h.spaceRepo.FindByID(spaceID); err != nil {
		return lookupError(c, err, "Space")
	}

	bodyFormat := models.BodyFormatText
	if req.BodyFormat != "" {
		bodyFormat = models.BodyFormat(req.BodyFormat)
	}

	proposal := &models.Proposal{
		ID:            uuid.New(),
		SpaceID:       spaceID,
		VendorName:    req.VendorName,
		VendorEmail:   req.VendorEmail,
		VendorCompany: req.VendorCompany,
		Body:          req.Body,
		BodyFormat:    bodyFormat,
		Status:        models.StatusQueued,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.proposalRepo.Create(proposal); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create proposal",
		})
	}

	attachments := make([]models.AttachmentResponse, 0, len(files))
	for _, file := range files {
		filename, filePath, err := h.storageService.SaveAttachment(file, proposal.ID)
		if err != nil {
			status := fiber.StatusInternalServerError
			if errors.Is(err, services.ErrUnsupportedAttachment) {
				status = fiber.StatusBadRequest
			}
			h.recordFailure(proposal.ID, err)
			return c.Status(status).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save attachment %s: %v", file.Filename, err),
			})
		}

		attachment := models.Attachment{
			ID:               uuid.New(),
			ProposalID:       proposal.ID,
			Filename:         filename,
			OriginalFileName: file.Filename,
			FilePath:         filePath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := h.attachmentRepo.Create(&attachment); err != nil {
			// Cleanup uploaded file if database insert fails
			h.storageService.DeleteFile(filename)
			h.recordFailure(proposal.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save attachment record",
			})
		}

		attachments = append(attachments, models.AttachmentResponse{
			ID:           attachment.ID.String(),
			Filename:     attachment.Filename,
			OriginalName: attachment.OriginalFileName,
		})
	}

	h.worker.EnqueueJob(proposal.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.SubmitProposalResponse{
		ID:          proposal.ID.String(),
		Status:      string(models.StatusQueued),
		Attachments: attachments,
	})
}

func (h *ProposalHandler) recordFailure(id uuid.UUID, cause error) {
	if err := h.proposalRepo.UpdateError(id, cause.Error()); err != nil {
		log.Printf("⚠️  Failed to record error for proposal %s: %v\n", id, err)
	}
}
