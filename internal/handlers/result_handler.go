package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
)

type ResultHandler struct {
	proposalRepo repositories.ProposalRepository
}

func NewResultHandler(proposalRepo repositories.ProposalRepository) *ResultHandler {
	return &ResultHandler{
		proposalRepo: proposalRepo,
	}
}

// HandleGetResult handles GET /proposals/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	proposalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid proposal ID format",
		})
	}

	proposal, err := h.proposalRepo.FindByID(proposalID)
	if err != nil {
		return lookupError(c, err, "Proposal")
	}

	response := models.ProposalResultResponse{
		ID:         proposal.ID.String(),
		SpaceID:    proposal.SpaceID.String(),
		VendorName: proposal.VendorName,
		Status:     string(proposal.Status),
		Comparison: proposal.Comparison,
	}

	if proposal.Status == models.StatusCompleted {
		response.Analysis = proposal.Analysis
	}

	if proposal.Status == models.StatusFailed && proposal.ErrorMessage != nil {
		response.ErrorMessage = proposal.ErrorMessage
	}

	return c.JSON(response)
}
