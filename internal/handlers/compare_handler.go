package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

type CompareHandler struct {
	proposalService services.ProposalService
}

func NewCompareHandler(proposalService services.ProposalService) *CompareHandler {
	return &CompareHandler{
		proposalService: proposalService,
	}
}

// HandleCompare handles POST /spaces/:id/compare
func (h *CompareHandler) HandleCompare(c *fiber.Ctx) error {
	spaceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid space ID format",
		})
	}

	entries, err := h.proposalService.CompareSpace(c.UserContext(), spaceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Space not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compare proposals",
		})
	}

	return c.JSON(models.CompareResponse{
		SpaceID:     spaceID.String(),
		Comparisons: entries,
	})
}
