package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
)

type SpaceHandler struct {
	spaceRepo repositories.SpaceRepository
}

func NewSpaceHandler(spaceRepo repositories.SpaceRepository) *SpaceHandler {
	return &SpaceHandler{
		spaceRepo: spaceRepo,
	}
}

// HandleCreate handles POST /spaces
func (h *SpaceHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateSpaceRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := req.Validate(); err != nil {
		return validationError(c, err)
	}

	space := &models.Space{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.spaceRepo.Create(space); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create space",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(space)
}

// HandleGet handles GET /spaces/:id
func (h *SpaceHandler) HandleGet(c *fiber.Ctx) error {
	spaceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid space ID format",
		})
	}

	space, err := h.spaceRepo.FindByID(spaceID)
	if err != nil {
		return lookupError(c, err, "Space")
	}

	return c.JSON(space)
}
