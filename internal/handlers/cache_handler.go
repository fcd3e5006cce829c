package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

type CacheHandler struct {
	cache services.ResponseCache
}

func NewCacheHandler(cache services.ResponseCache) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// HandleStats handles GET /cache
func (h *CacheHandler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.cache.Stats())
}

// HandleClear handles DELETE /cache
func (h *CacheHandler) HandleClear(c *fiber.Ctx) error {
	h.cache.Clear()
	return c.JSON(fiber.Map{
		"message": "Cache cleared",
	})
}
