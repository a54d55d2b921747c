package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influencer-marketplace/backend/internal/http/dto"
	"github.com/influencer-marketplace/backend/internal/models"
	"github.com/influencer-marketplace/backend/internal/repositories"
)

// MetaHandler serves the predefined choice lists the frontend renders
// as dropdowns, plus the shared category list.
type MetaHandler struct {
	categoryRepo *repositories.CategoryRepo
	log          *zap.Logger
}

func NewMetaHandler(categoryRepo *repositories.CategoryRepo, log *zap.Logger) *MetaHandler {
	return &MetaHandler{categoryRepo: categoryRepo, log: log}
}

type MetaChoice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var predefinedPlatforms = []MetaChoice{
	{ID: models.PlatformFacebook, Label: "Facebook"},
	{ID: models.PlatformInstagram, Label: "Instagram"},
	{ID: models.PlatformTwitter, Label: "Twitter"},
	{ID: models.PlatformYouTube, Label: "YouTube"},
	{ID: models.PlatformLinkedIn, Label: "LinkedIn"},
	{ID: models.PlatformTikTok, Label: "TikTok"},
	{ID: models.PlatformOther, Label: "Other"},
}

var predefinedVisibilities = []MetaChoice{
	{ID: models.VisibilityPublic, Label: "Public"},
	{ID: models.VisibilityPrivate, Label: "Private"},
}

func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedPlatforms})
}

func (h *MetaHandler) GetVisibilities(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedVisibilities})
}

// GetCategories lists the admin-curated niche categories.
func (h *MetaHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: categories})
}
