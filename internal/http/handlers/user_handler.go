package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influencer-marketplace/backend/internal/http/dto"
	"github.com/influencer-marketplace/backend/internal/middleware"
	"github.com/influencer-marketplace/backend/internal/models"
	"github.com/influencer-marketplace/backend/internal/services"
)

type UserHandler struct {
	profileService *services.ProfileService
	log            *zap.Logger
}

func NewUserHandler(profileService *services.ProfileService, log *zap.Logger) *UserHandler {
	return &UserHandler{profileService: profileService, log: log}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.profileService.Get(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	input := services.UpdateProfileInput{
		Name:  req.Name,
		Niche: req.Niche,
		Bio:   req.Bio,
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid category id", Field: "category_id"})
		}
		input.CategoryID = &id
	}
	for _, l := range req.SocialMediaLinks {
		input.Links = append(input.Links, models.SocialMediaLink{Platform: l.Platform, URL: l.URL})
	}

	profile, err := h.profileService.Update(c.Context(), middleware.GetActor(c), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}
