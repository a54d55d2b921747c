package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influencer-marketplace/backend/internal/config"
	"github.com/influencer-marketplace/backend/internal/http/dto"
	"github.com/influencer-marketplace/backend/internal/middleware"
	"github.com/influencer-marketplace/backend/internal/repositories"
	"github.com/influencer-marketplace/backend/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
	cfg          *config.Config
	log          *zap.Logger
}

func NewAdminHandler(adminService *services.AdminService, cfg *config.Config, log *zap.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, cfg: cfg, log: log}
}

// ---- Users ----

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filter := repositories.UserFilter{Search: c.Query("search")}
	if role := c.Query("role"); role != "" {
		filter.Role = &role
	}
	parseListQuery(c, &filter.Limit, &filter.Offset)

	users, err := h.adminService.ListUsers(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: users})
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	user, err := h.adminService.GetUser(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	var req dto.AdminUserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.adminService.UpdateUser(c.Context(), middleware.GetActor(c), id, services.AdminUserUpdate{
		Username:  req.Username,
		Email:     req.Email,
		Role:      req.Role,
		IsActive:  req.IsActive,
		IsFlagged: req.IsFlagged,
		Notes:     req.Notes,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	if err := h.adminService.DeleteUser(c.Context(), middleware.GetActor(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// ToggleFlag flips the moderation flag on a user.
func (h *AdminHandler) ToggleFlag(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	flagged, err := h.adminService.ToggleFlag(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{"is_flagged": flagged}})
}

func (h *AdminHandler) ListFlaggedUsers(c *fiber.Ctx) error {
	filter := repositories.UserFilter{}
	parseListQuery(c, &filter.Limit, &filter.Offset)

	users, err := h.adminService.FlaggedUsers(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: users})
}

// ---- Categories ----

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	category, err := h.adminService.CreateCategory(c.Context(), middleware.GetActor(c), req.Name)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: category})
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid category id"})
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	category, err := h.adminService.UpdateCategory(c.Context(), middleware.GetActor(c), id, req.Name)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: category})
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid category id"})
	}

	if err := h.adminService.DeleteCategory(c.Context(), middleware.GetActor(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// ---- Oversight ----

func (h *AdminHandler) ListMessages(c *fiber.Ctx) error {
	var limit, offset int
	parseListQuery(c, &limit, &offset)

	messages, err := h.adminService.ListMessages(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: messages})
}

func (h *AdminHandler) ListAdRequests(c *fiber.Ctx) error {
	filter := repositories.AdRequestFilter{}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if v := c.Query("campaign_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CampaignID = &id
		}
	}
	if v := c.Query("influencer_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.InfluencerID = &id
		}
	}
	parseListQuery(c, &filter.Limit, &filter.Offset)

	requests, err := h.adminService.ListAdRequests(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: requests})
}

// UpdateAdRequest is the moderation edit of negotiation terms.
func (h *AdminHandler) UpdateAdRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad request id"})
	}

	var req dto.EditAdRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	adRequest, err := h.adminService.UpdateAdRequestTerms(c.Context(), middleware.GetActor(c), id, req.Requirements, req.PaymentAmount)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: adRequest})
}

func (h *AdminHandler) DeleteAdRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad request id"})
	}

	if err := h.adminService.DeleteAdRequest(c.Context(), middleware.GetActor(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	summary, err := h.adminService.Analytics(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: summary})
}

// GetSettings exposes the site display settings. Read-only for now.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.SettingsResponse{SiteName: h.cfg.SiteName}})
}
