package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influencer-marketplace/backend/internal/http/dto"
	"github.com/influencer-marketplace/backend/internal/middleware"
	"github.com/influencer-marketplace/backend/internal/models"
	"github.com/influencer-marketplace/backend/internal/repositories"
	"github.com/influencer-marketplace/backend/internal/services"
)

const dateLayout = "2006-01-02"

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

// campaignFromRequest parses the payload; dates travel as YYYY-MM-DD.
func campaignFromRequest(c *fiber.Ctx, req *dto.CampaignRequest) (*models.Campaign, *dto.ErrorResponse) {
	if err := c.BodyParser(req); err != nil {
		return nil, &dto.ErrorResponse{Error: "invalid request body"}
	}

	campaign := &models.Campaign{
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		Visibility:  req.Visibility,
		Goals:       req.Goals,
	}
	if req.StartDate != "" {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return nil, &dto.ErrorResponse{Error: "start_date must be YYYY-MM-DD", Field: "start_date"}
		}
		campaign.StartDate = start
	}
	if req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return nil, &dto.ErrorResponse{Error: "end_date must be YYYY-MM-DD", Field: "end_date"}
		}
		campaign.EndDate = end
	}
	return campaign, nil
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CampaignRequest
	campaign, perr := campaignFromRequest(c, &req)
	if perr != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(perr)
	}

	if err := h.campaignService.Create(c.Context(), middleware.GetActor(c), campaign); err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	campaign, err := h.campaignService.Get(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

// ListCampaigns returns the sponsor's own campaigns.
func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{}
	parseListQuery(c, &filter.Limit, &filter.Offset)

	campaigns, err := h.campaignService.ListOwn(c.Context(), middleware.GetActor(c), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

// ListAllCampaigns is the admin moderation view, searchable by
// campaign name or sponsor username.
func (h *CampaignHandler) ListAllCampaigns(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{Search: c.Query("search")}
	parseListQuery(c, &filter.Limit, &filter.Offset)

	campaigns, err := h.campaignService.ListAll(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

// ListPublicCampaigns is the influencer browse view.
func (h *CampaignHandler) ListPublicCampaigns(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{Search: c.Query("search")}
	parseListQuery(c, &filter.Limit, &filter.Offset)

	campaigns, err := h.campaignService.ListPublic(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.CampaignRequest
	campaign, perr := campaignFromRequest(c, &req)
	if perr != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(perr)
	}

	updated, err := h.campaignService.Update(c.Context(), middleware.GetActor(c), id, campaign)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	if err := h.campaignService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// parseListQuery fills limit/offset from the query string.
func parseListQuery(c *fiber.Ctx, limit, offset *int) {
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*offset = n
		}
	}
}
