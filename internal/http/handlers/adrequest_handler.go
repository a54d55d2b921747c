package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influencer-marketplace/backend/internal/http/dto"
	"github.com/influencer-marketplace/backend/internal/middleware"
	"github.com/influencer-marketplace/backend/internal/repositories"
	"github.com/influencer-marketplace/backend/internal/services"
)

type AdRequestHandler struct {
	adRequestService *services.AdRequestService
	log              *zap.Logger
}

func NewAdRequestHandler(adRequestService *services.AdRequestService, log *zap.Logger) *AdRequestHandler {
	return &AdRequestHandler{adRequestService: adRequestService, log: log}
}

// CreateAdRequest targets a campaign at one influencer.
// POST /campaigns/:id/ad-requests
func (h *AdRequestHandler) CreateAdRequest(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.CreateAdRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	influencerID, err := uuid.Parse(req.InfluencerID)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid influencer id", Field: "influencer_id"})
	}

	adRequest, err := h.adRequestService.Create(c.Context(), middleware.GetActor(c), campaignID, influencerID, req.Requirements, req.PaymentAmount)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: adRequest})
}

// EligibleInfluencers lists active influencers not yet targeted by
// this campaign.
func (h *AdRequestHandler) EligibleInfluencers(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	influencers, err := h.adRequestService.EligibleInfluencers(c.Context(), middleware.GetActor(c), campaignID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: influencers})
}

func (h *AdRequestHandler) GetAdRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad request id"})
	}

	adRequest, err := h.adRequestService.Get(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: adRequest})
}

// ListAdRequests is the influencer inbox, optionally filtered by status.
func (h *AdRequestHandler) ListAdRequests(c *fiber.Ctx) error {
	filter := repositories.AdRequestFilter{}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	parseListQuery(c, &filter.Limit, &filter.Offset)

	requests, err := h.adRequestService.ListForInfluencer(c.Context(), middleware.GetActor(c), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: requests})
}

// ListCampaignAdRequests is the sponsor's per-campaign view.
// GET /campaigns/:id/ad-requests
func (h *AdRequestHandler) ListCampaignAdRequests(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	filter := repositories.AdRequestFilter{}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	parseListQuery(c, &filter.Limit, &filter.Offset)

	requests, err := h.adRequestService.ListForCampaign(c.Context(), middleware.GetActor(c), campaignID, filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: requests})
}

// RespondAdRequest records the influencer's accept / reject / negotiate
// decision.
func (h *AdRequestHandler) RespondAdRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad request id"})
	}

	var req dto.RespondAdRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	adRequest, err := h.adRequestService.Respond(c.Context(), middleware.GetActor(c), id, req.Status, req.CounterOffer)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: adRequest})
}

// EditAdRequest lets the owning sponsor revise terms after a negotiate
// response.
func (h *AdRequestHandler) EditAdRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad request id"})
	}

	var req dto.EditAdRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	adRequest, err := h.adRequestService.Edit(c.Context(), middleware.GetActor(c), id, req.Requirements, req.PaymentAmount)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: adRequest})
}

func (h *AdRequestHandler) DeleteAdRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad request id"})
	}

	if err := h.adRequestService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// GetAdRequestMessages returns the negotiation thread, oldest first.
func (h *AdRequestHandler) GetAdRequestMessages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad request id"})
	}

	messages, err := h.adRequestService.Messages(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: messages})
}
