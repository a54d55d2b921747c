package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/influencer-marketplace/backend/internal/apperr"
	"github.com/influencer-marketplace/backend/internal/models"
	"github.com/influencer-marketplace/backend/internal/rbac"
	"github.com/influencer-marketplace/backend/internal/repositories"
)

type CampaignService struct {
	pool          *pgxpool.Pool
	campaignRepo  *repositories.CampaignRepo
	adRequestRepo *repositories.AdRequestRepo
	auditRepo     *repositories.AuditRepo
	log           *zap.Logger
}

func NewCampaignService(
	pool *pgxpool.Pool,
	campaignRepo *repositories.CampaignRepo,
	adRequestRepo *repositories.AdRequestRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		pool:          pool,
		campaignRepo:  campaignRepo,
		adRequestRepo: adRequestRepo,
		auditRepo:     auditRepo,
		log:           log,
	}
}

func (s *CampaignService) Create(ctx context.Context, actor rbac.Actor, c *models.Campaign) error {
	c.SponsorID = actor.UserID
	if err := c.Validate(); err != nil {
		return err
	}

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &c.ID,
	})

	return nil
}

// Get applies visibility rules: private campaigns are readable only by
// their sponsor or an admin.
func (s *CampaignService) Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanViewCampaign(actor, c.SponsorID, c.Visibility) {
		return nil, apperr.Forbidden("campaign is private")
	}
	return c, nil
}

// ListOwn returns the actor's campaigns.
func (s *CampaignService) ListOwn(ctx context.Context, actor rbac.Actor, f repositories.CampaignFilter) ([]models.Campaign, error) {
	f.SponsorID = &actor.UserID
	return s.campaignRepo.List(ctx, f)
}

// ListAll returns campaigns regardless of owner or visibility. Serves
// the admin moderation surface only; callers are already role-gated.
func (s *CampaignService) ListAll(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error) {
	return s.campaignRepo.List(ctx, f)
}

// ListPublic returns public campaigns for influencer browsing.
func (s *CampaignService) ListPublic(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error) {
	visibility := models.VisibilityPublic
	f.Visibility = &visibility
	f.SponsorID = nil
	return s.campaignRepo.List(ctx, f)
}

func (s *CampaignService) Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, c *models.Campaign) (*models.Campaign, error) {
	existing, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManageCampaign(actor, existing.SponsorID) {
		return nil, apperr.Forbidden("not the campaign owner")
	}

	c.ID = existing.ID
	c.SponsorID = existing.SponsorID
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Update(ctx, c); err != nil {
		return nil, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "campaign_updated",
		EntityType:  "campaign",
		EntityID:    &c.ID,
	})

	return s.campaignRepo.GetByID(ctx, id)
}

// Delete removes the campaign and all its ad requests as one
// transaction: children first, then the parent. A failure anywhere
// rolls the whole deletion back.
func (s *CampaignService) Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	existing, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !rbac.CanManageCampaign(actor, existing.SponsorID) {
		return apperr.Forbidden("not the campaign owner")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return apperr.Transaction(err)
	}
	defer tx.Rollback(ctx)

	if err := s.adRequestRepo.WithTx(tx).DeleteByCampaign(ctx, id); err != nil {
		return apperr.Transaction(err)
	}
	if err := s.campaignRepo.WithTx(tx).Delete(ctx, id); err != nil {
		return apperr.Transaction(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "campaign_deleted",
		EntityType:  "campaign",
		EntityID:    &id,
	})

	return nil
}
