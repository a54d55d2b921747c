package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/influencer-marketplace/backend/internal/apperr"
	"github.com/influencer-marketplace/backend/internal/events"
	"github.com/influencer-marketplace/backend/internal/models"
	"github.com/influencer-marketplace/backend/internal/rbac"
	"github.com/influencer-marketplace/backend/internal/repositories"
)

// AdRequestService owns the negotiation workflow: creation, the single
// influencer response, sponsor-side term edits and deletion. Every
// multi-row mutation runs inside one pgx transaction so a failed step
// never leaves a partial state visible.
type AdRequestService struct {
	pool          *pgxpool.Pool
	adRequestRepo *repositories.AdRequestRepo
	campaignRepo  *repositories.CampaignRepo
	userRepo      *repositories.UserRepo
	messageRepo   *repositories.MessageRepo
	auditRepo     *repositories.AuditRepo
	publisher     events.Publisher
	log           *zap.Logger
}

func NewAdRequestService(
	pool *pgxpool.Pool,
	adRequestRepo *repositories.AdRequestRepo,
	campaignRepo *repositories.CampaignRepo,
	userRepo *repositories.UserRepo,
	messageRepo *repositories.MessageRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *AdRequestService {
	return &AdRequestService{
		pool:          pool,
		adRequestRepo: adRequestRepo,
		campaignRepo:  campaignRepo,
		userRepo:      userRepo,
		messageRepo:   messageRepo,
		auditRepo:     auditRepo,
		publisher:     publisher,
		log:           log,
	}
}

// Create makes a pending ad request from the campaign's sponsor to one
// influencer. Duplicate targeting is prevented only by the eligible
// set served to the form; Create itself checks the target's role, not
// uniqueness.
func (s *AdRequestService) Create(ctx context.Context, actor rbac.Actor, campaignID uuid.UUID, influencerID uuid.UUID, requirements string, paymentAmount int) (*models.AdRequest, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManageCampaign(actor, campaign.SponsorID) {
		return nil, apperr.Forbidden("not the campaign owner")
	}

	influencer, err := s.userRepo.GetByID(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	if influencer.Role != rbac.RoleInfluencer {
		return nil, apperr.Validation("influencer_id", "target user is not an influencer")
	}

	adRequest := &models.AdRequest{
		CampaignID:    campaignID,
		InfluencerID:  influencerID,
		Requirements:  requirements,
		PaymentAmount: paymentAmount,
		Status:        models.AdRequestStatusPending,
	}
	if err := adRequest.ValidateNew(); err != nil {
		return nil, err
	}

	// No message is appended on initial creation.
	if err := s.adRequestRepo.Create(ctx, adRequest); err != nil {
		return nil, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "ad_request_created",
		EntityType:  "ad_request",
		EntityID:    &adRequest.ID,
		Meta:        map[string]any{"campaign_id": campaignID.String(), "payment_amount": paymentAmount},
	})

	return adRequest, nil
}

// EligibleInfluencers returns the influencers a sponsor may still
// target on a campaign.
func (s *AdRequestService) EligibleInfluencers(ctx context.Context, actor rbac.Actor, campaignID uuid.UUID) ([]models.User, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManageCampaign(actor, campaign.SponsorID) {
		return nil, apperr.Forbidden("not the campaign owner")
	}
	return s.userRepo.EligibleInfluencers(ctx, campaignID)
}

// Respond applies the influencer's single response action. Status
// update, payment overwrite and notification message commit as one
// unit; a validation failure mutates nothing. Responding again to an
// already accepted or rejected request overwrites and notifies again.
func (s *AdRequestService) Respond(ctx context.Context, actor rbac.Actor, adRequestID uuid.UUID, status string, counterOffer *int) (*models.AdRequest, error) {
	ar, err := s.adRequestRepo.GetByIDWithCampaign(ctx, adRequestID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanRespondToAdRequest(actor, ar.InfluencerID) {
		return nil, apperr.Forbidden("only the targeted influencer can respond")
	}

	oldStatus := ar.Status
	content, err := ar.ApplyResponse(status, counterOffer)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		AdRequestID: ar.ID,
		SenderID:    &ar.InfluencerID,
		RecipientID: &ar.CampaignSponsorID,
		Content:     content,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, apperr.Transaction(err)
	}
	defer tx.Rollback(ctx)

	if err := s.adRequestRepo.WithTx(tx).UpdateResponse(ctx, ar.ID, ar.Status, ar.PaymentAmount); err != nil {
		return nil, apperr.Transaction(err)
	}
	if err := s.messageRepo.WithTx(tx).Create(ctx, message); err != nil {
		return nil, apperr.Transaction(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "ad_request_" + oldStatus + "_to_" + ar.Status,
		EntityType:  "ad_request",
		EntityID:    &ar.ID,
		Meta:        map[string]any{"old_status": oldStatus, "new_status": ar.Status, "payment_amount": ar.PaymentAmount},
	})

	_ = s.publisher.Publish(ctx, events.StreamAdRequests, events.Event{
		Type: events.EventAdRequestStatusChanged,
		Payload: map[string]any{
			"ad_request_id":     ar.ID.String(),
			"old_status":        oldStatus,
			"new_status":        ar.Status,
			"payment_amount":    ar.PaymentAmount,
			"recipient_user_id": ar.CampaignSponsorID.String(),
		},
	})

	return &ar.AdRequest, nil
}

// Edit applies a sponsor-side change of terms. A notification message
// from the sponsor to the influencer always commits with the field
// updates. Status is untouched, even after acceptance or rejection.
func (s *AdRequestService) Edit(ctx context.Context, actor rbac.Actor, adRequestID uuid.UUID, requirements *string, paymentAmount *int) (*models.AdRequest, error) {
	ar, err := s.adRequestRepo.GetByIDWithCampaign(ctx, adRequestID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManageCampaign(actor, ar.CampaignSponsorID) {
		return nil, apperr.Forbidden("not the campaign owner")
	}

	if err := ar.ApplyEdit(requirements, paymentAmount); err != nil {
		return nil, err
	}

	message := &models.Message{
		AdRequestID: ar.ID,
		SenderID:    &ar.CampaignSponsorID,
		RecipientID: &ar.InfluencerID,
		Content:     models.EditNotificationContent,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, apperr.Transaction(err)
	}
	defer tx.Rollback(ctx)

	if err := s.adRequestRepo.WithTx(tx).UpdateTerms(ctx, ar.ID, ar.Requirements, ar.PaymentAmount); err != nil {
		return nil, apperr.Transaction(err)
	}
	if err := s.messageRepo.WithTx(tx).Create(ctx, message); err != nil {
		return nil, apperr.Transaction(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "ad_request_edited",
		EntityType:  "ad_request",
		EntityID:    &ar.ID,
		Meta:        map[string]any{"payment_amount": ar.PaymentAmount},
	})

	_ = s.publisher.Publish(ctx, events.StreamAdRequests, events.Event{
		Type: events.EventAdRequestUpdated,
		Payload: map[string]any{
			"ad_request_id":     ar.ID.String(),
			"payment_amount":    ar.PaymentAmount,
			"recipient_user_id": ar.InfluencerID.String(),
		},
	})

	return &ar.AdRequest, nil
}

// Delete removes an ad request. Messages of the thread are left in
// place.
func (s *AdRequestService) Delete(ctx context.Context, actor rbac.Actor, adRequestID uuid.UUID) error {
	ar, err := s.adRequestRepo.GetByIDWithCampaign(ctx, adRequestID)
	if err != nil {
		return err
	}
	if !rbac.CanManageCampaign(actor, ar.CampaignSponsorID) {
		return apperr.Forbidden("not the campaign owner")
	}

	if err := s.adRequestRepo.Delete(ctx, ar.ID); err != nil {
		return apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "ad_request_deleted",
		EntityType:  "ad_request",
		EntityID:    &ar.ID,
	})

	return nil
}

// Get returns one ad request to a participant or an admin.
func (s *AdRequestService) Get(ctx context.Context, actor rbac.Actor, adRequestID uuid.UUID) (*models.AdRequestWithCampaign, error) {
	ar, err := s.adRequestRepo.GetByIDWithCampaign(ctx, adRequestID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanViewAdRequest(actor, ar.CampaignSponsorID, ar.InfluencerID) {
		return nil, apperr.Forbidden("not a participant of this ad request")
	}
	return ar, nil
}

// ListForInfluencer returns the actor's own ad requests.
func (s *AdRequestService) ListForInfluencer(ctx context.Context, actor rbac.Actor, f repositories.AdRequestFilter) ([]models.AdRequestWithCampaign, error) {
	f.InfluencerID = &actor.UserID
	return s.adRequestRepo.List(ctx, f)
}

// ListForCampaign returns a campaign's ad requests to its owner.
func (s *AdRequestService) ListForCampaign(ctx context.Context, actor rbac.Actor, campaignID uuid.UUID, f repositories.AdRequestFilter) ([]models.AdRequestWithCampaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManageCampaign(actor, campaign.SponsorID) {
		return nil, apperr.Forbidden("not the campaign owner")
	}
	f.CampaignID = &campaignID
	return s.adRequestRepo.List(ctx, f)
}

// Messages returns the negotiation thread to a participant or admin.
func (s *AdRequestService) Messages(ctx context.Context, actor rbac.Actor, adRequestID uuid.UUID) ([]models.Message, error) {
	ar, err := s.adRequestRepo.GetByIDWithCampaign(ctx, adRequestID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanViewAdRequest(actor, ar.CampaignSponsorID, ar.InfluencerID) {
		return nil, apperr.Forbidden("not a participant of this ad request")
	}
	return s.messageRepo.ListByAdRequest(ctx, adRequestID)
}
