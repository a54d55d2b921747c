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

// AdminService carries the moderation surface: user management,
// category management, message log and analytics. Callers are already
// role-gated to admin; ownership checks do not apply here.
type AdminService struct {
	pool          *pgxpool.Pool
	userRepo      *repositories.UserRepo
	categoryRepo  *repositories.CategoryRepo
	campaignRepo  *repositories.CampaignRepo
	messageRepo   *repositories.MessageRepo
	adRequestRepo *repositories.AdRequestRepo
	analyticsRepo *repositories.AnalyticsRepo
	auditRepo     *repositories.AuditRepo
	log           *zap.Logger
}

func NewAdminService(
	pool *pgxpool.Pool,
	userRepo *repositories.UserRepo,
	categoryRepo *repositories.CategoryRepo,
	campaignRepo *repositories.CampaignRepo,
	messageRepo *repositories.MessageRepo,
	adRequestRepo *repositories.AdRequestRepo,
	analyticsRepo *repositories.AnalyticsRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		pool:          pool,
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
		campaignRepo:  campaignRepo,
		messageRepo:   messageRepo,
		adRequestRepo: adRequestRepo,
		analyticsRepo: analyticsRepo,
		auditRepo:     auditRepo,
		log:           log,
	}
}

// ---- Users ----

func (s *AdminService) ListUsers(ctx context.Context, f repositories.UserFilter) ([]models.User, error) {
	return s.userRepo.List(ctx, f)
}

func (s *AdminService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

type AdminUserUpdate struct {
	Username  string
	Email     string
	Role      string
	IsActive  bool
	IsFlagged bool
	Notes     *string
}

// UpdateUser applies the admin edit, including role reassignment. The
// new role takes effect for the user at their next login; live
// sessions keep the role snapshot they were issued.
func (s *AdminService) UpdateUser(ctx context.Context, actor rbac.Actor, id uuid.UUID, upd AdminUserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Username == "" {
		return nil, apperr.Validation("username", "username is required")
	}
	if upd.Email == "" {
		return nil, apperr.Validation("email", "email is required")
	}
	if !rbac.IsValidRole(upd.Role) {
		return nil, apperr.Validation("role", "role must be admin, sponsor or influencer")
	}

	user.Username = upd.Username
	user.Email = upd.Email
	user.Role = upd.Role
	user.IsActive = upd.IsActive
	user.IsFlagged = upd.IsFlagged
	user.Notes = upd.Notes

	if err := s.userRepo.UpdateAdmin(ctx, user); err != nil {
		return nil, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "user_updated",
		EntityType:  "user",
		EntityID:    &id,
		Meta:        map[string]any{"role": upd.Role, "is_active": upd.IsActive, "is_flagged": upd.IsFlagged},
	})

	return user, nil
}

// DeleteUser removes the account together with everything it anchors:
// ad requests targeting the user, ad requests under their campaigns,
// then the campaigns, then the user row, as one transaction. Messages
// survive; the schema nils out the deleted party's side of each one.
func (s *AdminService) DeleteUser(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return apperr.Transaction(err)
	}
	defer tx.Rollback(ctx)

	txAdRequests := s.adRequestRepo.WithTx(tx)
	if err := txAdRequests.DeleteByInfluencer(ctx, id); err != nil {
		return apperr.Transaction(err)
	}
	if err := txAdRequests.DeleteBySponsor(ctx, id); err != nil {
		return apperr.Transaction(err)
	}
	if err := s.campaignRepo.WithTx(tx).DeleteBySponsor(ctx, id); err != nil {
		return apperr.Transaction(err)
	}
	if err := s.userRepo.WithTx(tx).Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "user_deleted",
		EntityType:  "user",
		EntityID:    &id,
	})
	return nil
}

// ToggleFlag flips the flagged status and returns the new value.
func (s *AdminService) ToggleFlag(ctx context.Context, actor rbac.Actor, id uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	flagged := !user.IsFlagged
	if err := s.userRepo.SetFlagged(ctx, id, flagged); err != nil {
		return false, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "user_flag_toggled",
		EntityType:  "user",
		EntityID:    &id,
		Meta:        map[string]any{"is_flagged": flagged},
	})
	return flagged, nil
}

func (s *AdminService) FlaggedUsers(ctx context.Context, f repositories.UserFilter) ([]models.User, error) {
	flagged := true
	f.Flagged = &flagged
	return s.userRepo.List(ctx, f)
}

// ---- Categories ----

func (s *AdminService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *AdminService) CreateCategory(ctx context.Context, actor rbac.Actor, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperr.Validation("name", "category name is required")
	}
	c := &models.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "category_created",
		EntityType:  "category",
		EntityID:    &c.ID,
	})
	return c, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, actor rbac.Actor, id uuid.UUID, name string) (*models.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.Validation("name", "category name is required")
	}
	c.Name = name
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "category_updated",
		EntityType:  "category",
		EntityID:    &id,
	})
	return c, nil
}

// DeleteCategory removes the category; profile references are
// nullified by the schema.
func (s *AdminService) DeleteCategory(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "category_deleted",
		EntityType:  "category",
		EntityID:    &id,
	})
	return nil
}

// ---- Messages & ad requests ----

func (s *AdminService) ListMessages(ctx context.Context, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.ListAll(ctx, limit, offset)
}

func (s *AdminService) ListAdRequests(ctx context.Context, f repositories.AdRequestFilter) ([]models.AdRequestWithCampaign, error) {
	return s.adRequestRepo.List(ctx, f)
}

// UpdateAdRequestTerms is the admin-side edit of an ad request. Unlike
// the sponsor edit it appends no notification message.
func (s *AdminService) UpdateAdRequestTerms(ctx context.Context, actor rbac.Actor, id uuid.UUID, requirements *string, paymentAmount *int) (*models.AdRequest, error) {
	ar, err := s.adRequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ar.ApplyEdit(requirements, paymentAmount); err != nil {
		return nil, err
	}
	if err := s.adRequestRepo.UpdateTerms(ctx, ar.ID, ar.Requirements, ar.PaymentAmount); err != nil {
		return nil, apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "ad_request_edited",
		EntityType:  "ad_request",
		EntityID:    &id,
	})
	return ar, nil
}

func (s *AdminService) DeleteAdRequest(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if _, err := s.adRequestRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.adRequestRepo.Delete(ctx, id); err != nil {
		return apperr.Transaction(err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorRole:   actor.Role,
		Action:      "ad_request_deleted",
		EntityType:  "ad_request",
		EntityID:    &id,
	})
	return nil
}

// ---- Analytics ----

type AnalyticsSummary struct {
	TopCategories         []repositories.CategoryCount   `json:"top_categories"`
	TopInfluencers        []repositories.InfluencerCount `json:"top_influencers"`
	TotalAcceptedSpending int64                          `json:"total_accepted_spending"`
}

func (s *AdminService) Analytics(ctx context.Context) (*AnalyticsSummary, error) {
	topCategories, err := s.analyticsRepo.TopCategories(ctx, 10)
	if err != nil {
		return nil, err
	}
	topInfluencers, err := s.analyticsRepo.TopInfluencers(ctx, 10)
	if err != nil {
		return nil, err
	}
	total, err := s.analyticsRepo.TotalAcceptedSpending(ctx)
	if err != nil {
		return nil, err
	}
	return &AnalyticsSummary{
		TopCategories:         topCategories,
		TopInfluencers:        topInfluencers,
		TotalAcceptedSpending: total,
	}, nil
}
