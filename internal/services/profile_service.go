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

// ProfileService manages the influencer-editable profile: display
// name, category, niche, bio and the ordered social link set.
type ProfileService struct {
	pool         *pgxpool.Pool
	userRepo     *repositories.UserRepo
	categoryRepo *repositories.CategoryRepo
	log          *zap.Logger
}

func NewProfileService(
	pool *pgxpool.Pool,
	userRepo *repositories.UserRepo,
	categoryRepo *repositories.CategoryRepo,
	log *zap.Logger,
) *ProfileService {
	return &ProfileService{
		pool:         pool,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		log:          log,
	}
}

type Profile struct {
	User  *models.User             `json:"user"`
	Links []models.SocialMediaLink `json:"social_media_links"`
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	links, err := s.userRepo.GetSocialLinks(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Links: links}, nil
}

type UpdateProfileInput struct {
	Name       string
	CategoryID *uuid.UUID
	Niche      string
	Bio        *string
	Links      []models.SocialMediaLink
}

// Update rewrites the profile fields and replaces the link set
// wholesale, in one transaction.
func (s *ProfileService) Update(ctx context.Context, actor rbac.Actor, input UpdateProfileInput) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	if input.Niche == "" {
		return nil, apperr.Validation("niche", "niche is required")
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, apperr.Validation("category_id", "unknown category")
		}
	}
	for _, l := range input.Links {
		if !models.IsValidPlatform(l.Platform) {
			return nil, apperr.Validation("social_media_links", "unknown platform "+l.Platform)
		}
		if l.URL == "" {
			return nil, apperr.Validation("social_media_links", "url is required")
		}
	}

	user.Name = &input.Name
	user.CategoryID = input.CategoryID
	user.Niche = &input.Niche
	user.Bio = input.Bio

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, apperr.Transaction(err)
	}
	defer tx.Rollback(ctx)

	txRepo := s.userRepo.WithTx(tx)
	if err := txRepo.UpdateProfile(ctx, user); err != nil {
		return nil, apperr.Transaction(err)
	}
	if err := txRepo.ReplaceSocialLinks(ctx, user.ID, input.Links); err != nil {
		return nil, apperr.Transaction(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Transaction(err)
	}

	return s.Get(ctx, user.ID)
}
