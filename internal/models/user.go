package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // admin / sponsor / influencer
	IsActive     bool      `json:"is_active"`
	IsFlagged    bool      `json:"is_flagged"`
	Notes        *string   `json:"notes,omitempty"` // admin-only free text
	// Influencer profile
	Name       *string    `json:"name,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Niche      *string    `json:"niche,omitempty"`
	Bio        *string    `json:"bio,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Social media platforms an influencer can list on their profile.
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformYouTube   = "youtube"
	PlatformLinkedIn  = "linkedin"
	PlatformTikTok    = "tiktok"
	PlatformOther     = "other"
)

var AllPlatforms = []string{
	PlatformFacebook, PlatformInstagram, PlatformTwitter, PlatformYouTube,
	PlatformLinkedIn, PlatformTikTok, PlatformOther,
}

func IsValidPlatform(p string) bool {
	for _, v := range AllPlatforms {
		if v == p {
			return true
		}
	}
	return false
}

// SocialMediaLink is one ordered entry of an influencer's profile.
// Profile updates replace the whole set.
type SocialMediaLink struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Platform string    `json:"platform"`
	URL      string    `json:"url"`
	Position int       `json:"position"`
}
