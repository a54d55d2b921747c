package dto

// Auth

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // sponsor / influencer
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile

type SocialMediaLinkInput struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type UpdateProfileRequest struct {
	Name             string                 `json:"name"`
	CategoryID       *string                `json:"category_id,omitempty"`
	Niche            string                 `json:"niche"`
	Bio              *string                `json:"bio,omitempty"`
	SocialMediaLinks []SocialMediaLinkInput `json:"social_media_links"`
}

// Campaigns. Dates travel as YYYY-MM-DD strings.

type CampaignRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Budget      int     `json:"budget"`
	Visibility  string  `json:"visibility,omitempty"`
	Goals       *string `json:"goals,omitempty"`
}

// Ad requests

type CreateAdRequestRequest struct {
	InfluencerID  string `json:"influencer_id"`
	Requirements  string `json:"requirements"`
	PaymentAmount int    `json:"payment_amount"`
}

type RespondAdRequestRequest struct {
	Status       string `json:"status"` // accepted / rejected / negotiate
	CounterOffer *int   `json:"counter_offer,omitempty"`
}

type EditAdRequestRequest struct {
	Requirements  *string `json:"requirements,omitempty"`
	PaymentAmount *int    `json:"payment_amount,omitempty"`
}

// Admin

type AdminUserUpdateRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	IsFlagged bool    `json:"is_flagged"`
	Notes     *string `json:"notes,omitempty"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}
