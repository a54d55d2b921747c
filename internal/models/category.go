package models

import "github.com/google/uuid"

// Category classifies influencer niches. Admin-managed.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
