package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/influencer-marketplace/backend/internal/apperr"
)

// Campaign visibility
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Campaign struct {
	ID          uuid.UUID `json:"id"`
	SponsorID   uuid.UUID `json:"sponsor_id"` // immutable owner
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Budget      int       `json:"budget"`
	Visibility  string    `json:"visibility"`
	Goals       *string   `json:"goals,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the field-level rules applied at creation and edit
// time. Budget is not range-checked here on purpose.
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return apperr.Validation("name", "name is required")
	}
	if c.Description == "" {
		return apperr.Validation("description", "description is required")
	}
	if c.StartDate.IsZero() {
		return apperr.Validation("start_date", "start date is required")
	}
	if c.EndDate.IsZero() {
		return apperr.Validation("end_date", "end date is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return apperr.Validation("end_date", "end date must not be before start date")
	}
	switch c.Visibility {
	case VisibilityPublic, VisibilityPrivate:
	case "":
		c.Visibility = VisibilityPublic
	default:
		return apperr.Validation("visibility", "visibility must be public or private")
	}
	return nil
}
