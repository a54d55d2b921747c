package models

import (
	"testing"
	"time"

	"github.com/influencer-marketplace/backend/internal/apperr"
)

func validCampaign() Campaign {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return Campaign{
		Name:        "Spring launch",
		Description: "Product launch push",
		StartDate:   start,
		EndDate:     start.AddDate(0, 1, 0),
		Budget:      10000,
		Visibility:  VisibilityPublic,
	}
}

func TestCampaignValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Campaign)
		wantField string
	}{
		{"valid", func(c *Campaign) {}, ""},
		{"missing name", func(c *Campaign) { c.Name = "" }, "name"},
		{"missing description", func(c *Campaign) { c.Description = "" }, "description"},
		{"missing start date", func(c *Campaign) { c.StartDate = time.Time{} }, "start_date"},
		{"missing end date", func(c *Campaign) { c.EndDate = time.Time{} }, "end_date"},
		{"end before start", func(c *Campaign) { c.EndDate = c.StartDate.AddDate(0, 0, -1) }, "end_date"},
		{"end equal to start is allowed", func(c *Campaign) { c.EndDate = c.StartDate }, ""},
		{"private visibility", func(c *Campaign) { c.Visibility = VisibilityPrivate }, ""},
		{"unknown visibility", func(c *Campaign) { c.Visibility = "hidden" }, "visibility"},
		{"zero budget is allowed", func(c *Campaign) { c.Budget = 0 }, ""},
		{"negative budget is allowed", func(c *Campaign) { c.Budget = -100 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCampaign()
			tt.mutate(&c)
			err := c.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("error kind = %v, want validation", apperr.KindOf(err))
			}
			if apperr.FieldOf(err) != tt.wantField {
				t.Errorf("error field = %q, want %q", apperr.FieldOf(err), tt.wantField)
			}
		})
	}
}

func TestCampaignValidateDefaultsVisibility(t *testing.T) {
	c := validCampaign()
	c.Visibility = ""
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Visibility != VisibilityPublic {
		t.Errorf("visibility = %q, want %q", c.Visibility, VisibilityPublic)
	}
}
