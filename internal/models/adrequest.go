package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/influencer-marketplace/backend/internal/apperr"
)

// Ad request statuses. An ad request is created pending; the targeted
// influencer moves it to one of the response statuses. There is no
// path back to pending, and a sponsor cannot answer a negotiate
// counter-offer with a further status change.
const (
	AdRequestStatusPending   = "pending"
	AdRequestStatusAccepted  = "accepted"
	AdRequestStatusRejected  = "rejected"
	AdRequestStatusNegotiate = "negotiate"
)

// ResponseStatuses are the statuses an influencer may set when
// responding.
var ResponseStatuses = []string{
	AdRequestStatusAccepted,
	AdRequestStatusRejected,
	AdRequestStatusNegotiate,
}

func IsResponseStatus(s string) bool {
	for _, v := range ResponseStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type AdRequest struct {
	ID            uuid.UUID `json:"id"`
	CampaignID    uuid.UUID `json:"campaign_id"`
	InfluencerID  uuid.UUID `json:"influencer_id"`
	Requirements  string    `json:"requirements"`
	PaymentAmount int       `json:"payment_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AdRequestWithCampaign embeds AdRequest and adds campaign info to
// avoid N+1 queries in list views.
type AdRequestWithCampaign struct {
	AdRequest
	CampaignName      string    `json:"campaign_name"`
	CampaignSponsorID uuid.UUID `json:"campaign_sponsor_id"`
}

// ValidateNew checks creation-time invariants.
func (a *AdRequest) ValidateNew() error {
	if a.Requirements == "" {
		return apperr.Validation("requirements", "requirements are required")
	}
	if a.PaymentAmount <= 0 {
		return apperr.Validation("payment_amount", "payment amount must be a positive integer")
	}
	return nil
}

// ApplyResponse applies an influencer response in memory and returns
// the notification message content to append alongside it. Nothing is
// mutated when validation fails. A response to an already accepted or
// rejected request is deliberately not guarded: it overwrites status
// and payment again and yields another message.
func (a *AdRequest) ApplyResponse(status string, counterOffer *int) (string, error) {
	if !IsResponseStatus(status) {
		return "", apperr.Validation("status", "status must be accepted, rejected or negotiate")
	}

	if status == AdRequestStatusNegotiate {
		if counterOffer == nil || *counterOffer <= 0 {
			return "", apperr.Validation("counter_offer", "counter offer must be a positive integer")
		}
		a.Status = status
		a.PaymentAmount = *counterOffer
		return fmt.Sprintf("Negotiating for $%d", *counterOffer), nil
	}

	a.Status = status
	return fmt.Sprintf("The ad request has been %s", status), nil
}

// ApplyEdit applies a sponsor-side edit of the terms. Status is never
// touched; the request may be edited in any status, including after
// acceptance or rejection.
func (a *AdRequest) ApplyEdit(requirements *string, paymentAmount *int) error {
	if paymentAmount != nil && *paymentAmount < 1 {
		return apperr.Validation("payment_amount", "payment must be at least 1")
	}
	if requirements != nil {
		if *requirements == "" {
			return apperr.Validation("requirements", "requirements are required")
		}
		a.Requirements = *requirements
	}
	if paymentAmount != nil {
		a.PaymentAmount = *paymentAmount
	}
	return nil
}

// EditNotificationContent is the message appended to the thread on
// every sponsor edit.
const EditNotificationContent = "The ad request has been updated. Please review."
