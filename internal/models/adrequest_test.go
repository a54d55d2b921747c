package models

import (
	"testing"

	"github.com/influencer-marketplace/backend/internal/apperr"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func TestApplyResponse(t *testing.T) {
	tests := []struct {
		name         string
		startStatus  string
		startPayment int
		status       string
		counterOffer *int
		wantErr      bool
		wantField    string
		wantStatus   string
		wantPayment  int
		wantContent  string
	}{
		{
			name:         "accept keeps payment",
			startStatus:  AdRequestStatusPending,
			startPayment: 500,
			status:       AdRequestStatusAccepted,
			wantStatus:   AdRequestStatusAccepted,
			wantPayment:  500,
			wantContent:  "The ad request has been accepted",
		},
		{
			name:         "reject keeps payment",
			startStatus:  AdRequestStatusPending,
			startPayment: 500,
			status:       AdRequestStatusRejected,
			wantStatus:   AdRequestStatusRejected,
			wantPayment:  500,
			wantContent:  "The ad request has been rejected",
		},
		{
			name:         "negotiate overwrites payment with counter offer",
			startStatus:  AdRequestStatusPending,
			startPayment: 500,
			status:       AdRequestStatusNegotiate,
			counterOffer: intPtr(750),
			wantStatus:   AdRequestStatusNegotiate,
			wantPayment:  750,
			wantContent:  "Negotiating for $750",
		},
		{
			name:         "negotiate without counter offer leaves request unchanged",
			startStatus:  AdRequestStatusPending,
			startPayment: 500,
			status:       AdRequestStatusNegotiate,
			wantErr:      true,
			wantField:    "counter_offer",
			wantStatus:   AdRequestStatusPending,
			wantPayment:  500,
		},
		{
			name:         "negotiate with zero counter offer rejected",
			startStatus:  AdRequestStatusPending,
			startPayment: 500,
			status:       AdRequestStatusNegotiate,
			counterOffer: intPtr(0),
			wantErr:      true,
			wantField:    "counter_offer",
			wantStatus:   AdRequestStatusPending,
			wantPayment:  500,
		},
		{
			name:         "negotiate with negative counter offer rejected",
			startStatus:  AdRequestStatusPending,
			startPayment: 500,
			status:       AdRequestStatusNegotiate,
			counterOffer: intPtr(-10),
			wantErr:      true,
			wantField:    "counter_offer",
			wantStatus:   AdRequestStatusPending,
			wantPayment:  500,
		},
		{
			name:         "pending is not a response status",
			startStatus:  AdRequestStatusPending,
			startPayment: 500,
			status:       AdRequestStatusPending,
			wantErr:      true,
			wantField:    "status",
			wantStatus:   AdRequestStatusPending,
			wantPayment:  500,
		},
		{
			name:         "unknown status rejected",
			startStatus:  AdRequestStatusPending,
			startPayment: 500,
			status:       "approved",
			wantErr:      true,
			wantField:    "status",
			wantStatus:   AdRequestStatusPending,
			wantPayment:  500,
		},
		{
			name:         "re-response over accepted overwrites again",
			startStatus:  AdRequestStatusAccepted,
			startPayment: 750,
			status:       AdRequestStatusNegotiate,
			counterOffer: intPtr(900),
			wantStatus:   AdRequestStatusNegotiate,
			wantPayment:  900,
			wantContent:  "Negotiating for $900",
		},
		{
			name:         "re-response over rejected overwrites again",
			startStatus:  AdRequestStatusRejected,
			startPayment: 500,
			status:       AdRequestStatusAccepted,
			wantStatus:   AdRequestStatusAccepted,
			wantPayment:  500,
			wantContent:  "The ad request has been accepted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ar := AdRequest{Status: tt.startStatus, PaymentAmount: tt.startPayment}
			content, err := ar.ApplyResponse(tt.status, tt.counterOffer)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ApplyResponse(%q) expected error, got nil", tt.status)
				}
				if apperr.KindOf(err) != apperr.KindValidation {
					t.Errorf("error kind = %v, want validation", apperr.KindOf(err))
				}
				if apperr.FieldOf(err) != tt.wantField {
					t.Errorf("error field = %q, want %q", apperr.FieldOf(err), tt.wantField)
				}
			} else {
				if err != nil {
					t.Fatalf("ApplyResponse(%q) unexpected error: %v", tt.status, err)
				}
				if content != tt.wantContent {
					t.Errorf("content = %q, want %q", content, tt.wantContent)
				}
			}

			if ar.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", ar.Status, tt.wantStatus)
			}
			if ar.PaymentAmount != tt.wantPayment {
				t.Errorf("payment = %d, want %d", ar.PaymentAmount, tt.wantPayment)
			}
		})
	}
}

func TestApplyEdit(t *testing.T) {
	tests := []struct {
		name             string
		requirements     *string
		paymentAmount    *int
		wantErr          bool
		wantField        string
		wantRequirements string
		wantPayment      int
	}{
		{
			name:             "both fields updated",
			requirements:     strPtr("two stories and a reel"),
			paymentAmount:    intPtr(800),
			wantRequirements: "two stories and a reel",
			wantPayment:      800,
		},
		{
			name:             "payment only",
			paymentAmount:    intPtr(600),
			wantRequirements: "one post",
			wantPayment:      600,
		},
		{
			name:             "requirements only",
			requirements:     strPtr("one post, pinned"),
			wantRequirements: "one post, pinned",
			wantPayment:      500,
		},
		{
			name:             "nothing to change is a no-op",
			wantRequirements: "one post",
			wantPayment:      500,
		},
		{
			name:             "payment below one rejected",
			paymentAmount:    intPtr(0),
			wantErr:          true,
			wantField:        "payment_amount",
			wantRequirements: "one post",
			wantPayment:      500,
		},
		{
			name:             "empty requirements rejected",
			requirements:     strPtr(""),
			wantErr:          true,
			wantField:        "requirements",
			wantRequirements: "one post",
			wantPayment:      500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ar := AdRequest{Status: AdRequestStatusNegotiate, Requirements: "one post", PaymentAmount: 500}
			err := ar.ApplyEdit(tt.requirements, tt.paymentAmount)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if apperr.FieldOf(err) != tt.wantField {
					t.Errorf("error field = %q, want %q", apperr.FieldOf(err), tt.wantField)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if ar.Requirements != tt.wantRequirements {
				t.Errorf("requirements = %q, want %q", ar.Requirements, tt.wantRequirements)
			}
			if ar.PaymentAmount != tt.wantPayment {
				t.Errorf("payment = %d, want %d", ar.PaymentAmount, tt.wantPayment)
			}
			if ar.Status != AdRequestStatusNegotiate {
				t.Errorf("edit must not touch status, got %q", ar.Status)
			}
		})
	}
}

func TestValidateNew(t *testing.T) {
	tests := []struct {
		name      string
		ar        AdRequest
		wantField string
	}{
		{"valid", AdRequest{Requirements: "one post", PaymentAmount: 100}, ""},
		{"missing requirements", AdRequest{PaymentAmount: 100}, "requirements"},
		{"zero payment", AdRequest{Requirements: "one post"}, "payment_amount"},
		{"negative payment", AdRequest{Requirements: "one post", PaymentAmount: -5}, "payment_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ar.ValidateNew()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if apperr.FieldOf(err) != tt.wantField {
				t.Errorf("error field = %q, want %q", apperr.FieldOf(err), tt.wantField)
			}
		})
	}
}

func TestIsResponseStatus(t *testing.T) {
	for _, s := range ResponseStatuses {
		if !IsResponseStatus(s) {
			t.Errorf("IsResponseStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{AdRequestStatusPending, "", "approved"} {
		if IsResponseStatus(s) {
			t.Errorf("IsResponseStatus(%q) = true, want false", s)
		}
	}
}
