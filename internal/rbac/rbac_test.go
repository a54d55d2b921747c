package rbac

import (
	"testing"

	"github.com/google/uuid"

	"github.com/influencer-marketplace/backend/internal/apperr"
)

func TestRequireRole(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		actor   Actor
		role    string
		wantErr bool
	}{
		{"sponsor passes sponsor gate", Actor{userID, RoleSponsor}, RoleSponsor, false},
		{"influencer passes influencer gate", Actor{userID, RoleInfluencer}, RoleInfluencer, false},
		{"admin passes admin gate", Actor{userID, RoleAdmin}, RoleAdmin, false},
		{"admin does not bypass sponsor gate", Actor{userID, RoleAdmin}, RoleSponsor, true},
		{"admin does not bypass influencer gate", Actor{userID, RoleAdmin}, RoleInfluencer, true},
		{"sponsor fails influencer gate", Actor{userID, RoleSponsor}, RoleInfluencer, true},
		{"anonymous fails", Actor{}, RoleSponsor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.actor, tt.role)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if apperr.KindOf(err) != apperr.KindUnauthorized {
					t.Errorf("error kind = %v, want unauthorized", apperr.KindOf(err))
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCanManageCampaign(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owner", Actor{owner, RoleSponsor}, true},
		{"other sponsor", Actor{other, RoleSponsor}, false},
		{"admin bypasses ownership", Actor{other, RoleAdmin}, true},
		{"influencer with matching id is still owner", Actor{owner, RoleInfluencer}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageCampaign(tt.actor, owner); got != tt.want {
				t.Errorf("CanManageCampaign = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanRespondToAdRequest(t *testing.T) {
	target := uuid.New()
	other := uuid.New()

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"targeted influencer", Actor{target, RoleInfluencer}, true},
		{"other influencer", Actor{other, RoleInfluencer}, false},
		{"admin has no respond bypass", Actor{other, RoleAdmin}, false},
		{"admin with matching id still blocked", Actor{target, RoleAdmin}, false},
		{"sponsor with matching id blocked", Actor{target, RoleSponsor}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRespondToAdRequest(tt.actor, target); got != tt.want {
				t.Errorf("CanRespondToAdRequest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewAdRequest(t *testing.T) {
	sponsor := uuid.New()
	influencer := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"sponsor participant", Actor{sponsor, RoleSponsor}, true},
		{"influencer participant", Actor{influencer, RoleInfluencer}, true},
		{"admin", Actor{stranger, RoleAdmin}, true},
		{"stranger", Actor{stranger, RoleSponsor}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewAdRequest(tt.actor, sponsor, influencer); got != tt.want {
				t.Errorf("CanViewAdRequest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewCampaign(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name       string
		actor      Actor
		visibility string
		want       bool
	}{
		{"public visible to anyone", Actor{other, RoleInfluencer}, "public", true},
		{"private hidden from non-owner", Actor{other, RoleInfluencer}, "private", false},
		{"private visible to owner", Actor{owner, RoleSponsor}, "private", true},
		{"private visible to admin", Actor{other, RoleAdmin}, "private", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewCampaign(tt.actor, owner, tt.visibility); got != tt.want {
				t.Errorf("CanViewCampaign = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegisterableRoles(t *testing.T) {
	if IsRegisterableRole(RoleAdmin) {
		t.Error("admin must not be registerable")
	}
	if !IsRegisterableRole(RoleSponsor) || !IsRegisterableRole(RoleInfluencer) {
		t.Error("sponsor and influencer must be registerable")
	}
	if IsRegisterableRole("moderator") {
		t.Error("unknown role must not be registerable")
	}
}
