// Package rbac is the authorization gate: a pure predicate layer over
// the three marketplace roles plus ownership relations. It never
// touches storage. The actor's role is the snapshot carried by the
// session token, not the stored user record.
package rbac

import (
	"github.com/google/uuid"

	"github.com/influencer-marketplace/backend/internal/apperr"
)

// Role constants
const (
	RoleAdmin      = "admin"
	RoleSponsor    = "sponsor"
	RoleInfluencer = "influencer"
)

var AllRoles = []string{RoleAdmin, RoleSponsor, RoleInfluencer}

// RegisterableRoles are the roles a user may self-assign at
// registration. Admin accounts are provisioned, never registered.
var RegisterableRoles = []string{RoleSponsor, RoleInfluencer}

func IsValidRole(r string) bool {
	for _, v := range AllRoles {
		if v == r {
			return true
		}
	}
	return false
}

func IsRegisterableRole(r string) bool {
	for _, v := range RegisterableRoles {
		if v == r {
			return true
		}
	}
	return false
}

// Actor is the authenticated caller as seen by every gate check. Role
// is the value captured at login; a stored-role change takes effect
// only after re-login.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// RequireRole fails with Unauthorized when the actor's session role
// does not equal the required role. Admin does not bypass role checks.
func RequireRole(a Actor, role string) error {
	if a.UserID == uuid.Nil {
		return apperr.Unauthorized("authentication required")
	}
	if a.Role != role {
		return apperr.Unauthorized("role " + role + " required")
	}
	return nil
}

// CanManageCampaign reports whether the actor may mutate or delete a
// campaign, or the ad requests under it. Admin bypasses ownership.
func CanManageCampaign(a Actor, sponsorID uuid.UUID) bool {
	return a.IsAdmin() || a.UserID == sponsorID
}

// CanRespondToAdRequest reports whether the actor may respond to an
// ad request. Only the targeted influencer may respond; there is no
// admin bypass because responding is an act of the influencer, not a
// moderation action.
func CanRespondToAdRequest(a Actor, influencerID uuid.UUID) bool {
	return a.Role == RoleInfluencer && a.UserID == influencerID
}

// CanViewAdRequest reports whether the actor is a participant of the
// ad request (campaign sponsor or targeted influencer) or an admin.
func CanViewAdRequest(a Actor, sponsorID, influencerID uuid.UUID) bool {
	return a.IsAdmin() || a.UserID == sponsorID || a.UserID == influencerID
}

// CanViewCampaign reports whether the actor may read a campaign.
// Private campaigns are visible to their sponsor and admins only;
// public ones to everyone authenticated.
func CanViewCampaign(a Actor, sponsorID uuid.UUID, visibility string) bool {
	if CanManageCampaign(a, sponsorID) {
		return true
	}
	return visibility == "public"
}
