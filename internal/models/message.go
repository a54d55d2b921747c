package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one append-only entry of the negotiation log tied to an
// ad request. The service exposes no update or delete on messages;
// deleting an ad request leaves its messages in place with a dangling
// parent reference, and deleting a user nils out that party's side.
type Message struct {
	ID          uuid.UUID  `json:"id"`
	AdRequestID uuid.UUID  `json:"ad_request_id"`
	SenderID    *uuid.UUID `json:"sender_id"`
	RecipientID *uuid.UUID `json:"recipient_id"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"created_at"`
}
