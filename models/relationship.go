package models

import "time"

type RelationshipEventType string

const (
	RelationshipEventRequested RelationshipEventType = "friend.requested"
	RelationshipEventAccepted  RelationshipEventType = "friend.accepted"
	RelationshipEventDeclined  RelationshipEventType = "friend.declined"
	RelationshipEventRemoved   RelationshipEventType = "friend.removed"
)

// RelationshipEvent is emitted after a relationship mutation has been committed.
// ActorID is the account that triggered the change.
type RelationshipEvent struct {
	Type       RelationshipEventType `json:"type"`
	ActorID    string                `json:"actor_id"`
	TargetID   string                `json:"target_id"`
	OccurredAt time.Time             `json:"occurred_at"`
}

// FriendshipStatus describes the relation between the viewer and another account
type FriendshipStatus struct {
	IsFriend           bool `json:"is_friend"`
	HasPendingSent     bool `json:"has_pending_sent"`
	HasPendingReceived bool `json:"has_pending_received"`
}
