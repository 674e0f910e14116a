package models

import (
	"time"
)

// Account is a user identity together with its two relation sets.
//
// PendingFriendRequests holds the ids of accounts that asked to become friends
// with this account and are waiting for its decision. Friends must stay
// symmetric across the two accounts involved.
type Account struct {
	ID                    string    `json:"id" gorm:"primaryKey;size:191"`
	FirstName             string    `json:"first_name" gorm:"not null;size:255;index"`
	LastName              string    `json:"last_name" gorm:"not null;size:255;index"`
	Username              string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Userpic               *string   `json:"userpic" gorm:"size:500"`
	Joined                time.Time `json:"joined"`
	LastSeen              time.Time `json:"last_seen"`
	Friends               IDSet     `json:"friends" gorm:"type:json"`
	PendingFriendRequests IDSet     `json:"pending_friend_requests" gorm:"type:json"`
	Version               int64     `json:"-" gorm:"not null;default:0"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (a *Account) IsFriendOf(id string) bool {
	return a.Friends.Contains(id)
}

func (a *Account) HasPendingRequestFrom(id string) bool {
	return a.PendingFriendRequests.Contains(id)
}

// MutualFriends returns the friends a and b have in common.
func MutualFriends(a, b *Account) IDSet {
	return a.Friends.Intersect(b.Friends)
}

// RelationFields is the slice of an account a relationship mutation may write.
// Nothing outside these two sets is ever written back.
type RelationFields struct {
	Friends               IDSet
	PendingFriendRequests IDSet
}

// FriendSummary is the display-safe projection of an account used in lists
type FriendSummary struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Username  string  `json:"username"`
	Userpic   *string `json:"userpic"`
}

func (a *Account) Summary() FriendSummary {
	return FriendSummary{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Username:  a.Username,
		Userpic:   a.Userpic,
	}
}
