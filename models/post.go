package models

import (
	"time"
)

// Gated is content whose visibility depends on the owner's friend list
type Gated interface {
	GatedOwner() string
	FriendOnly() bool
}

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	OwnerID   string    `json:"owner" gorm:"not null;size:191;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Post) GatedOwner() string { return p.OwnerID }

// FriendOnly is always true: posts are only shown to the owner and the owner's friends.
func (p Post) FriendOnly() bool { return true }

type Poll struct {
	ID            string      `json:"id" gorm:"primaryKey;size:191"`
	OwnerID       string      `json:"owner" gorm:"not null;size:191;index"`
	Question      string      `json:"question" gorm:"not null;size:500"`
	Description   string      `json:"description" gorm:"type:text"`
	Options       PollOptions `json:"options" gorm:"type:json"`
	IsFriendOnly  bool        `json:"is_friend_only" gorm:"not null;default:false"`
	AllowComments bool        `json:"allow_comments" gorm:"not null"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" gorm:"index"`
}

func (p Poll) GatedOwner() string { return p.OwnerID }

func (p Poll) FriendOnly() bool { return p.IsFriendOnly }

// PollPage represents a page of polls with pagination metadata
type PollPage struct {
	Polls   []Poll `json:"polls"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	HasMore bool   `json:"has_more"`
}
