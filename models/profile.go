package models

import "time"

type ProfileVisibility string

const (
	ProfileVisibilityPublic ProfileVisibility = "public"
	ProfileVisibilityFriend ProfileVisibility = "friend"
)

// ProfileView is what a viewer is allowed to see of another account.
// It is either a PublicView or a FriendView.
type ProfileView interface {
	Visibility() ProfileVisibility
}

type PublicView struct {
	Kind      ProfileVisibility `json:"visibility"`
	ID        string            `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Username  string            `json:"username"`
	Userpic   *string           `json:"userpic"`
}

func (v PublicView) Visibility() ProfileVisibility { return ProfileVisibilityPublic }

// FriendView extends the public fields with data only friends may see.
type FriendView struct {
	Kind          ProfileVisibility `json:"visibility"`
	ID            string            `json:"id"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Username      string            `json:"username"`
	Userpic       *string           `json:"userpic"`
	Joined        time.Time         `json:"joined"`
	LastSeen      time.Time         `json:"last_seen"`
	Friends       []FriendSummary   `json:"friends"`
	MutualFriends int               `json:"mutual_friends"`
}

func (v FriendView) Visibility() ProfileVisibility { return ProfileVisibilityFriend }

func NewPublicView(a *Account) PublicView {
	return PublicView{
		Kind:      ProfileVisibilityPublic,
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Username:  a.Username,
		Userpic:   a.Userpic,
	}
}

func NewFriendView(a *Account, friends []FriendSummary, mutual int) FriendView {
	if friends == nil {
		friends = []FriendSummary{}
	}
	return FriendView{
		Kind:          ProfileVisibilityFriend,
		ID:            a.ID,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Username:      a.Username,
		Userpic:       a.Userpic,
		Joined:        a.Joined,
		LastSeen:      a.LastSeen,
		Friends:       friends,
		MutualFriends: mutual,
	}
}

// ProfileResponse is the profile of another account as seen by the viewer
type ProfileResponse struct {
	User                   ProfileView `json:"user"`
	IsFriend               bool        `json:"is_friend"`
	IsFriendRequestPending bool        `json:"is_friend_request_pending"`
}

// AccountPage is a page of account summaries
type AccountPage struct {
	Accounts []FriendSummary `json:"accounts"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
	Total    int             `json:"total"`
	HasMore  bool            `json:"has_more"`
}
