package models

import "time"

type SearchResultType string

const (
	SearchResultUser SearchResultType = "user"
	SearchResultPost SearchResultType = "post"
	SearchResultPoll SearchResultType = "poll"
)

// SearchMode selects which entity types a search covers
type SearchMode string

const (
	SearchModeAll   SearchMode = "all"
	SearchModeUsers SearchMode = "users"
	SearchModePosts SearchMode = "posts"
	SearchModePolls SearchMode = "polls"
)

// ParseSearchMode maps the raw mode parameter to a SearchMode. Empty means all.
func ParseSearchMode(raw string) (SearchMode, bool) {
	switch SearchMode(raw) {
	case "":
		return SearchModeAll, true
	case SearchModeAll, SearchModeUsers, SearchModePosts, SearchModePolls:
		return SearchMode(raw), true
	default:
		return "", false
	}
}

func (m SearchMode) Includes(branch SearchMode) bool {
	return m == SearchModeAll || m == branch
}

// SearchResult is one tagged entry of a search response.
// Data holds a UserHit, PostHit or PollHit depending on Type.
type SearchResult struct {
	Type SearchResultType `json:"type"`
	Data interface{}      `json:"data"`
}

type UserHit struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Userpic   *string `json:"userpic"`
}

type PostHit struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
	Owner     string    `json:"owner"`
}

type PollHit struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func UserResult(a Account) SearchResult {
	return SearchResult{Type: SearchResultUser, Data: UserHit{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Userpic:   a.Userpic,
	}}
}

func PostResult(p Post) SearchResult {
	return SearchResult{Type: SearchResultPost, Data: PostHit{
		ID:        p.ID,
		Text:      p.Text,
		UpdatedAt: p.UpdatedAt,
		Owner:     p.OwnerID,
	}}
}

func PollResult(p Poll) SearchResult {
	return SearchResult{Type: SearchResultPoll, Data: PollHit{
		ID:          p.ID,
		Question:    p.Question,
		Description: p.Description,
		UpdatedAt:   p.UpdatedAt,
	}}
}
