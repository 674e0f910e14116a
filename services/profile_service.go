package services

import (
	"context"
	"math"
	"math/rand"

	"friendgraph-api/models"
	"friendgraph-api/repositories"
)

const (
	DefaultSuggestionLimit = 10
	// suggestionWindow bounds how many candidates are read before sampling.
	suggestionWindow = 200
)

// ProfileService renders accounts as seen by another account.
type ProfileService struct {
	accounts repositories.AccountStore
	shuffle  func(n int, swap func(i, j int))
}

func NewProfileService(accounts repositories.AccountStore) *ProfileService {
	return &ProfileService{
		accounts: accounts,
		shuffle:  rand.Shuffle,
	}
}

// View returns target's profile for viewer. Friends get a FriendView with the
// target's friend list and their mutual friend count, everyone else a PublicView.
func (s *ProfileService) View(ctx context.Context, viewerID, targetID string) (*models.ProfileResponse, error) {
	if viewerID == "" || targetID == "" {
		return nil, invalidArgument("Account id missing.")
	}

	target, err := loadAccount(ctx, s.accounts, targetID)
	if err != nil {
		return nil, err
	}

	response := &models.ProfileResponse{
		IsFriend:               target.IsFriendOf(viewerID),
		IsFriendRequestPending: target.HasPendingRequestFrom(viewerID),
	}
	if !response.IsFriend {
		response.User = models.NewPublicView(target)
		return response, nil
	}

	viewer, err := loadAccount(ctx, s.accounts, viewerID)
	if err != nil {
		return nil, err
	}
	friends, err := s.summaries(ctx, target.Friends)
	if err != nil {
		return nil, err
	}

	response.User = models.NewFriendView(target, friends, len(models.MutualFriends(target, viewer)))
	return response, nil
}

// Suggestions returns up to limit random accounts the viewer is not connected to.
func (s *ProfileService) Suggestions(ctx context.Context, viewerID string, limit int) ([]models.FriendSummary, error) {
	if viewerID == "" {
		return nil, invalidArgument("Account id missing.")
	}
	if limit < 1 {
		limit = DefaultSuggestionLimit
	}

	viewer, err := loadAccount(ctx, s.accounts, viewerID)
	if err != nil {
		return nil, err
	}

	exclude := append([]string{viewer.ID}, viewer.Friends...)
	candidates, err := s.accounts.ListExcluding(ctx, exclude, suggestionWindow)
	if err != nil {
		return nil, internal("failed to list accounts", err)
	}

	suggestions := make([]models.FriendSummary, 0, len(candidates))
	for i := range candidates {
		if candidates[i].IsFriendOf(viewer.ID) {
			continue
		}
		suggestions = append(suggestions, candidates[i].Summary())
	}

	s.shuffle(len(suggestions), func(i, j int) {
		suggestions[i], suggestions[j] = suggestions[j], suggestions[i]
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// Friends returns a page of the viewer's friends.
func (s *ProfileService) Friends(ctx context.Context, viewerID string, page, limit int) (*models.AccountPage, error) {
	viewer, err := s.viewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, viewer.Friends, page, limit)
}

// PendingRequests returns a page of the accounts waiting for the viewer's decision.
func (s *ProfileService) PendingRequests(ctx context.Context, viewerID string, page, limit int) (*models.AccountPage, error) {
	viewer, err := s.viewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, viewer.PendingFriendRequests, page, limit)
}

func (s *ProfileService) viewer(ctx context.Context, viewerID string) (*models.Account, error) {
	if viewerID == "" {
		return nil, invalidArgument("Account id missing.")
	}
	return loadAccount(ctx, s.accounts, viewerID)
}

func (s *ProfileService) page(ctx context.Context, ids models.IDSet, page, limit int) (*models.AccountPage, error) {
	if page < 1 || limit < 1 {
		return nil, invalidArgument("Invalid pagination!")
	}

	start, ok := pageOffset(page, limit)
	if !ok || start > len(ids) {
		start = len(ids)
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}

	accounts, err := s.summaries(ctx, ids[start:end])
	if err != nil {
		return nil, err
	}

	return &models.AccountPage{
		Accounts: accounts,
		Page:     page,
		Limit:    limit,
		Total:    len(ids),
		HasMore:  end < len(ids),
	}, nil
}

// pageOffset returns (page-1)*limit, or false when that does not fit in an int.
func pageOffset(page, limit int) (int, bool) {
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

// summaries loads ids and returns them in the same order. Ids of accounts
// that no longer exist are skipped.
func (s *ProfileService) summaries(ctx context.Context, ids models.IDSet) ([]models.FriendSummary, error) {
	accounts, err := s.accounts.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internal("failed to load accounts", err)
	}

	byID := make(map[string]*models.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &accounts[i]
	}

	summaries := make([]models.FriendSummary, 0, len(ids))
	for _, id := range ids {
		if account, ok := byID[id]; ok {
			summaries = append(summaries, account.Summary())
		}
	}
	return summaries, nil
}
