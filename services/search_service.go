package services

import (
	"context"
	"time"

	"friendgraph-api/models"
	"friendgraph-api/repositories"
	"friendgraph-api/utils"
	"golang.org/x/sync/errgroup"
)

// SearchQuery is one search request. Query is nil when the caller sent no
// query at all, which is different from an empty or blank query.
type SearchQuery struct {
	Query    *string
	Mode     string
	ViewerID string
}

type SearchService struct {
	content    repositories.ContentStore
	visibility *VisibilityResolver
}

func NewSearchService(content repositories.ContentStore, visibility *VisibilityResolver) *SearchService {
	return &SearchService{
		content:    content,
		visibility: visibility,
	}
}

// Search runs the user, post and poll branches selected by the mode
// concurrently and returns users, then posts, then polls. Posts and polls the
// viewer may not see are dropped. If any branch fails or ctx is cancelled no
// partial results are returned.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) ([]models.SearchResult, error) {
	if q.Query == nil {
		return nil, invalidArgument("Query parameter is required!")
	}
	mode, ok := models.ParseSearchMode(q.Mode)
	if !ok {
		return nil, invalidArgument("Unknown search mode!")
	}

	tokens := utils.Tokenize(*q.Query)

	var users, posts, polls []models.SearchResult
	g, gctx := errgroup.WithContext(ctx)

	if mode.Includes(models.SearchModeUsers) {
		g.Go(func() (err error) {
			users, err = s.searchUsers(gctx, tokens)
			return err
		})
	}
	if mode.Includes(models.SearchModePosts) {
		g.Go(func() (err error) {
			posts, err = s.searchPosts(gctx, tokens, q.ViewerID)
			return err
		})
	}
	if mode.Includes(models.SearchModePolls) {
		g.Go(func() (err error) {
			polls, err = s.searchPolls(gctx, tokens, q.ViewerID)
			return err
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, internal("search cancelled", ctxErr)
	}
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(users)+len(posts)+len(polls))
	results = append(results, users...)
	results = append(results, posts...)
	results = append(results, polls...)
	return results, nil
}

func (s *SearchService) searchUsers(ctx context.Context, tokens []string) ([]models.SearchResult, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	defer observeBranch(string(models.SearchModeUsers), time.Now())

	accounts, err := s.content.MatchAccounts(ctx, tokens)
	if err != nil {
		return nil, internal("user search failed", err)
	}

	results := make([]models.SearchResult, 0, len(accounts))
	for _, account := range accounts {
		results = append(results, models.UserResult(account))
	}
	searchBranchResults.WithLabelValues(string(models.SearchModeUsers)).Observe(float64(len(results)))
	return results, nil
}

func (s *SearchService) searchPosts(ctx context.Context, tokens []string, viewerID string) ([]models.SearchResult, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	defer observeBranch(string(models.SearchModePosts), time.Now())

	matched, err := s.content.MatchPosts(ctx, tokens)
	if err != nil {
		return nil, internal("post search failed", err)
	}
	visible, err := Filter(ctx, s.visibility, viewerID, matched)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(visible))
	for _, post := range visible {
		results = append(results, models.PostResult(post))
	}
	searchBranchResults.WithLabelValues(string(models.SearchModePosts)).Observe(float64(len(results)))
	return results, nil
}

func (s *SearchService) searchPolls(ctx context.Context, tokens []string, viewerID string) ([]models.SearchResult, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	defer observeBranch(string(models.SearchModePolls), time.Now())

	matched, err := s.content.MatchPolls(ctx, tokens)
	if err != nil {
		return nil, internal("poll search failed", err)
	}
	visible, err := Filter(ctx, s.visibility, viewerID, matched)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(visible))
	for _, poll := range visible {
		results = append(results, models.PollResult(poll))
	}
	searchBranchResults.WithLabelValues(string(models.SearchModePolls)).Observe(float64(len(results)))
	return results, nil
}

func observeBranch(branch string, start time.Time) {
	searchBranchDuration.WithLabelValues(branch).Observe(time.Since(start).Seconds())
}
