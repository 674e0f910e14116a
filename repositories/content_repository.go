package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"friendgraph-api/models"
	"friendgraph-api/utils"
	"gorm.io/gorm"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// likeAny narrows a query to rows where any of columns contains any of tokens.
// It is only a prefilter: the word-start rule is applied afterwards in Go.
func likeAny(query *gorm.DB, columns []string, tokens []string) *gorm.DB {
	clauses := make([]string, 0, len(columns)*len(tokens))
	args := make([]interface{}, 0, len(columns)*len(tokens))
	for _, token := range tokens {
		pattern := utils.LikeContains(token)
		for _, column := range columns {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '%s'", column, utils.LikeEscapeChar))
			args = append(args, pattern)
		}
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

// MatchAccounts finds accounts whose first or last name has a word starting with a token.
// Relation sets are never loaded.
func (r *ContentRepository) MatchAccounts(ctx context.Context, tokens []string) ([]models.Account, error) {
	matcher := utils.NewWordMatcher(tokens)
	if matcher == nil {
		return []models.Account{}, nil
	}

	var candidates []models.Account
	query := r.db.WithContext(ctx).Model(&models.Account{}).
		Select("id", "first_name", "last_name", "userpic")
	if err := likeAny(query, []string{"first_name", "last_name"}, tokens).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("match accounts: %w", err)
	}

	accounts := make([]models.Account, 0, len(candidates))
	for _, account := range candidates {
		if matcher.MatchAny(account.FirstName, account.LastName) {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// MatchPosts finds posts whose text has a word starting with a token
func (r *ContentRepository) MatchPosts(ctx context.Context, tokens []string) ([]models.Post, error) {
	matcher := utils.NewWordMatcher(tokens)
	if matcher == nil {
		return []models.Post{}, nil
	}

	var candidates []models.Post
	query := r.db.WithContext(ctx).Model(&models.Post{}).
		Select("id", "owner_id", "text", "updated_at")
	if err := likeAny(query, []string{"text"}, tokens).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("match posts: %w", err)
	}

	posts := make([]models.Post, 0, len(candidates))
	for _, post := range candidates {
		if matcher.MatchAny(post.Text) {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// MatchPolls finds polls whose question or description has a word starting with a token
func (r *ContentRepository) MatchPolls(ctx context.Context, tokens []string) ([]models.Poll, error) {
	matcher := utils.NewWordMatcher(tokens)
	if matcher == nil {
		return []models.Poll{}, nil
	}

	var candidates []models.Poll
	query := r.db.WithContext(ctx).Model(&models.Poll{}).
		Select("id", "owner_id", "question", "description", "is_friend_only", "updated_at")
	if err := likeAny(query, []string{"question", "description"}, tokens).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("match polls: %w", err)
	}

	polls := make([]models.Poll, 0, len(candidates))
	for _, poll := range candidates {
		if matcher.MatchAny(poll.Question, poll.Description) {
			polls = append(polls, poll)
		}
	}
	return polls, nil
}

// ListPolls returns polls, most recently updated first
func (r *ContentRepository) ListPolls(ctx context.Context, offset, limit int) ([]models.Poll, error) {
	var polls []models.Poll
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&polls).Error
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	return polls, nil
}

func (r *ContentRepository) FindPoll(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&poll).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find poll %s: %w", id, err)
	}
	return &poll, nil
}
