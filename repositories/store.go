package repositories

import (
	"context"
	"errors"

	"friendgraph-api/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrPreconditionFailed is returned by a conditional write whose
	// expected version no longer matches the stored one.
	ErrPreconditionFailed = errors.New("precondition failed")
)

// AccountStore reads accounts and writes their relation sets.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
	// FindByIDs returns the accounts that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]models.Account, error)
	// ConditionalUpdate writes only the relation sets of account id, and only
	// if its version still equals expectedVersion. The version is incremented.
	ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, fields models.RelationFields) error
	// Atomically runs fn against a store bound to a single transaction.
	Atomically(ctx context.Context, fn func(store AccountStore) error) error
	// ListAfter pages through all accounts ordered by id.
	ListAfter(ctx context.Context, afterID string, limit int) ([]models.Account, error)
	// ListExcluding returns up to limit accounts whose id is not in exclude.
	ListExcluding(ctx context.Context, exclude []string, limit int) ([]models.Account, error)
}

// ContentStore runs the text matches behind search and reads polls.
// The Match methods return only records that match a token at a word start.
type ContentStore interface {
	MatchAccounts(ctx context.Context, tokens []string) ([]models.Account, error)
	MatchPosts(ctx context.Context, tokens []string) ([]models.Post, error)
	MatchPolls(ctx context.Context, tokens []string) ([]models.Poll, error)
	ListPolls(ctx context.Context, offset, limit int) ([]models.Poll, error)
	FindPoll(ctx context.Context, id string) (*models.Poll, error)
}
