package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"friendgraph-api/models"
	"friendgraph-api/repositories"
	"friendgraph-api/utils"
)

// memAccountStore is an in-memory AccountStore with the same versioning rules
// as the gorm repository.
type memAccountStore struct {
	mu       sync.Mutex
	accounts map[string]models.Account

	// beforeUpdate runs before each conditional write, outside the lock, so a
	// test can slip a competing write in between read and write.
	beforeUpdate func(id string)
	// failUpdateOn makes the conditional write of that id fail with a store error.
	failUpdateOn string
	findErr      error
}

func newMemAccountStore(accounts ...models.Account) *memAccountStore {
	s := &memAccountStore{accounts: make(map[string]models.Account)}
	for _, a := range accounts {
		if a.Friends == nil {
			a.Friends = models.IDSet{}
		}
		if a.PendingFriendRequests == nil {
			a.PendingFriendRequests = models.IDSet{}
		}
		s.accounts[a.ID] = a
	}
	return s
}

func account(id string, friends []string, pending []string) models.Account {
	return models.Account{
		ID:                    id,
		FirstName:             id,
		LastName:              id,
		Username:              id,
		Friends:               models.IDSet(friends),
		PendingFriendRequests: models.IDSet(pending),
	}
}

func (s *memAccountStore) get(id string) models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

func (s *memAccountStore) FindByID(_ context.Context, id string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	a, ok := s.accounts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (s *memAccountStore) FindByIDs(_ context.Context, ids []string) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	out := []models.Account{}
	for _, id := range ids {
		if a, ok := s.accounts[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAccountStore) ConditionalUpdate(_ context.Context, id string, expectedVersion int64, fields models.RelationFields) error {
	if s.beforeUpdate != nil {
		s.beforeUpdate(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.failUpdateOn {
		return errors.New("disk on fire")
	}
	a, ok := s.accounts[id]
	if !ok || a.Version != expectedVersion {
		return repositories.ErrPreconditionFailed
	}
	a.Friends = append(models.IDSet{}, fields.Friends...)
	a.PendingFriendRequests = append(models.IDSet{}, fields.PendingFriendRequests...)
	a.Version++
	s.accounts[id] = a
	return nil
}

func (s *memAccountStore) Atomically(ctx context.Context, fn func(store repositories.AccountStore) error) error {
	tx := &memTx{memAccountStore: s, undo: make(map[string]models.Account)}
	if err := fn(tx); err != nil {
		s.mu.Lock()
		for id, previous := range tx.undo {
			s.accounts[id] = previous
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// memTx remembers what its own writes replaced so only they are undone on
// rollback; writes made by others in the meantime survive, as in a database.
type memTx struct {
	*memAccountStore
	undo map[string]models.Account
}

func (tx *memTx) ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, fields models.RelationFields) error {
	before := tx.get(id)
	if err := tx.memAccountStore.ConditionalUpdate(ctx, id, expectedVersion, fields); err != nil {
		return err
	}
	if _, seen := tx.undo[id]; !seen {
		tx.undo[id] = before
	}
	return nil
}

func (s *memAccountStore) ListAfter(_ context.Context, afterID string, limit int) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.accounts))
	for id := range s.accounts {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]models.Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.accounts[id])
	}
	return out, nil
}

func (s *memAccountStore) ListExcluding(_ context.Context, exclude []string, limit int) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	ids := []string{}
	for id := range s.accounts {
		if !skip[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := []models.Account{}
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		out = append(out, s.accounts[id])
	}
	return out, nil
}

// memContentStore matches content with the same word rule as the repository.
type memContentStore struct {
	accounts []models.Account
	posts    []models.Post
	polls    []models.Poll

	// calls records which Match methods ran.
	mu    sync.Mutex
	calls []string
	// blockPolls makes MatchPolls wait for cancellation.
	blockPolls bool
	postErr    error
}

func (s *memContentStore) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *memContentStore) called() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.calls...)
}

func (s *memContentStore) MatchAccounts(_ context.Context, tokens []string) ([]models.Account, error) {
	s.record("accounts")
	m := utils.NewWordMatcher(tokens)
	out := []models.Account{}
	for _, a := range s.accounts {
		if m.MatchAny(a.FirstName, a.LastName) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memContentStore) MatchPosts(_ context.Context, tokens []string) ([]models.Post, error) {
	s.record("posts")
	if s.postErr != nil {
		return nil, s.postErr
	}
	m := utils.NewWordMatcher(tokens)
	out := []models.Post{}
	for _, p := range s.posts {
		if m.MatchAny(p.Text) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memContentStore) MatchPolls(ctx context.Context, tokens []string) ([]models.Poll, error) {
	s.record("polls")
	if s.blockPolls {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	m := utils.NewWordMatcher(tokens)
	out := []models.Poll{}
	for _, p := range s.polls {
		if m.MatchAny(p.Question, p.Description) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memContentStore) ListPolls(_ context.Context, offset, limit int) ([]models.Poll, error) {
	if offset >= len(s.polls) {
		return []models.Poll{}, nil
	}
	end := offset + limit
	if end > len(s.polls) {
		end = len(s.polls)
	}
	return append([]models.Poll{}, s.polls[offset:end]...), nil
}

func (s *memContentStore) FindPoll(_ context.Context, id string) (*models.Poll, error) {
	for _, p := range s.polls {
		if p.ID == id {
			poll := p
			return &poll, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.RelationshipEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event models.RelationshipEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}
