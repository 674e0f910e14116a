package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"friendgraph-api/database"
	"friendgraph-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createAccount(t *testing.T, db *gorm.DB, id, first, last string) models.Account {
	t.Helper()
	account := models.Account{
		ID:                    id,
		FirstName:             first,
		LastName:              last,
		Username:              id,
		Friends:               models.IDSet{},
		PendingFriendRequests: models.IDSet{},
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}

func TestAccountRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	createAccount(t, db, "a", "Alice", "Walker")

	account, err := repo.FindByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.FirstName)
	assert.Empty(t, account.Friends)

	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_FindByIDs_SkipsMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	createAccount(t, db, "a", "Alice", "Walker")
	createAccount(t, db, "b", "Bob", "Stone")

	accounts, err := repo.FindByIDs(context.Background(), []string{"a", "b", "zzz"})
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	accounts, err = repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAccountRepository_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	createAccount(t, db, "a", "Alice", "Walker")

	err := repo.ConditionalUpdate(ctx, "a", 0, models.RelationFields{
		Friends:               models.IDSet{"b"},
		PendingFriendRequests: models.IDSet{"c"},
	})
	require.NoError(t, err)

	account, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.IDSet{"b"}, account.Friends)
	assert.Equal(t, models.IDSet{"c"}, account.PendingFriendRequests)
	assert.Equal(t, int64(1), account.Version)
	assert.Equal(t, "Alice", account.FirstName, "unrelated fields are left alone")

	// A writer holding the stale version loses.
	err = repo.ConditionalUpdate(ctx, "a", 0, models.RelationFields{})
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	account, err = repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.IDSet{"b"}, account.Friends)
}

func TestAccountRepository_AtomicallyRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	createAccount(t, db, "a", "Alice", "Walker")
	createAccount(t, db, "b", "Bob", "Stone")

	errBoom := errors.New("boom")
	err := repo.Atomically(ctx, func(store AccountStore) error {
		if err := store.ConditionalUpdate(ctx, "a", 0, models.RelationFields{Friends: models.IDSet{"b"}}); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	account, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, account.Friends)
	assert.Equal(t, int64(0), account.Version)
}

func TestAccountRepository_ListAfter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	for _, id := range []string{"c", "a", "b"} {
		createAccount(t, db, id, "First", "Last")
	}

	page, err := repo.ListAfter(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a", page[0].ID)
	assert.Equal(t, "b", page[1].ID)

	page, err = repo.ListAfter(ctx, "b", 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].ID)
}

func TestAccountRepository_ListExcluding(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	for _, id := range []string{"a", "b", "c"} {
		createAccount(t, db, id, "First", "Last")
	}

	accounts, err := repo.ListExcluding(ctx, []string{"a", "c"}, 10)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "b", accounts[0].ID)
}

func TestAccountRepository_ListExcluding_RandomOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	for i := 0; i < 10; i++ {
		createAccount(t, db, fmt.Sprintf("acct-%02d", i), "First", "Last")
	}

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		accounts, err := repo.ListExcluding(ctx, []string{"acct-00"}, 1)
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.NotEqual(t, "acct-00", accounts[0].ID)
		seen[accounts[0].ID] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "candidates should not always come back in storage order")
}
