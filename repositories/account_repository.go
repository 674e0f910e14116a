package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"friendgraph-api/models"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByID retrieves an account with its relation sets
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account %s: %w", id, err)
	}
	return &account, nil
}

// FindByIDs retrieves every existing account among ids
func (r *AccountRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Account, error) {
	if len(ids) == 0 {
		return []models.Account{}, nil
	}

	var accounts []models.Account
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	return accounts, nil
}

// ConditionalUpdate writes the relation sets of an account if nobody changed it since it was read
func (r *AccountRepository) ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, fields models.RelationFields) error {
	friends := fields.Friends
	if friends == nil {
		friends = models.IDSet{}
	}
	pending := fields.PendingFriendRequests
	if pending == nil {
		pending = models.IDSet{}
	}

	result := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"friends":                 friends,
			"pending_friend_requests": pending,
			"version":                 expectedVersion + 1,
			"updated_at":              time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update relations of %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPreconditionFailed
	}
	return nil
}

// Atomically runs fn inside a database transaction
func (r *AccountRepository) Atomically(ctx context.Context, fn func(store AccountStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AccountRepository{db: tx})
	})
}

func (r *AccountRepository) ListAfter(ctx context.Context, afterID string, limit int) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// ListExcluding returns up to limit accounts whose ids are not in exclude,
// drawn in random order.
func (r *AccountRepository) ListExcluding(ctx context.Context, exclude []string, limit int) ([]models.Account, error) {
	query := r.db.WithContext(ctx).Model(&models.Account{})
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var accounts []models.Account
	if err := query.Order(randomOrder(r.db)).Limit(limit).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list candidate accounts: %w", err)
	}
	return accounts, nil
}

func randomOrder(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}
