package database

import (
	"fmt"
	"log/slog"
	"time"

	"friendgraph-api/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func Initialize(driver, databaseURL string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(databaseURL)
	case DriverSQLite:
		dialector = sqlite.Open(databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite serialises writers; a single connection also keeps an
		// in-memory database alive for the lifetime of the pool.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	return db, nil
}

// OpenInMemory opens and migrates a private in-memory SQLite database.
func OpenInMemory() (*gorm.DB, error) {
	db, err := Initialize(DriverSQLite, ":memory:")
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Post{},
		&models.Poll{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// MySQL has no IF NOT EXISTS for indexes, so failures here are only logged.
	if err := db.Exec("CREATE INDEX idx_posts_owner_updated ON posts(owner_id, updated_at)").Error; err != nil {
		slog.Debug("could not create index for posts", "error", err)
	}

	if err := db.Exec("CREATE INDEX idx_polls_owner_updated ON polls(owner_id, updated_at)").Error; err != nil {
		slog.Debug("could not create index for polls", "error", err)
	}

	return nil
}

// SeedData populates an empty database with a small friend graph for development.
func SeedData(db *gorm.DB) error {
	var accountCount int64
	if err := db.Model(&models.Account{}).Count(&accountCount).Error; err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}

	if accountCount > 0 {
		slog.Info("database already has data, skipping seed")
		return nil
	}

	now := time.Now()
	// alice and bob are friends, carol has asked alice to be her friend.
	accounts := []models.Account{
		{
			ID:                    "user-alice",
			FirstName:             "Alice",
			LastName:              "Walker",
			Username:              "alice",
			Joined:                now,
			LastSeen:              now,
			Friends:               models.IDSet{"user-bob"},
			PendingFriendRequests: models.IDSet{"user-carol"},
		},
		{
			ID:                    "user-bob",
			FirstName:             "Bob",
			LastName:              "Stone",
			Username:              "bob",
			Joined:                now,
			LastSeen:              now,
			Friends:               models.IDSet{"user-alice"},
			PendingFriendRequests: models.IDSet{},
		},
		{
			ID:                    "user-carol",
			FirstName:             "Carol",
			LastName:              "Bobbins",
			Username:              "carol",
			Joined:                now,
			LastSeen:              now,
			Friends:               models.IDSet{},
			PendingFriendRequests: models.IDSet{},
		},
	}

	for _, account := range accounts {
		if err := db.Create(&account).Error; err != nil {
			slog.Warn("could not create seed account", "username", account.Username, "error", err)
		}
	}

	posts := []models.Post{
		{ID: uuid.New().String(), OwnerID: "user-alice", Text: "Weekend hike up the ridge, who is in?"},
		{ID: uuid.New().String(), OwnerID: "user-bob", Text: "Finally finished the bookshelf"},
	}
	for _, post := range posts {
		if err := db.Create(&post).Error; err != nil {
			slog.Warn("could not create seed post", "id", post.ID, "error", err)
		}
	}

	polls := []models.Poll{
		{
			ID:           uuid.New().String(),
			OwnerID:      "user-alice",
			Question:     "Best hiking snack?",
			Description:  "Trail mix versus everything else",
			Options:      models.PollOptions{{Name: "Trail mix"}, {Name: "Chocolate"}},
			IsFriendOnly: true,
		},
		{
			ID:          uuid.New().String(),
			OwnerID:     "user-carol",
			Question:    "Tabs or spaces?",
			Description: "Settle it once and for all",
			Options:     models.PollOptions{{Name: "Tabs"}, {Name: "Spaces"}},
		},
	}
	for _, poll := range polls {
		if err := db.Create(&poll).Error; err != nil {
			slog.Warn("could not create seed poll", "id", poll.ID, "error", err)
		}
	}

	slog.Info("database seeded with test data", "accounts", len(accounts), "posts", len(posts), "polls", len(polls))
	return nil
}
