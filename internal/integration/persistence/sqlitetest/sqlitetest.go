// Package sqlitetest opens throwaway in-memory databases for tests.
package sqlitetest

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
)

// Open returns an isolated in-memory database with every table migrated.
// The database is closed when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// Ledger is a user with the default categories, indexed by name.
type Ledger struct {
	DB         *gorm.DB
	User       *entity.User
	Categories map[string]*entity.Category
}

// NewLedger inserts a user and its default categories.
func NewLedger(t testing.TB, db *gorm.DB, username string) *Ledger {
	t.Helper()

	user := entity.NewUser(username, username+"@example.com", "hash")
	if err := db.Create(model.UserFromEntity(user)).Error; err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}

	l := &Ledger{DB: db, User: user, Categories: map[string]*entity.Category{}}
	for _, c := range entity.DefaultCategories(user.ID) {
		if err := db.Create(model.CategoryFromEntity(c)).Error; err != nil {
			t.Fatalf("failed to insert category: %v", err)
		}
		l.Categories[c.Name] = c
	}
	return l
}

// Add inserts a transaction in the named category. The type follows the category.
func (l *Ledger) Add(t testing.TB, category, amount string, date time.Time, description string) *entity.Transaction {
	t.Helper()

	c, ok := l.Categories[category]
	if !ok {
		t.Fatalf("unknown category %q", category)
	}
	txn := entity.NewTransaction(l.User.ID, c.ID, decimal.RequireFromString(amount),
		entity.TransactionType(c.Type), date, description)
	if err := l.DB.Create(model.TransactionFromEntity(txn)).Error; err != nil {
		t.Fatalf("failed to insert transaction: %v", err)
	}
	return txn
}
