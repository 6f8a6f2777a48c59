package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/sqlitetest"
)

type fixture struct {
	db         *gorm.DB
	user       *entity.User
	categories map[string]*entity.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := sqlitetest.Open(t)
	user := entity.NewUser("alice", "alice@example.com", "hash")
	categories := entity.DefaultCategories(user.ID)
	if err := NewUserRepository(db).Create(context.Background(), user, categories); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	byName := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}
	return &fixture{db: db, user: user, categories: byName}
}

func (f *fixture) addTransaction(t *testing.T, category string, amount string, date time.Time, description string) *entity.Transaction {
	t.Helper()

	c, ok := f.categories[category]
	if !ok {
		t.Fatalf("unknown category %q", category)
	}
	txn := entity.NewTransaction(
		f.user.ID,
		c.ID,
		decimal.RequireFromString(amount),
		entity.TransactionType(c.Type),
		date,
		description,
	)
	if err := NewTransactionRepository(f.db).Create(context.Background(), txn); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return txn
}

func day(y int, m time.Month, d int) time.Time {
	return valueobject.Date(y, m, d)
}
