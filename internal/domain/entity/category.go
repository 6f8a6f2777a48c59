package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether the type is income or expense.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// Category groups transactions of one type for one user.
// (UserID, Name, Type) is unique.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      CategoryType
	IsDefault bool
	CreatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType, isDefault bool) *Category {
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		IsDefault: isDefault,
		CreatedAt: time.Now().UTC(),
	}
}

// DefaultIncomeCategories are seeded for every new user.
var DefaultIncomeCategories = []string{
	"Salary", "Bonus", "Grants", "Investment Income", "Part-time Income", "Other Income",
}

// DefaultExpenseCategories are seeded for every new user.
var DefaultExpenseCategories = []string{
	"Food", "Transport", "Housing", "Clothing", "Entertainment", "Education",
	"Medical", "Insurance", "Telecom", "Household Supplies", "Other Expense",
}

// DefaultCategories builds the default category set for a user.
func DefaultCategories(userID uuid.UUID) []*Category {
	categories := make([]*Category, 0, len(DefaultIncomeCategories)+len(DefaultExpenseCategories))
	for _, name := range DefaultIncomeCategories {
		categories = append(categories, NewCategory(userID, name, CategoryTypeIncome, true))
	}
	for _, name := range DefaultExpenseCategories {
		categories = append(categories, NewCategory(userID, name, CategoryTypeExpense, true))
	}
	return categories
}
