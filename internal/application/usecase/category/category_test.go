package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/sqlitetest"
)

type countingCache struct {
	invalidated int
}

func (c *countingCache) Get(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }
func (c *countingCache) Set(context.Context, uuid.UUID, string, any, time.Duration) error {
	return nil
}
func (c *countingCache) InvalidateUser(context.Context, uuid.UUID) error {
	c.invalidated++
	return nil
}

func setup(t *testing.T) (*sqlitetest.Ledger, adapter.CategoryRepository) {
	t.Helper()

	db := sqlitetest.Open(t)
	return sqlitetest.NewLedger(t, db, "alice"), persistence.NewCategoryRepository(db)
}

func categoryCode(err error) domainerror.CategoryErrorCode {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		return catErr.Code
	}
	return ""
}

func TestCreateCategory(t *testing.T) {
	ledger, repo := setup(t)
	uc := NewCreateCategoryUseCase(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    CreateCategoryInput
		wantCode domainerror.CategoryErrorCode
	}{
		{
			name:  "new expense category",
			input: CreateCategoryInput{UserID: ledger.User.ID, Name: "  Pets ", Type: entity.CategoryTypeExpense},
		},
		{
			name:     "empty name",
			input:    CreateCategoryInput{UserID: ledger.User.ID, Name: "   ", Type: entity.CategoryTypeExpense},
			wantCode: domainerror.ErrCodeInvalidCategoryName,
		},
		{
			name:     "unknown type",
			input:    CreateCategoryInput{UserID: ledger.User.ID, Name: "Misc", Type: "transfer"},
			wantCode: domainerror.ErrCodeInvalidCategoryType,
		},
		{
			name:     "duplicate of a default",
			input:    CreateCategoryInput{UserID: ledger.User.ID, Name: "Food", Type: entity.CategoryTypeExpense},
			wantCode: domainerror.ErrCodeCategoryNameExists,
		},
		{
			name:  "same name with the other type",
			input: CreateCategoryInput{UserID: ledger.User.ID, Name: "Food", Type: entity.CategoryTypeIncome},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Execute(ctx, tt.input)
			if tt.wantCode != "" {
				if code := categoryCode(err); code != tt.wantCode {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.IsDefault {
				t.Error("user categories must not be default")
			}
			if got.Name == "" || got.Name[0] == ' ' {
				t.Errorf("expected trimmed name, got %q", got.Name)
			}
		})
	}
}

func TestListCategories(t *testing.T) {
	ledger, repo := setup(t)
	uc := NewListCategoriesUseCase(repo)
	ctx := context.Background()

	all, err := uc.Execute(ctx, ListCategoriesInput{UserID: ledger.User.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := len(entity.DefaultIncomeCategories) + len(entity.DefaultExpenseCategories)
	if len(all) != want {
		t.Errorf("expected %d categories, got %d", want, len(all))
	}

	income := entity.CategoryTypeIncome
	incomeOnly, err := uc.Execute(ctx, ListCategoriesInput{UserID: ledger.User.ID, Type: &income})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range incomeOnly {
		if c.Type != entity.CategoryTypeIncome {
			t.Errorf("expected only income categories, got %s", c.Type)
		}
	}

	bad := entity.CategoryType("other")
	if _, err := uc.Execute(ctx, ListCategoriesInput{UserID: ledger.User.ID, Type: &bad}); categoryCode(err) != domainerror.ErrCodeInvalidCategoryType {
		t.Errorf("expected invalid type error, got %v", err)
	}
}

func TestRenameCategory(t *testing.T) {
	ledger, repo := setup(t)
	cache := &countingCache{}
	uc := NewRenameCategoryUseCase(repo, cache)
	ctx := context.Background()
	food := ledger.Categories["Food"]

	renamed, err := uc.Execute(ctx, RenameCategoryInput{CategoryID: food.ID, UserID: ledger.User.ID, Name: "Groceries"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renamed.Name != "Groceries" || renamed.Type != entity.CategoryTypeExpense {
		t.Errorf("unexpected category %+v", renamed)
	}
	if cache.invalidated != 1 {
		t.Errorf("expected cache invalidation, got %d", cache.invalidated)
	}

	if _, err := uc.Execute(ctx, RenameCategoryInput{CategoryID: food.ID, UserID: ledger.User.ID, Name: "Transport"}); categoryCode(err) != domainerror.ErrCodeCategoryNameExists {
		t.Errorf("expected name conflict, got %v", err)
	}

	if _, err := uc.Execute(ctx, RenameCategoryInput{CategoryID: food.ID, UserID: uuid.New(), Name: "Mine"}); categoryCode(err) != domainerror.ErrCodeCategoryNotFound {
		t.Errorf("expected not found for another user, got %v", err)
	}
}

func TestDeleteCategory(t *testing.T) {
	ledger, repo := setup(t)
	create := NewCreateCategoryUseCase(repo)
	uc := NewDeleteCategoryUseCase(repo)
	ctx := context.Background()

	pets, err := create.Execute(ctx, CreateCategoryInput{UserID: ledger.User.ID, Name: "Pets", Type: entity.CategoryTypeExpense})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	ledger.Categories["Pets"] = pets

	t.Run("default category", func(t *testing.T) {
		err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: ledger.Categories["Food"].ID, UserID: ledger.User.ID})
		if categoryCode(err) != domainerror.ErrCodeDefaultCategoryDelete {
			t.Errorf("expected default delete error, got %v", err)
		}
	})

	t.Run("referenced category", func(t *testing.T) {
		ledger.Add(t, "Pets", "30", valueobject.Date(2026, 3, 1), "vet")
		err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: pets.ID, UserID: ledger.User.ID})
		if categoryCode(err) != domainerror.ErrCodeCategoryInUse {
			t.Errorf("expected in use error, got %v", err)
		}
	})

	t.Run("unused category", func(t *testing.T) {
		books, err := create.Execute(ctx, CreateCategoryInput{UserID: ledger.User.ID, Name: "Books", Type: entity.CategoryTypeExpense})
		if err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
		if err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: books.ID, UserID: ledger.User.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.FindByID(ctx, books.ID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected category to be gone, got %v", err)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: uuid.New(), UserID: ledger.User.ID})
		if categoryCode(err) != domainerror.ErrCodeCategoryNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})
}
