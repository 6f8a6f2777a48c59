package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID   uuid.UUID
	Password string
}

// DeleteAccountUseCase deletes an account and everything it owns.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	cache           adapter.ReadCache
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	cache adapter.ReadCache,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		cache:           cache,
	}
}

// Execute verifies the password and deletes the account.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid password",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return uc.cache.InvalidateUser(ctx, input.UserID)
}

// GetProfileUseCase returns the signed-in user.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute loads the user.
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return findUser(ctx, uc.userRepo, userID)
}

func findUser(ctx context.Context, repo adapter.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := repo.FindByID(ctx, userID)
	if err != nil && !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}
	return user, nil
}
