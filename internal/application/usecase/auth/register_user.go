// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *entity.User
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user registration. The default categories are stored with the user.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)

	if username == "" || email == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"username, email and password are required",
			nil,
		)
	}

	// Validate username format
	if !valueobject.IsValidUsername(username) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidUsername,
			"username must be 3-80 characters of letters, digits, '_' or '-'",
			domainerror.ErrInvalidUsername,
		)
	}

	// Validate email format
	if !valueobject.IsValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	// Validate password strength
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"passwords do not match",
			domainerror.ErrInvalidConfirmation,
		)
	}

	// Check uniqueness
	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameExists,
			"username already exists",
			domainerror.ErrUsernameAlreadyExists,
		)
	}
	exists, err = uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, email, passwordHash)
	if err := uc.userRepo.Create(ctx, user, entity.DefaultCategories(user.ID)); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &RegisterUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
