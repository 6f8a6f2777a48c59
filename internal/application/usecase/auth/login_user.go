package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// LoginUserInput represents the input for user login. Login accepts a username or an email.
type LoginUserInput struct {
	Login    string
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"login and password are required",
			nil,
		)
	}

	// Find user by username, then by email
	user, err := uc.userRepo.FindByUsername(ctx, login)
	if err != nil && strings.Contains(login, "@") {
		user, err = uc.userRepo.FindByEmail(ctx, normalizeEmail(login))
	}
	if err != nil {
		// Same error for unknown users and wrong passwords
		return nil, invalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         user,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid username, email or password",
		domainerror.ErrInvalidCredentials,
	)
}
