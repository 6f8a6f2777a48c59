package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/sqlitetest"
)

type plainPasswords struct{}

func (plainPasswords) HashPassword(p string) (string, error) { return "hashed:" + p, nil }

func (plainPasswords) VerifyPassword(hash, p string) error {
	if hash != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(p string) error {
	if len(p) < 6 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// fakeTokens encodes the user id into both tokens.
type fakeTokens struct{}

func (fakeTokens) GenerateTokenPair(_ context.Context, userID uuid.UUID, _ string) (*adapter.TokenPair, error) {
	return &adapter.TokenPair{AccessToken: "access:" + userID.String(), RefreshToken: "refresh:" + userID.String(), ExpiresIn: 900}, nil
}

func (fakeTokens) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (fakeTokens) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	const prefix = "refresh:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, domainerror.ErrInvalidToken
	}
	id, err := uuid.Parse(token[len(prefix):])
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{UserID: id, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type countingCache struct{ invalidated []uuid.UUID }

func (c *countingCache) Get(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }
func (c *countingCache) Set(context.Context, uuid.UUID, string, any, time.Duration) error {
	return nil
}
func (c *countingCache) InvalidateUser(_ context.Context, id uuid.UUID) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

func authCode(err error) domainerror.AuthErrorCode {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}

func newUsers(t *testing.T) adapter.UserRepository {
	t.Helper()
	return persistence.NewUserRepository(sqlitetest.Open(t))
}

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    RegisterUserInput
		wantCode domainerror.AuthErrorCode
	}{
		{"missing fields", RegisterUserInput{Username: "alice", Password: "secret1"}, domainerror.ErrCodeMissingFields},
		{"short username", RegisterUserInput{Username: "al", Email: "a@example.com", Password: "secret1"}, domainerror.ErrCodeInvalidUsername},
		{"bad characters", RegisterUserInput{Username: "al ice", Email: "a@example.com", Password: "secret1"}, domainerror.ErrCodeInvalidUsername},
		{"bad email", RegisterUserInput{Username: "alice", Email: "alice@", Password: "secret1"}, domainerror.ErrCodeInvalidEmail},
		{"weak password", RegisterUserInput{Username: "alice", Email: "a@example.com", Password: "abc"}, domainerror.ErrCodeWeakPassword},
		{"confirmation mismatch", RegisterUserInput{Username: "alice", Email: "a@example.com", Password: "secret1", ConfirmPassword: "secret2"}, domainerror.ErrCodeInvalidConfirmation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRegisterUserUseCase(newUsers(t), plainPasswords{}, fakeTokens{})
			_, err := uc.Execute(ctx, tt.input)
			if code := authCode(err); code != tt.wantCode {
				t.Errorf("code = %q, want %q (err = %v)", code, tt.wantCode, err)
			}
		})
	}

	t.Run("registers and seeds categories", func(t *testing.T) {
		db := sqlitetest.Open(t)
		users := persistence.NewUserRepository(db)
		uc := NewRegisterUserUseCase(users, plainPasswords{}, fakeTokens{})

		out, err := uc.Execute(ctx, RegisterUserInput{Username: "alice", Email: " Alice@Example.com ", Password: "secret1", ConfirmPassword: "secret1"})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.User.Email != "alice@example.com" || out.AccessToken == "" {
			t.Errorf("out = %+v", out)
		}
		categories, err := persistence.NewCategoryRepository(db).FindByUser(ctx, out.User.ID, nil)
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		want := len(entity.DefaultIncomeCategories) + len(entity.DefaultExpenseCategories)
		if len(categories) != want {
			t.Errorf("seeded %d categories, want %d", len(categories), want)
		}

		_, err = uc.Execute(ctx, RegisterUserInput{Username: "alice", Email: "other@example.com", Password: "secret1"})
		if authCode(err) != domainerror.ErrCodeUsernameExists {
			t.Errorf("duplicate username: err = %v", err)
		}
		_, err = uc.Execute(ctx, RegisterUserInput{Username: "alice2", Email: "alice@example.com", Password: "secret1"})
		if authCode(err) != domainerror.ErrCodeEmailExists {
			t.Errorf("duplicate email: err = %v", err)
		}
	})
}

func TestLoginRefreshAndDelete(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)
	registered, err := NewRegisterUserUseCase(users, plainPasswords{}, fakeTokens{}).
		Execute(ctx, RegisterUserInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	login := NewLoginUserUseCase(users, plainPasswords{}, fakeTokens{})

	for _, id := range []string{"alice", "ALICE@example.com"} {
		out, err := login.Execute(ctx, LoginUserInput{Login: id, Password: "secret1"})
		if err != nil || out.User.ID != registered.User.ID {
			t.Errorf("login as %q: out = %v, err = %v", id, out, err)
		}
	}
	for _, in := range []LoginUserInput{
		{Login: "alice", Password: "wrong"},
		{Login: "nobody", Password: "secret1"},
	} {
		if _, err := login.Execute(ctx, in); authCode(err) != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("login %+v: err = %v", in, err)
		}
	}

	refresh := NewRefreshTokenUseCase(users, fakeTokens{})
	if _, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken}); err != nil {
		t.Errorf("refresh: %v", err)
	}
	if _, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: "garbage"}); authCode(err) != domainerror.ErrCodeInvalidToken {
		t.Errorf("refresh garbage: err = %v", err)
	}

	cache := &countingCache{}
	del := NewDeleteAccountUseCase(users, plainPasswords{}, cache)
	if err := del.Execute(ctx, DeleteAccountInput{UserID: registered.User.ID, Password: "wrong"}); authCode(err) != domainerror.ErrCodeInvalidCredentials {
		t.Errorf("delete with wrong password: err = %v", err)
	}
	if err := del.Execute(ctx, DeleteAccountInput{UserID: registered.User.ID, Password: "secret1"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cache.invalidated) != 1 {
		t.Errorf("cache invalidated %d times", len(cache.invalidated))
	}

	if _, err := NewGetProfileUseCase(users).Execute(ctx, registered.User.ID); authCode(err) != domainerror.ErrCodeUserNotFound {
		t.Errorf("profile after delete: err = %v", err)
	}
	if _, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken}); authCode(err) != domainerror.ErrCodeInvalidToken {
		t.Errorf("refresh after delete: err = %v", err)
	}
}
