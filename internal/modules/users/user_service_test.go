package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"charge-finder/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	RepositoryInterface
	usersByEmail map[string]*models.User
	created      []*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User, passwordHash string) (*models.User, error) {
	if _, exists := f.usersByEmail[user.Email]; exists {
		return nil, models.ErrConflict
	}
	user.ID = "user-1"
	user.PasswordHash = passwordHash
	f.created = append(f.created, user)
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func newUserService(repo RepositoryInterface) ServiceInterface {
	return NewService(repo, nil, nil, "test-secret", zap.NewNop())
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+4915123456789", true},
		{"0151 2345 6789", true},
		{"(030) 123-456-78", true},
		{"  +12025550123  ", true},
		{"123456789", false},       // nine digits
		{"+123-456-789", false},    // nine digits with separators
		{"", false},
		{"   ", false},
		{"abcdefghij", false},      // letters are stripped
		{"+49abc151234567", false}, // nine digits after stripping
		{"1234567890", true},       // exactly ten
	}

	for _, tc := range tests {
		err := validatePhone(tc.phone)
		if tc.valid && err != nil {
			t.Errorf("phone %q: expected valid, got %v", tc.phone, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("phone %q: expected rejection", tc.phone)
		}
		if !tc.valid && err != nil && !errors.Is(err, models.ErrValidation) {
			t.Errorf("phone %q: rejection must wrap ErrValidation, got %v", tc.phone, err)
		}
	}
}

func TestRegisterRejectsShortPhoneBeforeStorage(t *testing.T) {
	repo := &fakeUserRepo{usersByEmail: map[string]*models.User{}}
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		Phone:    "12345",
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("no user should be created on phone rejection")
	}
}

func TestRegisterIssuesSevenDayToken(t *testing.T) {
	repo := &fakeUserRepo{usersByEmail: map[string]*models.User{}}
	svc := newUserService(repo)

	resp, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		Phone:    "+4915123456789",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.PasswordHash != "" {
		t.Error("password hash leaked in response")
	}

	claims := &models.JwtCustomClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alice@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.IsAdmin {
		t.Error("fresh accounts must not carry the admin flag")
	}

	lifetime := time.Until(claims.ExpiresAt.Time)
	if lifetime < 7*24*time.Hour-time.Minute || lifetime > 7*24*time.Hour+time.Minute {
		t.Errorf("expected ~7 day expiry, got %v", lifetime)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{usersByEmail: map[string]*models.User{
		"taken@example.com": {ID: "user-9", Email: "taken@example.com"},
	}}
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Bob",
		Email:    "taken@example.com",
		Password: "supersecret",
		Phone:    "+4915123456789",
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginUniformFailure(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &fakeUserRepo{usersByEmail: map[string]*models.User{
		"alice@example.com": {ID: "user-1", Email: "alice@example.com", PasswordHash: string(hash)},
	}}
	svc := newUserService(repo)

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	_, errWrongPass := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "wrong"})

	if !errors.Is(errUnknown, models.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, models.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("valid login failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected an access token")
	}
}
