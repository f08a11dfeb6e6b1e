package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"antar/internal/modules/user"
	"antar/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserStore struct {
	byPhone map[string]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byPhone: make(map[string]*user.User)}
}

func (f *fakeUserStore) Create(_ context.Context, u *user.User) error {
	f.byPhone[u.PhoneNumber] = u
	return nil
}

func (f *fakeUserStore) Get(_ context.Context, id types.ID) (*user.User, error) {
	for _, u := range f.byPhone {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserStore) GetByPhone(_ context.Context, phone string) (*user.User, error) {
	u, ok := f.byPhone[phone]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *user.User) error {
	f.byPhone[u.PhoneNumber] = u
	return nil
}

func (f *fakeUserStore) SetCurrentPosition(_ context.Context, _ types.ID, _ types.Point) error {
	return nil
}

func newTestAuth(store user.Storage) *Service {
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewService(store, tokens, NewMemoryOTPCache(), 5*time.Minute, discardLogger())
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuth(store)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterCommand{
		PhoneNumber: "+62811",
		FullName:    "Sari",
		Password:    "hunter22",
		Role:        user.RoleDriver,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if u.Rating != user.DefaultRating {
		t.Errorf("rating = %v, want the default %v", u.Rating, user.DefaultRating)
	}
	if !u.IsDriver {
		t.Error("driver registration should set IsDriver")
	}
	if u.HashedPassword == "hunter22" {
		t.Error("password stored in plaintext")
	}

	res, err := svc.Login(ctx, "+62811", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token == "" {
		t.Error("Login() returned empty token")
	}

	claims, err := svc.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, u.ID)
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuth(store)
	ctx := context.Background()

	cmd := RegisterCommand{PhoneNumber: "+62811", FullName: "Sari", Password: "hunter22"}
	if _, err := svc.Register(ctx, cmd); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := svc.Register(ctx, cmd); !errors.Is(err, ErrPhoneTaken) {
		t.Errorf("second Register() err = %v, want ErrPhoneTaken", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuth(newFakeUserStore())
	tests := []struct {
		name string
		cmd  RegisterCommand
	}{
		{"missing phone", RegisterCommand{FullName: "Sari", Password: "hunter22"}},
		{"missing name", RegisterCommand{PhoneNumber: "+62811", Password: "hunter22"}},
		{"short password", RegisterCommand{PhoneNumber: "+62811", FullName: "Sari", Password: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tt.cmd); !errors.Is(err, ErrBadRequest) {
				t.Errorf("Register() err = %v, want ErrBadRequest", err)
			}
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuth(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterCommand{PhoneNumber: "+62811", FullName: "Sari", Password: "hunter22"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Login(ctx, "+62811", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "+62899", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(unknown phone) err = %v, want ErrInvalidCredentials", err)
	}
}

func TestOTPFlow(t *testing.T) {
	store := newFakeUserStore()
	cache := NewMemoryOTPCache()
	tokens := NewTokenManager("test-secret", time.Hour)
	svc := NewService(store, tokens, cache, 5*time.Minute, discardLogger())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterCommand{PhoneNumber: "+62811", FullName: "Sari", Password: "hunter22"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := svc.RequestOTP(ctx, "+62811"); err != nil {
		t.Fatalf("RequestOTP() error = %v", err)
	}

	// Read the stored code directly; Take evicts, so put it back for the
	// verification step.
	code, ok := cache.Take(ctx, "+62811")
	if !ok {
		t.Fatal("no code stored after RequestOTP")
	}
	if err := cache.Put(ctx, "+62811", code, time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	res, err := svc.VerifyOTP(ctx, "+62811", code)
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}
	if res.Token == "" {
		t.Error("VerifyOTP() returned empty token")
	}

	// The code was consumed; replay fails.
	if _, err := svc.VerifyOTP(ctx, "+62811", code); !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("replayed VerifyOTP() err = %v, want ErrInvalidOTP", err)
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	store := newFakeUserStore()
	cache := NewMemoryOTPCache()
	tokens := NewTokenManager("test-secret", time.Hour)
	svc := NewService(store, tokens, cache, 5*time.Minute, discardLogger())
	ctx := context.Background()

	if err := cache.Put(ctx, "+62811", "123456", time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := svc.VerifyOTP(ctx, "+62811", "654321"); !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("VerifyOTP() err = %v, want ErrInvalidOTP", err)
	}
}
