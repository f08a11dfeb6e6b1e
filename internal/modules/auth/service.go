// README: Registration and login flows: bcrypt credentials, phone OTP
// verification, JWT issuing.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"antar/internal/modules/user"
)

var (
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired code")
	ErrBadRequest         = errors.New("bad request")
)

type Service struct {
	users     user.Storage
	tokens    *TokenManager
	otps      OTPCache
	otpExpiry time.Duration
	logger    *slog.Logger
}

func NewService(users user.Storage, tokens *TokenManager, otps OTPCache, otpExpiry time.Duration, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, otps: otps, otpExpiry: otpExpiry, logger: logger}
}

type RegisterCommand struct {
	PhoneNumber string
	FullName    string
	Email       *string
	Password    string
	Role        user.Role
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*user.User, error) {
	if cmd.PhoneNumber == "" || cmd.FullName == "" || len(cmd.Password) < 6 {
		return nil, ErrBadRequest
	}
	if !cmd.Role.Valid() {
		cmd.Role = user.RolePassenger
	}
	if _, err := s.users.GetByPhone(ctx, cmd.PhoneNumber); err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &user.User{
		ID:             user.NewID(),
		PhoneNumber:    cmd.PhoneNumber,
		FullName:       cmd.FullName,
		Email:          cmd.Email,
		HashedPassword: string(hashed),
		Role:           cmd.Role,
		IsDriver:       cmd.Role == user.RoleDriver || cmd.Role == user.RoleBoth,
		Rating:         user.DefaultRating,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

type LoginResult struct {
	Token string
	User  *user.User
}

func (s *Service) Login(ctx context.Context, phone, password string) (*LoginResult, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID, u.PhoneNumber, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

// RequestOTP generates a code for the phone and stores it for later
// verification. Delivery is out of band; the code is logged for development.
func (s *Service) RequestOTP(ctx context.Context, phone string) error {
	if phone == "" {
		return ErrBadRequest
	}
	code, err := GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.otps.Put(ctx, phone, code, s.otpExpiry); err != nil {
		return err
	}
	s.logger.Info("otp issued", "phone", phone, "code", code)
	return nil
}

// VerifyOTP consumes the stored code and, on success, returns a token for the
// matching account.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*LoginResult, error) {
	stored, ok := s.otps.Take(ctx, phone)
	if !ok || stored != code {
		return nil, ErrInvalidOTP
	}
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(u.ID, u.PhoneNumber, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

// Verify exposes token validation for HTTP middleware.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString)
}
