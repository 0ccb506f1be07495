package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"boskoback/internal/config"
	"boskoback/internal/dto"
	"boskoback/internal/infra"
	"boskoback/internal/model"
	"boskoback/internal/repository"
	"boskoback/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrUnauthorized marks credential failures so handlers can answer 401 instead
// of the default 400.
var ErrUnauthorized = errors.New("invalid credentials")

// GoogleTokenVerifier abstracts the tokeninfo call for unit tests.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*infra.GoogleTokenInfo, error)
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	GoogleLogin(ctx context.Context, req dto.GoogleLoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

type authService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	verifier   GoogleTokenVerifier
	dispatcher EmailEnqueuer
	activity   ActivityRecorder
	cfg        *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	verifier GoogleTokenVerifier,
	dispatcher EmailEnqueuer,
	activity ActivityRecorder,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:      users,
		resets:     resets,
		verifier:   verifier,
		dispatcher: dispatcher,
		activity:   activity,
		cfg:        cfg,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !user.Active {
		return nil, ErrUnauthorized
	}
	// Federated-only accounts have no local password to compare against.
	if user.IsFederated() {
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}
	return s.tokenResponse(user)
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if existing, err := s.users.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.New("email already registered")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         model.RoleCustomer,
		Provider:     model.ProviderLocal,
		OrderEmails:  true,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, &user.ID, "user.registered", user.Email)
	return s.tokenResponse(user)
}

// GoogleLogin verifies the ID token, then finds or creates the account. An
// existing local account is upgraded to federated and its password cleared.
func (s *authService) GoogleLogin(ctx context.Context, req dto.GoogleLoginRequest) (*dto.AuthResponse, error) {
	info, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, info.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{
			Name:        info.Name,
			Email:       info.Email,
			Role:        model.RoleCustomer,
			Provider:    model.ProviderGoogle,
			OrderEmails: true,
			Active:      true,
		}
		if info.Picture != "" {
			pic := info.Picture
			user.AvatarURL = &pic
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		s.activity.Record(ctx, &user.ID, "user.registered", "google: "+user.Email)
	case err != nil:
		return nil, err
	default:
		if !user.Active {
			return nil, ErrUnauthorized
		}
		if user.Provider == model.ProviderLocal {
			user.Provider = model.ProviderGoogle
			user.PasswordHash = ""
			if err := s.users.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	return s.tokenResponse(user)
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint cannot be used to enumerate registered emails.
func (s *authService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil || !user.Active {
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)

	reset := &model.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return err
	}

	payload := worker.EmailJobPayload{
		ToEmail: user.Email,
		Subject: "Password reset",
		Body: fmt.Sprintf(
			"Hi %s,\n\nUse this code to reset your password (valid for 1 hour):\n\n%s\n\nIf you did not request a reset, ignore this email.",
			user.Name, token),
	}
	return s.dispatcher.EnqueueEmail(ctx, payload)
}

func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return errors.New("invalid or expired reset token")
	}

	reset, err := s.resets.FindByUserAndToken(ctx, user.ID, req.Token)
	if err != nil || !reset.Valid(time.Now()) {
		return errors.New("invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if user.Provider == model.ProviderGoogle {
		// A redeemed reset gives a federated account a local password again.
		user.Provider = model.ProviderLocal
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, reset.ID)
}

func (s *authService) tokenResponse(user *model.User) (*dto.AuthResponse, error) {
	expires := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"name":     user.Name,
		"email":    user.Email,
		"role":     user.Role,
		"provider": user.Provider,
		"exp":      time.Now().Add(expires).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        mapUser(user),
	}, nil
}
