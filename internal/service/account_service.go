package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	"boskoback/internal/config"
	"boskoback/internal/dto"
	"boskoback/internal/model"
	"boskoback/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AccountService covers the self-service side of a signed-in user.
type AccountService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error
	Preferences(ctx context.Context, userID uuid.UUID) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req dto.PreferencesRequest) (*dto.PreferencesResponse, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, fh *multipart.FileHeader) (*dto.AvatarResponse, error)
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

type accountService struct {
	users    repository.UserRepository
	orders   repository.OrderRepository
	activity ActivityRecorder
	cfg      *config.Config
}

func NewAccountService(
	users repository.UserRepository,
	orders repository.OrderRepository,
	activity ActivityRecorder,
	cfg *config.Config,
) AccountService {
	return &accountService{users: users, orders: orders, activity: activity, cfg: cfg}
}

func (s *accountService) Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("account not found")
	}
	count, spend, err := s.orders.StatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{User: mapUser(user), OrderCount: count, TotalSpend: spend}, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("account not found")
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *accountService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return errors.New("account not found")
	}
	if user.IsFederated() {
		return errors.New("account has no local password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}
	if req.NewPassword == req.CurrentPassword {
		return errors.New("new password must differ from the current one")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.activity.Record(ctx, &userID, "account.password_changed", user.Email)
	return nil
}

func (s *accountService) Preferences(ctx context.Context, userID uuid.UUID) (*dto.PreferencesResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("account not found")
	}
	return &dto.PreferencesResponse{Newsletter: user.Newsletter, OrderEmails: user.OrderEmails}, nil
}

func (s *accountService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req dto.PreferencesRequest) (*dto.PreferencesResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("account not found")
	}
	if req.Newsletter != nil {
		user.Newsletter = *req.Newsletter
	}
	if req.OrderEmails != nil {
		user.OrderEmails = *req.OrderEmails
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.PreferencesResponse{Newsletter: user.Newsletter, OrderEmails: user.OrderEmails}, nil
}

// UploadAvatar stores the image under uploads/avatars and replaces the
// previous file. The stored URL is public, served from /uploads.
func (s *accountService) UploadAvatar(ctx context.Context, userID uuid.UUID, fh *multipart.FileHeader) (*dto.AvatarResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("account not found")
	}
	if fh.Size > s.cfg.MaxAvatarBytes {
		return nil, fmt.Errorf("avatar exceeds %d bytes", s.cfg.MaxAvatarBytes)
	}
	ext, ok := avatarExtensions[fh.Header.Get("Content-Type")]
	if !ok {
		return nil, errors.New("avatar must be a jpeg, png or webp image")
	}

	dir := filepath.Join(s.cfg.UploadDir, "avatars")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s_%d%s", userID, time.Now().Unix(), ext)

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	if user.AvatarURL != nil {
		old := filepath.Join(dir, path.Base(*user.AvatarURL))
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", old).Msg("previous avatar removal failed")
		}
	}

	url := s.cfg.PublicBaseURL + "/uploads/avatars/" + name
	user.AvatarURL = &url
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.AvatarResponse{AvatarURL: url}, nil
}

func (s *accountService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return errors.New("account not found")
	}
	// Self-deactivation honors the same lockout guard as the admin paths.
	if user.Role == model.RoleAdmin && user.Active {
		admins, err := s.users.CountActiveAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	if err := s.users.Deactivate(ctx, userID); err != nil {
		return err
	}
	s.activity.Record(ctx, &userID, "account.deactivated", user.Email)
	return nil
}
