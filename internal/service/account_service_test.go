package service

// account_service_test.go
// Self-service profile, password change, and preference rules.

import (
	"context"
	"testing"

	"boskoback/internal/config"
	"boskoback/internal/dto"
	"boskoback/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountFixture(t *testing.T) (AccountService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	svc := NewAccountService(users, newStubOrderRepo(), noopActivity{}, &config.Config{})
	return svc, users
}

func seedAccount(t *testing.T, users *stubUserRepo, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Name:         "Ana Gomez",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
		Provider:     model.ProviderLocal,
		OrderEmails:  true,
		Active:       true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestChangePasswordSuccess(t *testing.T) {
	svc, users := newAccountFixture(t)
	u := seedAccount(t, users, "oldpassword1")

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "oldpassword1",
		NewPassword:     "newpassword1",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpassword1")))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, users := newAccountFixture(t)
	u := seedAccount(t, users, "oldpassword1")

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current password")
}

func TestChangePasswordSameAsCurrentRejected(t *testing.T) {
	svc, users := newAccountFixture(t)
	u := seedAccount(t, users, "oldpassword1")

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "oldpassword1",
		NewPassword:     "oldpassword1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestChangePasswordFederatedRejected(t *testing.T) {
	svc, users := newAccountFixture(t)
	u := seedAccount(t, users, "oldpassword1")
	u.Provider = model.ProviderGoogle
	u.PasswordHash = ""

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "oldpassword1",
		NewPassword:     "newpassword1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no local password")
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, users := newAccountFixture(t)
	u := seedAccount(t, users, "oldpassword1")

	name := "Ana Maria Gomez"
	resp, err := svc.UpdateProfile(context.Background(), u.ID, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria Gomez", resp.User.Name)
	assert.Nil(t, resp.User.Phone, "phone untouched when omitted")
}

func TestUpdatePreferences(t *testing.T) {
	svc, users := newAccountFixture(t)
	u := seedAccount(t, users, "oldpassword1")

	off := false
	on := true
	resp, err := svc.UpdatePreferences(context.Background(), u.ID, dto.PreferencesRequest{
		Newsletter:  &on,
		OrderEmails: &off,
	})
	require.NoError(t, err)
	assert.True(t, resp.Newsletter)
	assert.False(t, resp.OrderEmails)

	// omitted fields keep their value
	resp, err = svc.UpdatePreferences(context.Background(), u.ID, dto.PreferencesRequest{})
	require.NoError(t, err)
	assert.True(t, resp.Newsletter)
	assert.False(t, resp.OrderEmails)
}

func TestDeactivateAccount(t *testing.T) {
	svc, users := newAccountFixture(t)
	u := seedAccount(t, users, "oldpassword1")

	require.NoError(t, svc.Deactivate(context.Background(), u.ID))
	assert.False(t, u.Active)
}

func TestDeactivateLastAdminSelfRejected(t *testing.T) {
	svc, users := newAccountFixture(t)
	admin := seedAccount(t, users, "oldpassword1")
	admin.Role = model.RoleAdmin

	err := svc.Deactivate(context.Background(), admin.ID)
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.True(t, admin.Active, "sole admin stays active")
}

func TestDeactivateAdminWithBackupAllowed(t *testing.T) {
	svc, users := newAccountFixture(t)
	admin := seedAccount(t, users, "oldpassword1")
	admin.Role = model.RoleAdmin

	backup := &model.User{
		Name:     "Backup Admin",
		Email:    "backup@example.com",
		Role:     model.RoleAdmin,
		Provider: model.ProviderLocal,
		Active:   true,
	}
	require.NoError(t, users.Create(context.Background(), backup))

	require.NoError(t, svc.Deactivate(context.Background(), admin.ID))
	assert.False(t, admin.Active)
}
