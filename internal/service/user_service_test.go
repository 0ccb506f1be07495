package service

// user_service_test.go
// Admin account management, in particular the last-admin lockout guard.

import (
	"context"
	"testing"

	"boskoback/internal/dto"
	"boskoback/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (UserService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	return NewUserService(users), users
}

func seedUser(t *testing.T, users *stubUserRepo, email, role string) *model.User {
	t.Helper()
	u := &model.User{
		Name:     "Staff " + email,
		Email:    email,
		Role:     role,
		Provider: model.ProviderLocal,
		Active:   true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestDeleteLastAdminRejected(t *testing.T) {
	svc, users := newUserFixture(t)
	admin := seedUser(t, users, "admin@example.com", model.RoleAdmin)

	err := svc.Delete(context.Background(), admin.ID)
	assert.ErrorIs(t, err, ErrLastAdmin)
	_, err = users.FindByID(context.Background(), admin.ID)
	assert.NoError(t, err, "admin still present")
}

func TestDeleteAdminWithBackupAllowed(t *testing.T) {
	svc, users := newUserFixture(t)
	a1 := seedUser(t, users, "admin1@example.com", model.RoleAdmin)
	seedUser(t, users, "admin2@example.com", model.RoleAdmin)

	require.NoError(t, svc.Delete(context.Background(), a1.ID))
}

func TestDemoteLastAdminRejected(t *testing.T) {
	svc, users := newUserFixture(t)
	admin := seedUser(t, users, "admin@example.com", model.RoleAdmin)

	role := model.RoleEmployee
	_, err := svc.Update(context.Background(), admin.ID, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.Equal(t, model.RoleAdmin, admin.Role)
}

func TestDeactivateLastAdminRejected(t *testing.T) {
	svc, users := newUserFixture(t)
	admin := seedUser(t, users, "admin@example.com", model.RoleAdmin)

	inactive := false
	_, err := svc.Update(context.Background(), admin.ID, dto.UpdateUserRequest{Active: &inactive})
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.True(t, admin.Active)
}

func TestDemoteAdminWithBackupAllowed(t *testing.T) {
	svc, users := newUserFixture(t)
	a1 := seedUser(t, users, "admin1@example.com", model.RoleAdmin)
	seedUser(t, users, "admin2@example.com", model.RoleAdmin)

	role := model.RoleEmployee
	resp, err := svc.Update(context.Background(), a1.ID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, resp.Role)
}

func TestUpdateNonAdminSkipsGuard(t *testing.T) {
	svc, users := newUserFixture(t)
	seedUser(t, users, "admin@example.com", model.RoleAdmin)
	emp := seedUser(t, users, "emp@example.com", model.RoleEmployee)

	inactive := false
	resp, err := svc.Update(context.Background(), emp.ID, dto.UpdateUserRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.Active)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, users := newUserFixture(t)
	seedUser(t, users, "emp@example.com", model.RoleEmployee)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Name:     "Duplicate",
		Email:    "emp@example.com",
		Password: "password123",
		Role:     model.RoleEmployee,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestUpdateUnknownUser(t *testing.T) {
	svc, _ := newUserFixture(t)
	name := "Nobody"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateUserRequest{Name: &name})
	require.Error(t, err)
}
