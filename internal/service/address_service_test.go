package service

// address_service_test.go
// Saved addresses: default flag invariant and ownership.

import (
	"context"
	"testing"

	"boskoback/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddressFixture(t *testing.T) (AddressService, *stubAddressRepo) {
	t.Helper()
	repo := newStubAddressRepo()
	return NewAddressService(repo), repo
}

func addressReq(city string) dto.CreateAddressRequest {
	return dto.CreateAddressRequest{
		Recipient: "Ana Gomez",
		Street:    "Av. Siempre Viva 742",
		City:      city,
		Country:   "AR",
	}
}

func countDefaults(t *testing.T, repo *stubAddressRepo, userID uuid.UUID) int {
	t.Helper()
	addrs, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	n := 0
	for _, a := range addrs {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	svc, repo := newAddressFixture(t)
	userID := uuid.New()

	a, err := svc.Create(context.Background(), userID, addressReq("Springfield"))
	require.NoError(t, err)
	assert.True(t, a.IsDefault)
	assert.Equal(t, 1, countDefaults(t, repo, userID))
}

func TestSecondAddressNotDefault(t *testing.T) {
	svc, repo := newAddressFixture(t)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, addressReq("Springfield"))
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), userID, addressReq("Rosario"))
	require.NoError(t, err)

	assert.False(t, b.IsDefault)
	assert.Equal(t, 1, countDefaults(t, repo, userID))
}

func TestCreateWithDefaultFlagMovesDefault(t *testing.T) {
	svc, repo := newAddressFixture(t)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, addressReq("Springfield"))
	require.NoError(t, err)

	req := addressReq("Rosario")
	req.IsDefault = true
	b, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)

	assert.True(t, b.IsDefault)
	assert.Equal(t, 1, countDefaults(t, repo, userID))
}

func TestSetDefaultMovesFlag(t *testing.T) {
	svc, repo := newAddressFixture(t)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, addressReq("Springfield"))
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), userID, addressReq("Rosario"))
	require.NoError(t, err)

	require.NoError(t, svc.SetDefault(context.Background(), userID, uuid.MustParse(b.ID)))
	assert.Equal(t, 1, countDefaults(t, repo, userID))

	moved, err := repo.FindByID(context.Background(), uuid.MustParse(b.ID))
	require.NoError(t, err)
	assert.True(t, moved.IsDefault)
}

func TestForeignAddressNotFound(t *testing.T) {
	svc, _ := newAddressFixture(t)
	owner := uuid.New()
	stranger := uuid.New()

	a, err := svc.Create(context.Background(), owner, addressReq("Springfield"))
	require.NoError(t, err)
	id := uuid.MustParse(a.ID)

	city := "CABA"
	_, err = svc.Update(context.Background(), stranger, id, dto.UpdateAddressRequest{City: &city})
	assert.ErrorIs(t, err, ErrAddressNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, id), ErrAddressNotFound)
	assert.ErrorIs(t, svc.SetDefault(context.Background(), stranger, id), ErrAddressNotFound)
}

func TestUpdateAddressPartial(t *testing.T) {
	svc, _ := newAddressFixture(t)
	userID := uuid.New()

	a, err := svc.Create(context.Background(), userID, addressReq("Springfield"))
	require.NoError(t, err)

	city := "Rosario"
	updated, err := svc.Update(context.Background(), userID, uuid.MustParse(a.ID), dto.UpdateAddressRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Rosario", updated.City)
	assert.Equal(t, "Av. Siempre Viva 742", updated.Street)
}
