package service

// wishlist_service_test.go

import (
	"context"
	"testing"

	"boskoback/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWishlistFixture(t *testing.T) (WishlistService, *stubWishlistRepo, *stubProductRepo) {
	t.Helper()
	repo := newStubWishlistRepo()
	products := newStubProductRepo()
	return NewWishlistService(repo, products), repo, products
}

func TestWishlistAddIdempotent(t *testing.T) {
	svc, repo, products := newWishlistFixture(t)
	p := &model.Product{Name: "Mate Imperial", Price: decimal.NewFromInt(10), Active: true}
	require.NoError(t, products.Create(context.Background(), p))
	userID := uuid.New()

	require.NoError(t, svc.Add(context.Background(), userID, p.ID))
	require.NoError(t, svc.Add(context.Background(), userID, p.ID))
	assert.Len(t, repo.items, 1)
}

func TestWishlistAddInactiveProduct(t *testing.T) {
	svc, _, products := newWishlistFixture(t)
	p := &model.Product{Name: "Descontinuado", Price: decimal.NewFromInt(10), Active: false}
	require.NoError(t, products.Create(context.Background(), p))

	err := svc.Add(context.Background(), uuid.New(), p.ID)
	require.Error(t, err)
}

func TestWishlistListResolvesProducts(t *testing.T) {
	svc, repo, products := newWishlistFixture(t)
	p := &model.Product{Name: "Mate Imperial", Price: decimal.NewFromInt(10), Active: true}
	require.NoError(t, products.Create(context.Background(), p))
	userID := uuid.New()

	require.NoError(t, svc.Add(context.Background(), userID, p.ID))
	// the stub does not preload, wire the association by hand
	repo.items[wishlistKey{userID: userID, productID: p.ID}].Product = p

	items, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mate Imperial", items[0].Product.Name)
}

func TestWishlistRemove(t *testing.T) {
	svc, repo, products := newWishlistFixture(t)
	p := &model.Product{Name: "Mate Imperial", Price: decimal.NewFromInt(10), Active: true}
	require.NoError(t, products.Create(context.Background(), p))
	userID := uuid.New()

	require.NoError(t, svc.Add(context.Background(), userID, p.ID))
	require.NoError(t, svc.Remove(context.Background(), userID, p.ID))
	assert.Empty(t, repo.items)
}
