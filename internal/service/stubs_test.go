package service

// stubs_test.go
// In-memory repository stubs shared by the service unit tests. Each stub
// implements the repository interface against plain maps; DB() returns nil so
// runTx executes the transaction body directly.

import (
	"context"
	"strings"
	"time"

	"boskoback/internal/dto"
	"boskoback/internal/infra"
	"boskoback/internal/model"
	"boskoback/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── UserRepository ───────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, _ dto.UserFilter) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) CountActiveAdmins(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == model.RoleAdmin && u.Active {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// ── PasswordResetRepository ──────────────────────────────────────────────────

type stubResetRepo struct {
	tokens map[uuid.UUID]*model.PasswordResetToken
}

func newStubResetRepo() *stubResetRepo {
	return &stubResetRepo{tokens: make(map[uuid.UUID]*model.PasswordResetToken)}
}

func (r *stubResetRepo) Create(_ context.Context, t *model.PasswordResetToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tokens[t.ID] = t
	return nil
}

func (r *stubResetRepo) FindByUserAndToken(_ context.Context, userID uuid.UUID, token string) (*model.PasswordResetToken, error) {
	for _, t := range r.tokens {
		if t.UserID == userID && t.Token == token {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubResetRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	if t, ok := r.tokens[id]; ok {
		t.Used = true
	}
	return nil
}

// ── ProductRepository ────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) CountLowStock(_ context.Context, threshold int) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.Active && p.Stock < threshold {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	if p, ok := r.products[id]; ok {
		p.Stock += delta
	}
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── CategoryRepository ───────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) ProductCount(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

// ── OrderRepository ──────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
	seq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filter.UserID != "" && o.UserID.String() != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.seq++
	o.Number = r.seq
	o.CreatedAt = time.Now()
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) UpdateTx(_ *gorm.DB, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) AppendHistoryTx(_ *gorm.DB, h *model.OrderStatusHistory) error {
	if o, ok := r.orders[h.OrderID]; ok {
		h.CreatedAt = time.Now()
		o.StatusHistory = append(o.StatusHistory, *h)
	}
	return nil
}

func (r *stubOrderRepo) UpdateAddressTx(_ *gorm.DB, a *model.OrderAddress) error {
	if o, ok := r.orders[a.OrderID]; ok {
		o.ShippingAddress = a
	}
	return nil
}

func (r *stubOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) RevenueTotal(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		if o.Status != model.OrderCancelled {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

func (r *stubOrderRepo) RevenueSince(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return r.RevenueTotal(context.Background())
}

func (r *stubOrderRepo) MonthlyBuckets(_ context.Context, _ time.Time) ([]dto.MonthBucket, error) {
	return nil, nil
}

func (r *stubOrderRepo) StatsByUser(_ context.Context, userID uuid.UUID) (int64, decimal.Decimal, error) {
	var n int64
	sum := decimal.Zero
	for _, o := range r.orders {
		if o.UserID == userID && o.Status != model.OrderCancelled {
			n++
			sum = sum.Add(o.Total)
		}
	}
	return n, sum, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

// ── AddressRepository ────────────────────────────────────────────────────────

type stubAddressRepo struct {
	addresses map[uuid.UUID]*model.Address
}

func newStubAddressRepo() *stubAddressRepo {
	return &stubAddressRepo{addresses: make(map[uuid.UUID]*model.Address)}
}

func (r *stubAddressRepo) Create(_ context.Context, a *model.Address) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.addresses[a.ID] = a
	return nil
}

func (r *stubAddressRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Address, error) {
	a, ok := r.addresses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAddressRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Address, error) {
	var out []model.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAddressRepo) Update(_ context.Context, a *model.Address) error {
	r.addresses[a.ID] = a
	return nil
}

func (r *stubAddressRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.addresses, id)
	return nil
}

func (r *stubAddressRepo) SetDefault(_ context.Context, userID, id uuid.UUID) error {
	for _, a := range r.addresses {
		if a.UserID == userID {
			a.IsDefault = a.ID == id
		}
	}
	return nil
}

func (r *stubAddressRepo) ClearDefaults(_ *gorm.DB, userID uuid.UUID) error {
	for _, a := range r.addresses {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	return nil
}

func (r *stubAddressRepo) DB() *gorm.DB { return nil }

// ── ReviewRepository ─────────────────────────────────────────────────────────

type stubReviewRepo struct {
	reviews map[uuid.UUID]*model.Review
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[uuid.UUID]*model.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *model.Review) error {
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	rv.CreatedAt = time.Now()
	r.reviews[rv.ID] = rv
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rv, nil
}

func (r *stubReviewRepo) FindByProductAndUser(_ context.Context, productID, userID uuid.UUID) (*model.Review, error) {
	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			return rv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReviewRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) AverageRating(_ context.Context, productID uuid.UUID) (float64, int64, error) {
	var sum, count int64
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			sum += int64(rv.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.reviews, id)
	return nil
}

// ── WishlistRepository ───────────────────────────────────────────────────────

type wishlistKey struct {
	userID    uuid.UUID
	productID uuid.UUID
}

type stubWishlistRepo struct {
	items map[wishlistKey]*model.WishlistItem
}

func newStubWishlistRepo() *stubWishlistRepo {
	return &stubWishlistRepo{items: make(map[wishlistKey]*model.WishlistItem)}
}

func (r *stubWishlistRepo) Add(_ context.Context, item *model.WishlistItem) error {
	k := wishlistKey{userID: item.UserID, productID: item.ProductID}
	if _, ok := r.items[k]; ok {
		return nil
	}
	item.CreatedAt = time.Now()
	r.items[k] = item
	return nil
}

func (r *stubWishlistRepo) Remove(_ context.Context, userID, productID uuid.UUID) error {
	delete(r.items, wishlistKey{userID: userID, productID: productID})
	return nil
}

func (r *stubWishlistRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.WishlistItem, error) {
	var out []model.WishlistItem
	for k, item := range r.items {
		if k.userID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

// ── Side effects ─────────────────────────────────────────────────────────────

type noopActivity struct{}

func (noopActivity) Record(_ context.Context, _ *uuid.UUID, _, _ string) {}
func (noopActivity) Notify(_ context.Context, _ uuid.UUID, _, _ string) {}

type captureEnqueuer struct {
	payloads []interface{}
}

func (e *captureEnqueuer) EnqueueEmail(_ context.Context, payload interface{}) error {
	e.payloads = append(e.payloads, payload)
	return nil
}

type stubVerifier struct {
	info *infra.GoogleTokenInfo
	err  error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*infra.GoogleTokenInfo, error) {
	return v.info, v.err
}

type noopCache struct{}

func (noopCache) GetProduct(_ context.Context, _ uuid.UUID) (*dto.ProductResponse, bool) {
	return nil, false
}
func (noopCache) SetProduct(_ context.Context, _ uuid.UUID, _ *dto.ProductResponse) {}
func (noopCache) InvalidateProduct(_ context.Context, _ uuid.UUID)                  {}
func (noopCache) InvalidateCatalog(_ context.Context)                               {}

// compile-time interface checks
var (
	_ repository.UserRepository          = (*stubUserRepo)(nil)
	_ repository.PasswordResetRepository = (*stubResetRepo)(nil)
	_ repository.ProductRepository       = (*stubProductRepo)(nil)
	_ repository.CategoryRepository      = (*stubCategoryRepo)(nil)
	_ repository.OrderRepository         = (*stubOrderRepo)(nil)
	_ repository.AddressRepository       = (*stubAddressRepo)(nil)
	_ repository.ReviewRepository        = (*stubReviewRepo)(nil)
	_ repository.WishlistRepository      = (*stubWishlistRepo)(nil)
	_ ActivityRecorder                   = noopActivity{}
	_ EmailEnqueuer                      = (*captureEnqueuer)(nil)
	_ GoogleTokenVerifier                = (*stubVerifier)(nil)
	_ CatalogCache                       = noopCache{}
)
