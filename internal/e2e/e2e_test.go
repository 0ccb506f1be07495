//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"boskoback/internal/config"
	"boskoback/internal/infra"
	"boskoback/internal/model"
	"boskoback/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server     *httptest.Server
	db         *gorm.DB
	adminToken string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("bosko_test"),
		tcPostgres.WithUsername("bosko"),
		tcPostgres.WithPassword("bosko"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8080,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		GoogleTokenInfoURL: "http://localhost:9999", // unused here
		WorkerPoolSize:     1,
		UploadDir:          t.TempDir(),
		InvoiceDir:         t.TempDir(),
		MaxAvatarBytes:     5 * 1024 * 1024,
		PublicBaseURL:      "http://localhost:8080",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-secret-1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Name:         "Admin E2E",
		Email:        "admin@e2e.test",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Provider:     model.ProviderLocal,
		Active:       true,
	}).Error)

	google := infra.NewGoogleVerifier(cfg.GoogleTokenInfoURL, "", infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	r := router.New(cfg, db, rdb, google)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": "admin-secret-1"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &login)
	require.NotEmpty(t, login.AccessToken)

	return &testEnv{server: srv, db: db, adminToken: login.AccessToken}
}

func (env *testEnv) registerCustomer(t *testing.T, email string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/auth/register",
		jsonBody(t, map[string]string{
			"name":     "Cliente E2E",
			"email":    email,
			"password": "customer-pass-1",
		}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	return body.AccessToken
}

func (env *testEnv) createProduct(t *testing.T, name, price string, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/admin/products",
		jsonBody(t, map[string]any{"name": name, "price": price, "stock": stock}), env.adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &p)
	return p.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_OrderLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	productID := env.createProduct(t, "Yerba Orgánica 1kg", "10.00", 20)
	customer := env.registerCustomer(t, "cliente@e2e.test")

	// place an order: 2 x 10.00 → subtotal 20, tax 2, shipping 5, total 27
	orderResp := do(t, env.server, "POST", "/api/orders",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"product_id": productID, "quantity": 2}},
			"shipping_address": map[string]any{
				"recipient": "Cliente E2E",
				"street":    "Av. Siempre Viva 742",
				"city":      "Springfield",
				"country":   "AR",
			},
			"payment_method": "card",
		}), customer)
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		ID       string `json:"id"`
		Number   int    `json:"number"`
		Status   string `json:"status"`
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Shipping string `json:"shipping"`
		Total    string `json:"total"`
	}
	decodeJSON(t, orderResp, &order)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, "20", order.Subtotal)
	assert.Equal(t, "2", order.Tax)
	assert.Equal(t, "5", order.Shipping)
	assert.Equal(t, "27", order.Total)

	// stock decremented
	prodResp := do(t, env.server, "GET", "/api/products/"+productID, nil, "")
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 18, prod.Stock)

	// staff walks the status lifecycle
	statusResp := do(t, env.server, "PUT", fmt.Sprintf("/api/admin/orders/%s/status", order.ID),
		jsonBody(t, map[string]string{"status": model.OrderProcessing}), env.adminToken)
	require.Equal(t, http.StatusOK, statusResp.StatusCode)
	statusResp.Body.Close()

	// skipping a step is rejected
	badResp := do(t, env.server, "PUT", fmt.Sprintf("/api/admin/orders/%s/status", order.ID),
		jsonBody(t, map[string]string{"status": model.OrderDelivered}), env.adminToken)
	require.Equal(t, http.StatusBadRequest, badResp.StatusCode)
	badResp.Body.Close()

	// another customer cannot see the order
	stranger := env.registerCustomer(t, "otro@e2e.test")
	foreignResp := do(t, env.server, "GET", "/api/orders/"+order.ID, nil, stranger)
	require.Equal(t, http.StatusNotFound, foreignResp.StatusCode)
	foreignResp.Body.Close()
}

func TestE2E_CancelRestoresStock(t *testing.T) {
	env := setupTestEnv(t)
	productID := env.createProduct(t, "Termo Acero", "25.00", 5)
	customer := env.registerCustomer(t, "cliente@e2e.test")

	orderResp := do(t, env.server, "POST", "/api/orders",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"product_id": productID, "quantity": 3}},
			"shipping_address": map[string]any{
				"recipient": "Cliente E2E", "street": "Calle 1", "city": "CABA", "country": "AR",
			},
			"payment_method": "card",
		}), customer)
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		ID string `json:"id"`
	}
	decodeJSON(t, orderResp, &order)

	cancelResp := do(t, env.server, "POST", fmt.Sprintf("/api/orders/%s/cancel", order.ID),
		jsonBody(t, map[string]string{"reason": "changed my mind"}), customer)
	require.Equal(t, http.StatusOK, cancelResp.StatusCode)
	var cancelled struct {
		Status string `json:"status"`
	}
	decodeJSON(t, cancelResp, &cancelled)
	assert.Equal(t, model.OrderCancelled, cancelled.Status)

	prodResp := do(t, env.server, "GET", "/api/products/"+productID, nil, "")
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 5, prod.Stock)
}

func TestE2E_AddressDefaultInvariant(t *testing.T) {
	env := setupTestEnv(t)
	customer := env.registerCustomer(t, "cliente@e2e.test")

	mkAddr := func(city string) string {
		resp := do(t, env.server, "POST", "/api/addresses",
			jsonBody(t, map[string]any{
				"recipient": "Cliente E2E", "street": "Calle 1", "city": city, "country": "AR",
			}), customer)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var a struct {
			ID string `json:"id"`
		}
		decodeJSON(t, resp, &a)
		return a.ID
	}

	mkAddr("Springfield")
	second := mkAddr("Rosario")

	setResp := do(t, env.server, "PUT", fmt.Sprintf("/api/addresses/%s/default", second), nil, customer)
	require.Equal(t, http.StatusNoContent, setResp.StatusCode)
	setResp.Body.Close()

	listResp := do(t, env.server, "GET", "/api/addresses", nil, customer)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var addrs []struct {
		ID        string `json:"id"`
		IsDefault bool   `json:"is_default"`
	}
	decodeJSON(t, listResp, &addrs)
	require.Len(t, addrs, 2)
	defaults := 0
	for _, a := range addrs {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestE2E_AdminEndpointsRBAC(t *testing.T) {
	env := setupTestEnv(t)
	customer := env.registerCustomer(t, "cliente@e2e.test")

	resp := do(t, env.server, "GET", "/api/admin/stats", nil, customer)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/api/admin/stats", nil, env.adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		PendingOrders int64 `json:"pending_orders"`
	}
	decodeJSON(t, resp, &stats)

	// health surface is public and reports dependency state
	resp = do(t, env.server, "GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
