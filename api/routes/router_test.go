package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gujjushop/backend/internal/cart"
	"github.com/gujjushop/backend/internal/catalog"
	"github.com/gujjushop/backend/internal/identity"
	"github.com/gujjushop/backend/internal/orders"
	"github.com/gujjushop/backend/internal/seed"
	"github.com/gujjushop/backend/pkg/auth/session"
	"github.com/gujjushop/backend/pkg/config"
	"github.com/gujjushop/backend/pkg/logger"
	"github.com/gujjushop/backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	customerPhone = "9876500001"
	merchantPhone = "9876500002"
	riderPhone    = "9876500003"
	adminPhone    = "9876500004"
)

type testServer struct {
	handler http.Handler
	demo    seed.Demo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "dev", Port: "0", LogLevel: "error"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "gujju.shop",
			ExpirationMinutes: 30,
		},
		Delivery: config.DeliveryConfig{StandardFee: "40", SmartMatchFee: "20"},
	}
	logg := logger.New(logger.Options{
		ServiceName: "api-test",
		Level:       zerolog.ErrorLevel,
		Output:      io.Discard,
	})

	usersRepo := identity.NewRepository()
	catalogRepo := catalog.NewRepository()
	demo := seed.Load(usersRepo, catalogRepo)

	sessions, err := session.NewManager(cfg.JWT)
	require.NoError(t, err)
	identitySvc, err := identity.NewService(usersRepo, sessions, cfg.JWT)
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(catalogRepo)
	require.NoError(t, err)
	carts := cart.NewService()
	ordersSvc, err := orders.NewService(carts, catalogRepo)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	handler := New(Dependencies{
		Config:      cfg,
		Logger:      logg,
		Sessions:    sessions,
		Identity:    identitySvc,
		Users:       usersRepo,
		Catalog:     catalogSvc,
		Carts:       carts,
		Orders:      ordersSvc,
		Registry:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
	})

	return &testServer{handler: handler, demo: demo}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Data
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Error.Code
}

func (s *testServer) login(t *testing.T, phone string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"phone": phone})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeData[identity.LoginResult](t, rec)
	require.NotEmpty(t, result.AccessToken)
	return result.AccessToken
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestLoginUnknownPhone(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"phone": "0000000000"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, rec))
}

func TestRoleGatesBlockWrongRole(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	customerToken := s.login(t, customerPhone)

	for _, path := range []string{
		"/api/v1/merchant/orders",
		"/api/v1/rider/deliveries",
		"/api/admin/v1/orders",
	} {
		rec := s.do(t, http.MethodGet, path, customerToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code, path)
		require.Equal(t, "FORBIDDEN", decodeErrorCode(t, rec))
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	token := s.login(t, customerPhone)

	rec := s.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))
}

// TestOrderLifecycleEndToEnd walks one order through every role: the customer
// fills a cart and checks out, the merchant packs, the rider claims and
// delivers, and the admin sees the result.
func TestOrderLifecycleEndToEnd(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	customerToken := s.login(t, customerPhone)
	merchantToken := s.login(t, merchantPhone)
	riderToken := s.login(t, riderPhone)
	adminToken := s.login(t, adminPhone)

	// Pick the discounted gathiya from the farsan shop.
	rec := s.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/products?shop_id=%s", s.demo.FarsanShopID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeData[[]catalog.Product](t, rec)
	require.NotEmpty(t, products)

	var gathiya catalog.Product
	for _, p := range products {
		if p.Name == "Bhavnagari Gathiya" {
			gathiya = p
		}
	}
	require.NotEqual(t, uuid.Nil, gathiya.ID)

	// Two adds of the same product collapse into quantity 2.
	for i := 0; i < 2; i++ {
		rec = s.do(t, http.MethodPost, "/api/v1/cart/items", customerToken,
			map[string]string{"product_id": gathiya.ID.String()})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	cartView := decodeData[struct {
		Items []cart.Item `json:"items"`
		Total string      `json:"total"`
	}](t, rec)
	require.Len(t, cartView.Items, 1)
	require.Equal(t, 2, cartView.Items[0].Quantity)
	require.Equal(t, "560", cartView.Total)

	// SMART_MATCH checkout: 2 x 280 + 20 fee.
	rec = s.do(t, http.MethodPost, "/api/v1/checkout", customerToken,
		map[string]string{"delivery_type": "SMART_MATCH"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decodeData[orders.Order](t, rec)
	require.Equal(t, "PLACED", order.Status.String())
	require.True(t, order.TotalAmount.Equal(decimal.NewFromInt(580)), "got %s", order.TotalAmount)

	// The cart was consumed by checkout.
	rec = s.do(t, http.MethodGet, "/api/v1/cart", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	emptied := decodeData[struct {
		Items []cart.Item `json:"items"`
	}](t, rec)
	require.Empty(t, emptied.Items)

	// Checking out again with an empty cart fails.
	rec = s.do(t, http.MethodPost, "/api/v1/checkout", customerToken,
		map[string]string{"delivery_type": "STANDARD"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))

	// The merchant sees the pending order and packs it directly.
	rec = s.do(t, http.MethodGet, "/api/v1/merchant/orders?pending=1", merchantToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeData[[]orders.Order](t, rec)
	require.Len(t, pending, 1)
	require.Equal(t, order.ID, pending[0].ID)

	rec = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/merchant/orders/%s/status", order.ID), merchantToken,
		map[string]string{"status": "PACKED"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// A backwards transition is a state conflict.
	rec = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/merchant/orders/%s/status", order.ID), merchantToken,
		map[string]string{"status": "PLACED"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "STATE_CONFLICT", decodeErrorCode(t, rec))

	// The packed order shows up in the rider pool and gets claimed.
	rec = s.do(t, http.MethodGet, "/api/v1/rider/deliveries", riderToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pool := decodeData[[]orders.Order](t, rec)
	require.Len(t, pool, 1)

	rec = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/rider/deliveries/%s/claim", order.ID), riderToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	claimed := decodeData[orders.Order](t, rec)
	require.Equal(t, "ASSIGNED", claimed.Status.String())
	require.NotNil(t, claimed.RiderID)

	// Claiming twice is a conflict; the pool is empty now.
	rec = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/rider/deliveries/%s/claim", order.ID), riderToken, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/rider/deliveries", riderToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeData[[]orders.Order](t, rec))

	// The rider finishes the delivery leg.
	for _, status := range []string{"OUT_FOR_DELIVERY", "DELIVERED"} {
		rec = s.do(t, http.MethodPost,
			fmt.Sprintf("/api/v1/rider/deliveries/%s/status", order.ID), riderToken,
			map[string]string{"status": status})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	// Customer and admin both see the delivered order.
	rec = s.do(t, http.MethodGet, "/api/v1/orders", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decodeData[[]orders.Order](t, rec)
	require.Len(t, mine, 1)
	require.Equal(t, "DELIVERED", mine[0].Status.String())

	rec = s.do(t, http.MethodGet, "/api/admin/v1/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeData[[]orders.Order](t, rec)
	require.Len(t, all, 1)

	rec = s.do(t, http.MethodGet, "/api/admin/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeData[[]identity.User](t, rec)
	require.Len(t, users, 4)
}

func TestMerchantCannotTouchForeignOrders(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	customerToken := s.login(t, customerPhone)
	merchantToken := s.login(t, merchantPhone)

	// Order against the saree shop, which the seeded merchant does not own.
	rec := s.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/products?shop_id=%s", s.demo.SareeShopID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeData[[]catalog.Product](t, rec)
	require.NotEmpty(t, products)

	rec = s.do(t, http.MethodPost, "/api/v1/cart/items", customerToken,
		map[string]string{"product_id": products[0].ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/checkout", customerToken,
		map[string]string{"delivery_type": "STANDARD"})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decodeData[orders.Order](t, rec)

	rec = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/merchant/orders/%s/status", order.ID), merchantToken,
		map[string]string{"status": "PACKED"})
	require.Equal(t, http.StatusNotFound, rec.Code, "foreign orders stay hidden")

	rec = s.do(t, http.MethodGet, "/api/v1/merchant/orders", merchantToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeData[[]orders.Order](t, rec))
}

func TestMerchantShopControls(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	merchantToken := s.login(t, merchantPhone)

	rec := s.do(t, http.MethodPatch, "/api/v1/merchant/shop/open", merchantToken,
		map[string]bool{"open": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	shop := decodeData[catalog.Shop](t, rec)
	require.False(t, shop.IsOpen)

	rec = s.do(t, http.MethodPost, "/api/v1/merchant/products", merchantToken,
		map[string]string{"name": "Sev Mamra", "price": "120"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decodeData[catalog.Product](t, rec)
	require.Equal(t, s.demo.FarsanShopID, product.ShopID)
	require.True(t, product.InStock)

	// The new product tops the shop's list.
	rec = s.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/products?shop_id=%s", s.demo.FarsanShopID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeData[[]catalog.Product](t, rec)
	require.Equal(t, "Sev Mamra", products[0].Name)
}

func TestRiderCannotUseMerchantStatuses(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	customerToken := s.login(t, customerPhone)
	merchantToken := s.login(t, merchantPhone)
	riderToken := s.login(t, riderPhone)

	rec := s.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/products?shop_id=%s", s.demo.FarsanShopID), "", nil)
	products := decodeData[[]catalog.Product](t, rec)
	rec = s.do(t, http.MethodPost, "/api/v1/cart/items", customerToken,
		map[string]string{"product_id": products[0].ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/v1/checkout", customerToken,
		map[string]string{"delivery_type": "STANDARD"})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decodeData[orders.Order](t, rec)

	rec = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/merchant/orders/%s/status", order.ID), merchantToken,
		map[string]string{"status": "PACKED"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/rider/deliveries/%s/claim", order.ID), riderToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/rider/deliveries/%s/status", order.ID), riderToken,
		map[string]string{"status": "PACKED"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}
