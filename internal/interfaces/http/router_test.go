package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/application/auth"
	appdelivery "github.com/jhoicas/Siparis-api/internal/application/delivery"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/inventory"
	"github.com/jhoicas/Siparis-api/internal/application/order"
	"github.com/jhoicas/Siparis-api/internal/application/ports"
	"github.com/jhoicas/Siparis-api/internal/application/report"
	"github.com/jhoicas/Siparis-api/internal/application/usecase"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/session"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Siparis-api/internal/interfaces/http"
	"github.com/jhoicas/Siparis-api/pkg/logger"
)

type noRenderer struct{}

func (noRenderer) RenderDeliveryNote(context.Context, appdelivery.Note) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

// recordingCache registra las invalidaciones de la caché de reportes.
type recordingCache struct {
	ports.NopCache
	prefixes []string
}

func (r *recordingCache) DeletePrefix(_ context.Context, prefix string) error {
	r.prefixes = append(r.prefixes, prefix)
	return nil
}

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	cache *recordingCache
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	log := logger.Nop()

	authUC := auth.NewAuthUseCase(store.Users(), store.Sessions(),
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
		session.Policy{InactivityLimit: 30 * time.Minute, WarningWindow: 2 * time.Minute})
	for _, u := range []struct{ email, role string }{
		{"admin@siparis.test", entity.RoleAdmin},
		{"depo@siparis.test", entity.RoleBodeguero},
		{"satis@siparis.test", entity.RoleVendedor},
	} {
		_, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Email: u.email, Password: "secreto123", Role: u.role})
		require.NoError(t, err)
	}
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Code: "P-1", Name: "Vida", Unit: "adet", Price: 1500, Currency: "TRY"}))
	store.Writes = 0

	movements := inventory.NewRegisterMovementUseCase(store, store.Movements(), store.Products(), true)
	cache := &recordingCache{}
	reports := report.NewUseCase(store.Demand(), store.Customers(), nil, cache, time.Minute, log)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(log, time.Second)})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(store.Products()),
		CustomerUC:     usecase.NewCustomerUseCase(store.Customers()),
		ExchangeRateUC: usecase.NewExchangeRateUseCase(store.Rates(), ports.NopCache{}, time.Minute, log),
		Movements:      movements,
		OrderUC:        order.NewUseCase(store.Orders(), store.Customers(), store.Products()),
		DeliveryUC:     appdelivery.NewUseCase(store, movements, store.Deliveries(), store.Orders(), noRenderer{}),
		ReportUC:       reports,
		AuthUC:         authUC,
		JWTSecret:      testJWTSecret,
	})
	return apiFixture{app: app, store: store, cache: cache}
}

func (f apiFixture) call(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (f apiFixture) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@siparis.test", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestAPI_MovimientoActualizaStockYLedger(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "depo@siparis.test")

	resp, body := f.call(t, http.MethodPost, "/api/stock-movements", tok, map[string]interface{}{
		"product_id": "p1", "quantity": 5, "movement_type": "IN",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 5, body["quantity"])

	resp, body = f.call(t, http.MethodGet, "/api/products/p1/ledger", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, body["stock_quantity"])
	assert.EqualValues(t, 5, body["ledger_sum"])
	assert.Equal(t, true, body["in_sync"])
}

func TestAPI_CantidadInvalidaDevuelveCampo(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "admin@siparis.test")

	resp, body := f.call(t, http.MethodPost, "/api/stock-movements", tok, map[string]interface{}{
		"product_id": "p1", "quantity": -1, "movement_type": "OUT",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	fields, _ := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "quantity")
	assert.Zero(t, f.store.Writes)
}

func TestAPI_ProductoInexistente404(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "satis@siparis.test")

	resp, body := f.call(t, http.MethodGet, "/api/products/nope", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["code"])
}

func TestAPI_BorrarSinConfirmar428(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "admin@siparis.test")

	resp, body := f.call(t, http.MethodDelete, "/api/products/p1", tok, nil)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
	assert.Equal(t, "CONFIRMATION_REQUIRED", body["code"])

	resp, _ = f.call(t, http.MethodDelete, "/api/products/p1?confirm=true", tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPI_VendedorNoRegistraMovimientos(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "satis@siparis.test")

	resp, body := f.call(t, http.MethodPost, "/api/stock-movements", tok, map[string]interface{}{
		"product_id": "p1", "quantity": 1, "movement_type": "IN",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestAPI_SesionYLogout(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "satis@siparis.test")

	resp, body := f.call(t, http.MethodGet, "/api/auth/session", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", body["state"])
	assert.Greater(t, body["seconds_remaining"], float64(0))

	resp, _ = f.call(t, http.MethodPost, "/api/auth/logout", tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = f.call(t, http.MethodGet, "/api/auth/me", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_INVALID", body["code"])
}

func TestAPI_FiltroKindInvalido(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "admin@siparis.test")

	resp, body := f.call(t, http.MethodGet, "/api/orders/o1/delivery-lines?kind=OTRO", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestAPI_EditarProductoInvalidaReportes(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "depo@siparis.test")

	resp, body := f.call(t, http.MethodPut, "/api/products/p1", tok, map[string]interface{}{"name": "Vida M8"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Vida M8", body["name"])
	assert.Equal(t, []string{"demand:"}, f.cache.prefixes)
}

func TestAPI_OrdenNoAdmitido400(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "admin@siparis.test")

	resp, body := f.call(t, http.MethodGet, "/api/products?sort=password", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	fields, _ := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "sort")
}

func TestAPI_EditarMovimientoDeEntrega409(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "depo@siparis.test")

	resp, body := f.call(t, http.MethodPost, "/api/stock-movements", tok, map[string]interface{}{
		"product_id": "p1", "quantity": 2, "movement_type": "OUT",
		"reference_type": "delivery", "reference_id": "d-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)

	resp, body = f.call(t, http.MethodPut, "/api/stock-movements/"+id, tok, map[string]interface{}{"quantity": 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])
}
