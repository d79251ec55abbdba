package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/infrastructure/export"
	"github.com/sangkips/ledger-api/internal/infrastructure/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/handler"
	"github.com/sangkips/ledger-api/internal/presentation/http/routes"
	"github.com/sangkips/ledger-api/internal/testutil"
	"github.com/sangkips/ledger-api/pkg/logger"
	"github.com/sangkips/ledger-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorType string          `json:"error_type"`
	Data      json.RawMessage `json:"data"`
	Errors    []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type server struct {
	router *gin.Engine
	jwt    *utils.JWTManager
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)

	accountRepo := repository.NewAccountRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	snapshots := repository.NewSnapshotRepository(db)

	ledger := service.NewLedgerService(repository.NewLedgerStore(db), repository.NewTransactionRepository(db), partyRepo, accountRepo)
	statements := service.NewStatementService(snapshots, time.UTC)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "ledger-api-test"},
		RateLimit: config.RateLimitConfig{Requests: 1000, ReportRequests: 1000, Duration: 1},
	}
	jwt := utils.NewJWTManager("test-secret", time.Hour)

	router := routes.Setup(&routes.Handlers{
		Account:        handler.NewAccountHandler(service.NewAccountService(accountRepo)),
		Party:          handler.NewPartyHandler(service.NewPartyService(partyRepo)),
		Item:           handler.NewItemHandler(service.NewItemService(repository.NewItemRepository(db))),
		Transaction:    handler.NewTransactionHandler(ledger, service.NewSequenceService(repository.NewCounterRepository(db), accountRepo), time.UTC),
		Report:         handler.NewReportHandler(statements),
		Reconciliation: handler.NewReconciliationHandler(service.NewReconciliationService(snapshots, statements), time.UTC),
		Reference:      handler.NewReferenceHandler(nil),
	}, &routes.Deps{
		JWTManager:      jwt,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Logger:          logger.Get(),
	})

	return &server{router: router, jwt: jwt}
}

func (s *server) token(t *testing.T, tenantID uuid.UUID) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(uuid.New(), tenantID)
	require.NoError(t, err)
	return token
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}, headers ...string) (*httptest.ResponseRecorder, apiResponse) {
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
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != export.ContentTypeXLSX {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func decode(t *testing.T, raw json.RawMessage) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func widgetSale(number string) map[string]interface{} {
	return map[string]interface{}{
		"type":         "sale",
		"number":       number,
		"date":         "2024-05-10",
		"subtotal":     "500",
		"total_amount": "590",
		"amount_paid":  "590",
		"lines": []map[string]interface{}{{
			"item_name":     "Widget",
			"quantity":      "5",
			"rate":          "100",
			"tax_rate":      "18",
			"hsn_code":      "8471",
			"taxable_value": "500",
			"cgst":          "45",
			"sgst":          "45",
		}},
	}
}

func TestHealthAndAuth(t *testing.T) {
	s := newServer(t)

	w, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := s.do(t, http.MethodGet, "/api/v1/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", resp.ErrorType)

	w, resp = s.do(t, http.MethodGet, "/api/v1/items", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Success)

	w, _ = s.do(t, http.MethodGet, "/api/v1/reference/states", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/reference/hsn-sac/8471", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFound", resp.ErrorType)
}

func TestCommitFlow(t *testing.T) {
	s := newServer(t)
	tenantID := uuid.New()
	token := s.token(t, tenantID)

	w, resp := s.do(t, http.MethodPost, "/api/v1/items", token, map[string]interface{}{
		"name":          "Widget",
		"sale_price":    "100",
		"opening_stock": "20",
		"tax_rate":      "18",
		"hsn_code":      "8471",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	itemID := decode(t, resp.Data)["id"].(string)

	w, resp = s.do(t, http.MethodGet, "/api/v1/transactions/next-number/sale", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, resp.Data)["value"])

	w, resp = s.do(t, http.MethodPost, "/api/v1/transactions", token, widgetSale("1"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	txnID := decode(t, resp.Data)["id"].(string)

	w, resp = s.do(t, http.MethodGet, "/api/v1/items/"+itemID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "15", decode(t, resp.Data)["stock"])

	w, resp = s.do(t, http.MethodPost, "/api/v1/transactions", token, widgetSale("1"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DuplicateEntry", resp.ErrorType)

	bad := widgetSale("2")
	delete(bad, "total_amount")
	bad["type"] = "gift"
	w, resp = s.do(t, http.MethodPost, "/api/v1/transactions", token, bad)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ValidationError", resp.ErrorType)
	fields := map[string]bool{}
	for _, e := range resp.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["type"])
	assert.True(t, fields["totalAmount"])

	// another tenant sees nothing
	w, resp = s.do(t, http.MethodGet, "/api/v1/transactions/"+txnID, s.token(t, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFound", resp.ErrorType)

	w, resp = s.do(t, http.MethodGet, "/api/v1/items/"+itemID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "15", decode(t, resp.Data)["stock"])
}

func TestIdempotentCommitReplays(t *testing.T) {
	s := newServer(t)
	token := s.token(t, uuid.New())

	first, _ := s.do(t, http.MethodPost, "/api/v1/transactions", token, widgetSale("7"), "Idempotency-Key", "abc")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second, _ := s.do(t, http.MethodPost, "/api/v1/transactions", token, widgetSale("7"), "Idempotency-Key", "abc")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	w, resp := s.do(t, http.MethodGet, "/api/v1/items?search=widget", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, resp.Data)["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "-5", items[0].(map[string]interface{})["stock"])
}

func TestReports(t *testing.T) {
	s := newServer(t)
	token := s.token(t, uuid.New())

	w, _ := s.do(t, http.MethodPost, "/api/v1/transactions", token, widgetSale("1"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp := s.do(t, http.MethodGet, "/api/v1/reports/profit-loss?start_date=2024-05-01&end_date=2024-05-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "590", decode(t, resp.Data)["revenue"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/reports/gstr3b?month=5&year=2024", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(t, http.MethodGet, "/api/v1/reports/hsn-summary/export?start_date=2024-05-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "hsn-summary_2024-05-01_-.xlsx")

	w, resp = s.do(t, http.MethodGet, "/api/v1/reports/ledger-dump", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFound", resp.ErrorType)

	w, resp = s.do(t, http.MethodGet, "/api/v1/reports/profit-loss?start_date=31-05-2024", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", resp.ErrorType)
}

func TestCursorListingHonoursDateRange(t *testing.T) {
	s := newServer(t)
	token := s.token(t, uuid.New())

	may := widgetSale("1")
	june := widgetSale("2")
	june["date"] = "2024-06-10"
	for _, body := range []map[string]interface{}{may, june} {
		w, _ := s.do(t, http.MethodPost, "/api/v1/transactions", token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, resp := s.do(t, http.MethodGet, "/api/v1/transactions?limit=10&start_date=2024-06-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := decode(t, resp.Data)["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].(map[string]interface{})["number"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/transactions?limit=10&start_date=bad", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", resp.ErrorType)
}

func TestDeletingPartyInUseIsAConflict(t *testing.T) {
	s := newServer(t)
	token := s.token(t, uuid.New())

	w, resp := s.do(t, http.MethodPost, "/api/v1/parties", token, map[string]interface{}{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	partyID := decode(t, resp.Data)["id"].(string)

	sale := widgetSale("1")
	sale["party_id"] = partyID
	w, _ = s.do(t, http.MethodPost, "/api/v1/transactions", token, sale)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp = s.do(t, http.MethodDelete, "/api/v1/parties/"+partyID, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ValidationError", resp.ErrorType)

	w, _ = s.do(t, http.MethodGet, "/api/v1/parties/"+partyID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBankReconciliation(t *testing.T) {
	s := newServer(t)
	token := s.token(t, uuid.New())

	w, _ := s.do(t, http.MethodPost, "/api/v1/transactions", token, map[string]interface{}{
		"type":         "paymentIn",
		"number":       "PI-1",
		"date":         "2024-05-12",
		"total_amount": "1000",
		"amount_paid":  "1000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp := s.do(t, http.MethodPost, "/api/v1/reconciliation/bank", token, map[string]interface{}{
		"start_date": "2024-05-01",
		"end_date":   "2024-05-31",
		"lines": []map[string]interface{}{
			{"id": "b1", "date": "2024-05-12", "credit": "1000"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, resp.Data)
	assert.Len(t, result["matched"], 1)
	assert.Empty(t, result["unmatched_book"])
}
