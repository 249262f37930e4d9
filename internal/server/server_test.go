package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/infra/db"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
}

type loginBody struct {
	User  model.User `json:"user"`
	Token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	} `json:"token"`
}

// 実SQLite＋全部品を組んだechoを返す。
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := config.Config{
		Port:       "0",
		SQLitePath: filepath.Join(t.TempDir(), "app.db"),
		JWTSecret:  "test-secret",
		GoEnv:      "test",
	}

	gormDB, err := db.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	require.NoError(t, db.SeedProducts(gormDB))

	return server.New(cfg, zap.NewNop(), gormDB)
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

func registerAndLogin(t *testing.T, e *echo.Echo, email, password string) (int64, string) {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"email":     email,
		"password":  password,
		"nick_name": "Tester",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": email,
		"password":   password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var out loginBody
	decodeJSON(t, rec, &out)
	require.NotEmpty(t, out.Token.AccessToken)
	return out.User.ID, out.Token.AccessToken
}

// 登録→ログイン→カート投入→注文作成→カートが空、の一連の流れ。
func TestCheckoutScenario(t *testing.T) {
	e := newTestServer(t)

	_, token := registerAndLogin(t, e, "a@x.com", "12345678")

	// 最初のカートは空
	rec := doJSON(t, e, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart usecase.CartResponse
	decodeJSON(t, rec, &cart)
	assert.Empty(t, cart.Items)

	// 101を2個、103を1個
	rec = doJSON(t, e, http.MethodPost, "/cart/add", token, map[string]int64{"product_id": 101, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	rec = doJSON(t, e, http.MethodPost, "/cart/add", token, map[string]int64{"product_id": 103, "quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	decodeJSON(t, rec, &cart)
	require.Len(t, cart.Items, 2)
	assert.InDelta(t, 918.98, cart.Total, 0.001)

	// 注文作成
	rec = doJSON(t, e, http.MethodPost, "/orders/create", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var order usecase.OrderOutput
	decodeJSON(t, rec, &order)
	assert.InDelta(t, 918.98, order.TotalAmount, 0.001)
	assert.Equal(t, string(model.OrderStatusPendingPayment), order.Status)
	assert.Len(t, order.Items, 2)
	assert.Regexp(t, `^ORD\d{14}\d+$`, order.OrderNumber)

	// 注文後のカートは空
	rec = doJSON(t, e, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &cart)
	assert.Empty(t, cart.Items)
	assert.InDelta(t, 0, cart.Total, 0.001)

	// 履歴と詳細
	rec = doJSON(t, e, http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []usecase.OrderOutput
	decodeJSON(t, rec, &orders)
	require.Len(t, orders, 1)

	rec = doJSON(t, e, http.MethodGet, "/orders/"+itoa(order.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// 空カートでの再注文は弾く
	rec = doJSON(t, e, http.MethodPost, "/orders/create", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthEndpoints(t *testing.T) {
	e := newTestServer(t)

	// パスワードが短い
	rec := doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "1234567", "nick_name": "Tester",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 正常登録
	rec = doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "12345678", "nick_name": "Tester",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// 同じemailで再登録は409
	rec = doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "12345678", "nick_name": "Other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// 未登録ユーザーのログインは404（登録誘導）
	rec = doJSON(t, e, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "ghost@x.com", "password": "12345678",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// パスワード違いは401
	rec = doJSON(t, e, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "a@x.com", "password": "wrongpass1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var eb errorBody
	decodeJSON(t, rec, &eb)
	assert.Equal(t, "unauthorized", eb.Error)
}

func TestProductEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []model.Product
	decodeJSON(t, rec, &products)
	assert.Len(t, products, 15)

	rec = doJSON(t, e, http.MethodGet, "/products/101", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p model.Product
	decodeJSON(t, rec, &p)
	assert.InDelta(t, 9.99, p.Price, 0.001)

	rec = doJSON(t, e, http.MethodGet, "/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartEndpointsRequireAuth(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/orders/create", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartAddAndRemove(t *testing.T) {
	e := newTestServer(t)
	_, token := registerAndLogin(t, e, "b@x.com", "12345678")

	// 存在しない商品は400
	rec := doJSON(t, e, http.MethodPost, "/cart/add", token, map[string]int64{"product_id": 999, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 同一商品の追加は数量加算
	rec = doJSON(t, e, http.MethodPost, "/cart/add", token, map[string]int64{"product_id": 101, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPost, "/cart/add", token, map[string]int64{"product_id": 101, "quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart usecase.CartResponse
	decodeJSON(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)

	// 行削除
	rec = doJSON(t, e, http.MethodDelete, "/cart/101", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &cart)
	assert.Empty(t, cart.Items)

	// 無い行の削除もエラーにしない
	rec = doJSON(t, e, http.MethodDelete, "/cart/101", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// 他人の注文は404で隠す
func TestOrderDetailIsOwnerScoped(t *testing.T) {
	e := newTestServer(t)

	_, aliceToken := registerAndLogin(t, e, "alice@x.com", "12345678")
	_, bobToken := registerAndLogin(t, e, "bob@x.com", "12345678")

	rec := doJSON(t, e, http.MethodPost, "/cart/add", aliceToken, map[string]int64{"product_id": 101, "quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPost, "/orders/create", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var order usecase.OrderOutput
	decodeJSON(t, rec, &order)

	rec = doJSON(t, e, http.MethodGet, "/orders/"+itoa(order.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/orders/"+itoa(order.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
