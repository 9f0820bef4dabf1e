package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"RestaurantPOS/internal/domain/gateway"
	"RestaurantPOS/internal/domain/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func paymentEngine(t *testing.T) (*gin.Engine, *gateway.MockProvider) {
	t.Helper()

	provider := gateway.NewMockProvider(gomock.NewController(t))
	h := NewPaymentHandler(payment.NewService(provider))

	engine := gin.New()
	engine.POST("/api/paystack/initialize-transaction", h.InitializeTransaction)
	return engine, provider
}

func postInitialize(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/paystack/initialize-transaction", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const validBody = `{"amount":500000,"email":"guest@example.com","currency":"NGN","orderId":"ORD-7","callbackUrl":"https://pos.example.com/done"}`

func TestPaymentHandler_InitializeTransaction(t *testing.T) {
	t.Run("returns authorization url", func(t *testing.T) {
		engine, provider := paymentEngine(t)
		provider.EXPECT().
			InitializeTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req gateway.InitializeRequest) (gateway.InitializeResult, error) {
				assert.Equal(t, int64(500000), req.Amount)
				assert.Equal(t, "ORD-7", req.Metadata.CustomFields[0].Value)
				return gateway.InitializeResult{AuthorizationURL: "https://checkout.paystack.com/p1"}, nil
			})

		w := postInitialize(engine, validBody)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]string{"authorization_url": "https://checkout.paystack.com/p1"}, decodeBody(t, w))
	})

	t.Run("malformed json is 400", func(t *testing.T) {
		engine, provider := paymentEngine(t)
		provider.EXPECT().InitializeTransaction(gomock.Any(), gomock.Any()).Times(0)

		w := postInitialize(engine, `{"amount":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid request body", decodeBody(t, w)["message"])
	})

	t.Run("missing field is 400 without gateway call", func(t *testing.T) {
		engine, provider := paymentEngine(t)
		provider.EXPECT().InitializeTransaction(gomock.Any(), gomock.Any()).Times(0)

		w := postInitialize(engine, `{"amount":500000,"email":"guest@example.com","currency":"NGN","callbackUrl":"https://pos.example.com/done"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["message"], "orderId")
	})

	t.Run("upstream status is mirrored", func(t *testing.T) {
		engine, provider := paymentEngine(t)
		provider.EXPECT().
			InitializeTransaction(gomock.Any(), gomock.Any()).
			Return(gateway.InitializeResult{}, &gateway.HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "Service Unavailable"})

		w := postInitialize(engine, validBody)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "Service Unavailable", decodeBody(t, w)["message"])
	})

	t.Run("transport failure is generic 500", func(t *testing.T) {
		engine, provider := paymentEngine(t)
		provider.EXPECT().
			InitializeTransaction(gomock.Any(), gomock.Any()).
			Return(gateway.InitializeResult{}, errors.New("read: connection reset by peer"))

		w := postInitialize(engine, validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, payment.GenericMessage, decodeBody(t, w)["message"])
	})
}

type unexpectedErrInitializer struct{}

func (unexpectedErrInitializer) InitializeTransaction(context.Context, payment.InitializeRequest) (payment.InitializeResponse, error) {
	return payment.InitializeResponse{}, errors.New("boom")
}

func TestPaymentHandler_UntypedError(t *testing.T) {
	engine := gin.New()
	engine.POST("/init", NewPaymentHandler(unexpectedErrInitializer{}).InitializeTransaction)

	req := httptest.NewRequest(http.MethodPost, "/init", strings.NewReader(validBody))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, payment.GenericMessage, decodeBody(t, w)["message"])
}
