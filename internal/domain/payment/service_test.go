package payment

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"RestaurantPOS/internal/domain/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func paymentService(t *testing.T) (*Service, *gateway.MockProvider) {
	t.Helper()

	mockProvider := gateway.NewMockProvider(gomock.NewController(t))
	return NewService(mockProvider), mockProvider
}

func validRequest() InitializeRequest {
	return InitializeRequest{
		Amount:      150000,
		Email:       "guest@example.com",
		Currency:    "NGN",
		OrderID:     "ORD-1001",
		CallbackURL: "https://pos.example.com/checkout/done",
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func logLines(buf *bytes.Buffer) []string {
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestService_InitializeTransaction_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(r *InitializeRequest)
		missing string
	}{
		{name: "zero amount", mutate: func(r *InitializeRequest) { r.Amount = 0 }, missing: "amount"},
		{name: "negative amount", mutate: func(r *InitializeRequest) { r.Amount = -5 }, missing: "amount"},
		{name: "empty email", mutate: func(r *InitializeRequest) { r.Email = "" }, missing: "email"},
		{name: "empty currency", mutate: func(r *InitializeRequest) { r.Currency = "" }, missing: "currency"},
		{name: "empty order id", mutate: func(r *InitializeRequest) { r.OrderID = "" }, missing: "orderId"},
		{name: "empty callback url", mutate: func(r *InitializeRequest) { r.CallbackURL = "" }, missing: "callbackUrl"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			logs := captureLogs(t)
			service, mockProvider := paymentService(t)
			mockProvider.EXPECT().InitializeTransaction(gomock.Any(), gomock.Any()).Times(0)
			req := validRequest()
			tc.mutate(&req)

			// when
			_, err := service.InitializeTransaction(context.Background(), req)

			// then
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, KindValidation, perr.Kind)
			assert.Equal(t, http.StatusBadRequest, perr.Status)
			assert.Contains(t, perr.Message, requiredFieldsMessage)
			assert.Contains(t, perr.Message, tc.missing)

			lines := logLines(logs)
			require.Len(t, lines, 1)
			assert.Contains(t, lines[0], `"level":"WARN"`)
			assert.Contains(t, lines[0], `"kind":"validation_error"`)
		})
	}

	t.Run("lists every missing field", func(t *testing.T) {
		service, mockProvider := paymentService(t)
		mockProvider.EXPECT().InitializeTransaction(gomock.Any(), gomock.Any()).Times(0)

		_, err := service.InitializeTransaction(context.Background(), InitializeRequest{})

		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, requiredFieldsMessage+" (missing: amount, email, currency, orderId, callbackUrl)", perr.Message)
	})
}

func TestService_InitializeTransaction_Gateway(t *testing.T) {
	ctx := context.Background()
	expectedGatewayReq := gateway.InitializeRequest{
		Amount:      150000,
		Email:       "guest@example.com",
		Currency:    "NGN",
		CallbackURL: "https://pos.example.com/checkout/done",
		Metadata: gateway.Metadata{CustomFields: []gateway.CustomField{
			{DisplayName: "Order ID", VariableName: "order_id", Value: "ORD-1001"},
		}},
	}

	testCases := []struct {
		name            string
		gatewayResult   gateway.InitializeResult
		gatewayErr      error
		expectedURL     string
		expectedKind    Kind
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:          "should return authorization url on success",
			gatewayResult: gateway.InitializeResult{AuthorizationURL: "https://checkout.paystack.com/xyz", Reference: "r1"},
			expectedURL:   "https://checkout.paystack.com/xyz",
		},
		{
			name:            "should surface gateway message on rejection",
			gatewayErr:      &gateway.RejectedError{Message: "Invalid currency"},
			expectedKind:    KindGateway,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Invalid currency",
		},
		{
			name:            "should use default message on silent rejection",
			gatewayErr:      &gateway.RejectedError{},
			expectedKind:    KindGateway,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: defaultRejectedMessage,
		},
		{
			name:            "should mirror upstream status and message",
			gatewayErr:      &gateway.HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "Service Unavailable"},
			expectedKind:    KindGateway,
			expectedStatus:  http.StatusServiceUnavailable,
			expectedMessage: "Service Unavailable",
		},
		{
			name:            "should mirror upstream status with generic message",
			gatewayErr:      &gateway.HTTPError{StatusCode: http.StatusUnauthorized},
			expectedKind:    KindGateway,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: GenericMessage,
		},
		{
			name:            "should return generic 500 without a response",
			gatewayErr:      errors.New("dial tcp: connection refused"),
			expectedKind:    KindTransport,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: GenericMessage,
		},
		{
			name:            "should treat timeout as transport failure",
			gatewayErr:      context.DeadlineExceeded,
			expectedKind:    KindTransport,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: GenericMessage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			logs := captureLogs(t)
			service, mockProvider := paymentService(t)
			mockProvider.EXPECT().
				InitializeTransaction(ctx, expectedGatewayReq).
				Return(tc.gatewayResult, tc.gatewayErr).
				Times(1)

			// when
			res, err := service.InitializeTransaction(ctx, validRequest())

			// then
			if tc.gatewayErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedURL, res.AuthorizationURL)
				assert.Empty(t, logLines(logs))
				return
			}

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.expectedKind, perr.Kind)
			assert.Equal(t, tc.expectedStatus, perr.Status)
			assert.Equal(t, tc.expectedMessage, perr.Message)
			assert.ErrorIs(t, err, tc.gatewayErr)

			lines := logLines(logs)
			require.Len(t, lines, 1)
			assert.Contains(t, lines[0], `"order_id":"ORD-1001"`)
			assert.Contains(t, lines[0], `"kind":"`+string(tc.expectedKind)+`"`)
		})
	}
}
