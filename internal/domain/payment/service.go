package payment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"RestaurantPOS/internal/domain/gateway"
	"RestaurantPOS/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

const requiredFieldsMessage = "amount, email, currency, orderId and callbackUrl are required"

type Service struct {
	provider gateway.Provider
	validate *validator.Validate
}

func NewService(provider gateway.Provider) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{provider: provider, validate: v}
}

// InitializeTransaction validates req, asks the gateway for a checkout page
// and returns its authorization URL. Failures are always *Error.
func (s *Service) InitializeTransaction(ctx context.Context, req InitializeRequest) (InitializeResponse, error) {
	if missing := s.missingFields(req); len(missing) > 0 {
		return InitializeResponse{}, s.fail(ctx, req, validationError(
			requiredFieldsMessage+" (missing: "+strings.Join(missing, ", ")+")",
		))
	}

	res, err := s.provider.InitializeTransaction(ctx, gateway.InitializeRequest{
		Amount:      req.Amount,
		Email:       req.Email,
		Currency:    req.Currency,
		CallbackURL: req.CallbackURL,
		Metadata:    gateway.OrderMetadata(req.OrderID),
	})
	if err != nil {
		return InitializeResponse{}, s.fail(ctx, req, classify(err))
	}

	metrics.PaymentInitializeTotal.WithLabelValues("success").Inc()
	return InitializeResponse{AuthorizationURL: res.AuthorizationURL}, nil
}

func (s *Service) missingFields(req InitializeRequest) []string {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing
}

func classify(err error) *Error {
	var rejected *gateway.RejectedError
	if errors.As(err, &rejected) {
		msg := rejected.Message
		if msg == "" {
			msg = defaultRejectedMessage
		}
		return &Error{Kind: KindGateway, Status: http.StatusInternalServerError, Message: msg, Err: err}
	}

	var httpErr *gateway.HTTPError
	if errors.As(err, &httpErr) {
		status := httpErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		msg := httpErr.Message
		if msg == "" {
			msg = GenericMessage
		}
		return &Error{Kind: KindGateway, Status: status, Message: msg, Err: err}
	}

	return &Error{Kind: KindTransport, Status: http.StatusInternalServerError, Message: GenericMessage, Err: err}
}

func (s *Service) fail(ctx context.Context, req InitializeRequest, perr *Error) *Error {
	level := slog.LevelError
	if perr.Kind == KindValidation {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("order_id", req.OrderID),
		slog.String("kind", string(perr.Kind)),
		slog.Int("status", perr.Status),
		slog.String("message", perr.Message),
	}
	if perr.Err != nil {
		attrs = append(attrs, slog.String("error", perr.Err.Error()))
	}
	slog.LogAttrs(ctx, level, "Payment initialization failed", attrs...)

	metrics.PaymentInitializeTotal.WithLabelValues(string(perr.Kind)).Inc()
	return perr
}
