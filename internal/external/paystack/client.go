package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"RestaurantPOS/internal/domain/gateway"
	"RestaurantPOS/pkg/metrics"
)

const (
	DefaultBaseURL        = "https://api.paystack.co"
	DefaultInitializePath = "/transaction/initialize"
)

// ErrMissingSecretKey is returned by New when no secret key is configured.
var ErrMissingSecretKey = errors.New("paystack secret key is not configured")

type Config struct {
	SecretKey      string
	BaseURL        string
	InitializePath string
	HTTPClient     *http.Client
}

type Client struct {
	InitializeURL string
	HTTP          *http.Client

	secretKey string
}

func New(cfg Config) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.InitializePath == "" {
		cfg.InitializePath = DefaultInitializePath
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}

	return &Client{
		InitializeURL: cfg.BaseURL + cfg.InitializePath,
		HTTP:          cfg.HTTPClient,
		secretKey:     cfg.SecretKey,
	}, nil
}

type initializeReq struct {
	Amount      int64            `json:"amount"`
	Email       string           `json:"email"`
	Currency    string           `json:"currency"`
	CallbackURL string           `json:"callback_url"`
	Metadata    gateway.Metadata `json:"metadata"`
}

type initializeResp struct {
	Status  *bool  `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (c *Client) InitializeTransaction(ctx context.Context, req gateway.InitializeRequest) (gateway.InitializeResult, error) {
	j, err := json.Marshal(initializeReq{
		Amount:      req.Amount,
		Email:       req.Email,
		Currency:    req.Currency,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return gateway.InitializeResult{}, fmt.Errorf("marshal initialize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.InitializeURL, bytes.NewReader(j))
	if err != nil {
		return gateway.InitializeResult{}, fmt.Errorf("create initialize request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		observe(start, "error")
		return gateway.InitializeResult{}, fmt.Errorf("http initialize transaction: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	observe(start, strconv.Itoa(resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gateway.InitializeResult{}, fmt.Errorf("read initialize response: %w", err)
	}

	var out initializeResp
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode/100 != 2 {
		httpErr := &gateway.HTTPError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			httpErr.Message = out.Message
		}
		return gateway.InitializeResult{}, httpErr
	}

	if decodeErr != nil {
		return gateway.InitializeResult{}, fmt.Errorf("unmarshal initialize response: %w", decodeErr)
	}

	if out.Status == nil || !*out.Status {
		return gateway.InitializeResult{}, &gateway.RejectedError{Message: out.Message}
	}
	if out.Data.AuthorizationURL == "" {
		return gateway.InitializeResult{}, &gateway.RejectedError{Message: "response carries no authorization_url"}
	}

	return gateway.InitializeResult{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

func observe(start time.Time, statusCode string) {
	metrics.GatewayRequestDuration.
		WithLabelValues("initialize_transaction", statusCode).
		Observe(time.Since(start).Seconds())
}
