package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticChecker struct {
	name   string
	result Result
}

func (c staticChecker) Name() string                 { return c.name }
func (c staticChecker) Check(context.Context) Result { return c.result }

func TestRegistry_CheckAll(t *testing.T) {
	t.Run("no checkers is up and names the backend", func(t *testing.T) {
		res := NewRegistry("redis").CheckAll(context.Background())

		assert.Equal(t, StatusUp, res.Status)
		assert.Equal(t, "redis", res.SessionStore)
		assert.Empty(t, res.Checks)
	})

	t.Run("one down check marks the whole response down", func(t *testing.T) {
		registry := NewRegistry("postgres",
			staticChecker{name: "session_store", result: Result{Status: StatusUp}},
			staticChecker{name: "paystack", result: Result{Status: StatusDown, Message: "connection refused"}},
		)

		res := registry.CheckAll(context.Background())

		assert.Equal(t, StatusDown, res.Status)
		require.Len(t, res.Checks, 2)
		assert.Equal(t, "session_store", res.Checks[0].Name)
		assert.Equal(t, "paystack", res.Checks[1].Name)
		assert.Equal(t, "connection refused", res.Checks[1].Message)
	})
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	checker := RedisSessionStore(client)
	assert.Equal(t, "session_store", checker.Name())
	assert.Equal(t, "redis", checker.Backend())
	assert.Equal(t, StatusUp, checker.Check(context.Background()).Status)

	mr.Close()
	res := checker.Check(context.Background())
	assert.Equal(t, StatusDown, res.Status)
	assert.True(t, strings.HasPrefix(res.Message, "redis: "))
}

func TestRegistry_Endpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		checker    Checker
		wantStatus int
	}{
		{
			name:       "ready",
			checker:    staticChecker{name: "session_store", result: Result{Status: StatusUp}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not ready",
			checker:    staticChecker{name: "session_store", result: Result{Status: StatusDown}},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			registry := NewRegistry("postgres", tc.checker)
			engine := gin.New()
			engine.GET("/health/live", registry.Live)
			engine.GET("/health/ready", registry.Ready(DefaultTimeout))

			live := httptest.NewRecorder()
			engine.ServeHTTP(live, httptest.NewRequest(http.MethodGet, "/health/live", nil))
			assert.Equal(t, http.StatusOK, live.Code)

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			var body ReadinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "postgres", body.SessionStore)
			require.Len(t, body.Checks, 1)
		})
	}
}
