// Package health serves the POS API's liveness and readiness endpoints.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const DefaultTimeout = 5 * time.Second

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

type CheckResult struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// ReadinessResponse names the session backend so operators can tell which
// store a down check refers to.
type ReadinessResponse struct {
	Status       Status        `json:"status"`
	SessionStore string        `json:"session_store,omitempty"`
	Checks       []CheckResult `json:"checks,omitempty"`
}

type Registry struct {
	sessionStore string
	checkers     []Checker
}

func NewRegistry(sessionStore string, checkers ...Checker) *Registry {
	return &Registry{sessionStore: sessionStore, checkers: checkers}
}

// CheckAll runs the checkers in parallel. One down check makes the whole
// response down.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	resp := ReadinessResponse{Status: StatusUp, SessionStore: r.sessionStore}
	if len(r.checkers) == 0 {
		return resp
	}

	resp.Checks = make([]CheckResult, len(r.checkers))
	var g errgroup.Group
	for i, checker := range r.checkers {
		g.Go(func() error {
			res := checker.Check(ctx)
			resp.Checks[i] = CheckResult{Name: checker.Name(), Status: res.Status, Message: res.Message}
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range resp.Checks {
		if res.Status == StatusDown {
			resp.Status = StatusDown
			break
		}
	}
	return resp
}

func (r *Registry) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": StatusUp})
}

// Ready answers 503 while any dependency is down.
func (r *Registry) Ready(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		resp := r.CheckAll(ctx)
		status := http.StatusOK
		if resp.Status == StatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	}
}
