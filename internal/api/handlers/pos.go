package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"RestaurantPOS/internal/domain/session"
	"RestaurantPOS/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "pos_session"

var loadingPage = []byte(`<!doctype html>
<html>
<head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>POS</title></head>
<body><p>Loading&hellip;</p></body>
</html>
`)

type POSHandler struct {
	repo          session.Repo
	ttl           time.Duration
	hydrationWait time.Duration
}

func NewPOSHandler(repo session.Repo, ttl, hydrationWait time.Duration) *POSHandler {
	return &POSHandler{repo: repo, ttl: ttl, hydrationWait: hydrationWait}
}

func (h *POSHandler) store(c *gin.Context) *session.Store {
	token, _ := c.Cookie(SessionCookieName)
	return session.NewStore(h.repo, token, h.ttl)
}

// Entry sends the client to its landing page or to login. While the session
// is still loading it serves a page that retries.
func (h *POSHandler) Entry(c *gin.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.hydrationWait)
	defer cancel()

	store := h.store(c)
	store.Hydrate(ctx)

	var target string
	nav := session.NavigatorFunc(func(path string) {
		if target == "" {
			target = path
		}
		cancel()
	})
	session.NewGate(nav).Run(ctx, store)
	metrics.SessionHydrationDuration.Observe(time.Since(start).Seconds())
	metrics.SessionRoutingTotal.WithLabelValues(routingLabel(target)).Inc()

	c.Header("Cache-Control", "no-store")
	if target == "" {
		slog.WarnContext(c.Request.Context(), "Session hydration still pending, serving loading page",
			slog.Duration("wait", h.hydrationWait),
		)
		c.Data(http.StatusOK, "text/html; charset=utf-8", loadingPage)
		return
	}

	c.Redirect(http.StatusFound, target)
}

func routingLabel(target string) string {
	switch target {
	case "":
		return "pending"
	case session.LoginPath:
		return "unauthenticated"
	default:
		return "authenticated"
	}
}

// Logout drops the session behind the cookie and sends the client to login.
func (h *POSHandler) Logout(c *gin.Context) {
	if err := h.store(c).Clear(c.Request.Context()); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to clear staff session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to log out"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, session.LoginPath)
}
