package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsroom/internal/session"
)

const (
	sessionCookie     = "session_id"
	sessionContextKey = "session"
	sessionCookieAge  = 7 * 24 * time.Hour
)

type SessionStore interface {
	Create(ctx context.Context, username string) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	SetLastQuery(ctx context.Context, id, query string) error
	ClearLastQuery(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// RequireAuth gates every protected route. A missing or broken session is
// cleared entirely and the client is redirected to login, never shown an
// error page.
func RequireAuth(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			redirectToLogin(c, sessions, "")
			return
		}

		sess, err := sessions.Get(c.Request.Context(), id)
		if err != nil {
			slog.Error("error loading session", "error", err)
			redirectToLogin(c, sessions, id)
			return
		}

		if sess == nil {
			redirectToLogin(c, sessions, id)
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context, sessions SessionStore, id string) {
	if id != "" {
		if err := sessions.Delete(c.Request.Context(), id); err != nil {
			slog.Error("error deleting session", "error", err)
		}
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}

func setSessionCookie(c *gin.Context, id string) {
	c.SetCookie(sessionCookie, id, int(sessionCookieAge.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
