package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gorilla/websocket"

	"github.com/GregMSThompson/task-tracker/internal/response"
	"github.com/GregMSThompson/task-tracker/internal/session"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	Tokens          TokenVerifier
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(tokens TokenVerifier, rh response.ResponseHandler) *Middleware {
	return &Middleware{
		Tokens:          tokens,
		ResponseHandler: rh,
	}
}

// context key
type contextKey string

const (
	UIDKey   contextKey = "uid"
	EmailKey contextKey = "email"
)

// FirebaseAuth verifies the Firebase ID token and puts the caller's uid and
// email into the request context. Browsers cannot set headers on a websocket
// handshake, so upgrade requests may pass the token as ?token= instead.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, msg := bearerToken(r)
		if tokenStr == "" {
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", msg)
			return
		}

		token, err := m.Tokens.VerifyIDToken(r.Context(), tokenStr)
		if err != nil {
			logger.FromContext(r.Context()).Warn("token verification failed", "error", err)
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}

		email, _ := token.Claims["email"].(string)

		_, ctx := logger.With(r.Context(), "uid", token.UID)
		ctx = context.WithValue(ctx, UIDKey, token.UID)
		ctx = context.WithValue(ctx, EmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if websocket.IsWebSocketUpgrade(r) {
			if t := r.URL.Query().Get("token"); t != "" {
				return t, ""
			}
		}
		return "", "missing Authorization header"
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "invalid Authorization header"
	}
	return parts[1], ""
}

func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// Identity returns the verified caller, or session.Anonymous outside the
// FirebaseAuth middleware.
func Identity(ctx context.Context) session.Identity {
	return session.Identity{UID: UID(ctx), Email: Email(ctx)}
}
