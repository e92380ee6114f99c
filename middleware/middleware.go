package middleware

import (
	"context"
	"fmt"
	"net/http"

	"velour/globals"
	"velour/rdx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const sessionHash = "adminsess"

// Claims is the admin session token minted on a correct PIN entry. There is
// no per-user identity behind the shared PIN, only a revocable session id.
type Claims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// Authenticate gates admin routes behind a valid, unrevoked session token.
// Websocket feeds carry the token as a query parameter and validate it in
// their own handler before upgrading.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := ValidateSession(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "Dashboard is locked", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.SessionKey, claims.SessionID)
		next(w, r.WithContext(ctx), ps)
	}
}

// ValidateSession parses a "Bearer <token>" header and, when Redis is up,
// checks the session id against the revocation registry.
func ValidateSession(header string) (*Claims, error) {
	if len(header) < 8 || header[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token format")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(header[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("missing session id")
	}

	if rdx.Available() {
		if _, err := rdx.RdxHget(sessionHash, claims.SessionID); err != nil {
			return nil, fmt.Errorf("session revoked")
		}
	}
	return claims, nil
}

// RegisterSession records a freshly minted session id for later revocation.
func RegisterSession(sessionID string) {
	if rdx.Available() {
		rdx.RdxHset(sessionHash, sessionID, "unlocked")
	}
}

// RevokeSession drops a session id so its token stops validating.
func RevokeSession(sessionID string) {
	if rdx.Available() {
		rdx.RdxHdel(sessionHash, sessionID)
	}
}
