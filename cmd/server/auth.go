package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/menucost/internal/catalog"
)

const sessionCookieName = "menucost_session"

type authService struct {
	sessionSecret []byte
	secureCookie  bool
}

func newAuthService(sessionSecret string, secureCookie bool) *authService {
	return &authService{sessionSecret: []byte(sessionSecret), secureCookie: secureCookie}
}

func (a *authService) createSessionValue(userID string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(userID))
	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return payload + "." + signature
}

func (a *authService) verifySessionValue(value string) (string, bool) {
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return "", false
	}

	payload := parts[0]
	signature := parts[1]

	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	if len(decoded) == 0 {
		return "", false
	}

	return string(decoded), true
}

func (a *authService) setSessionCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    a.createSessionValue(userID),
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *authService) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

type userIDKey struct{}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

func (s *server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "sesión requerida")
			return
		}
		userID, ok := s.auth.verifySessionValue(cookie.Value)
		if !ok {
			s.auth.clearSessionCookie(w)
			writeError(w, http.StatusUnauthorized, "sesión inválida")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s *server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decodeJSON(w, r, &body) {
		return
	}

	user, err := s.store.CreateUser(r.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID))
	s.auth.setSessionCookie(w, user.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{ID: user.ID, Email: user.Email})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decodeJSON(w, r, &body) {
		return
	}

	user, err := s.store.Authenticate(r.Context(), body.Email, body.Password)
	if errors.Is(err, catalog.ErrUnauthenticated) {
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas. Intenta de nuevo.")
		return
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.auth.setSessionCookie(w, user.ID)
	writeJSON(w, http.StatusOK, sessionResponse{ID: user.ID, Email: user.Email})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
