package handlers

import (
	"errors"
	"net/http"
	"time"

	"benchmate/internal/auth"
	"benchmate/internal/resources"
	"benchmate/internal/token"
	"benchmate/internal/users"
)

// API wires the domain services into HTTP handlers.
type API struct {
	auth      *auth.Service
	users     *users.Service
	resources *resources.Service
	tokens    *token.Manager

	// cookieMaxAge is deliberately longer than the token's own lifetime
	// (7 days vs 1 day, carried over from the source system): a stale
	// cookie survives token expiry and simply fails verification until
	// the client logs in again.
	cookieMaxAge time.Duration
}

// Config controls handler behaviour.
type Config struct {
	CookieMaxAge time.Duration
}

// New initialises the API layer.
func New(authSvc *auth.Service, userSvc *users.Service, resourceSvc *resources.Service, tokens *token.Manager, cfg Config) (*API, error) {
	if authSvc == nil || userSvc == nil || resourceSvc == nil {
		return nil, errors.New("all services are required")
	}
	if tokens == nil {
		return nil, errors.New("token manager is required")
	}
	if cfg.CookieMaxAge <= 0 {
		cfg.CookieMaxAge = 168 * time.Hour
	}

	return &API{
		auth:         authSvc,
		users:        userSvc,
		resources:    resourceSvc,
		tokens:       tokens,
		cookieMaxAge: cfg.CookieMaxAge,
	}, nil
}

func (a *API) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     "token",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
