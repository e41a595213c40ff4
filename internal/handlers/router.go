package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions tunes cross-cutting router behaviour.
type RouterOptions struct {
	AllowedOrigins []string
}

// Routes constructs the chi router containing all API endpoints.
func (a *API) Routes(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	allowed := opts.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	r.Use(httprate.Limit(100, time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", a.handleSignUp)
		r.Post("/login", a.handleLogin)
		r.Post("/logout", a.handleLogout)
		r.Post("/verify-otp", a.handleVerifyOTP)
		r.Post("/resend-verification-email", a.handleResendVerification)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/me", a.handleMe)
			r.Put("/update-profile", a.handleUpdateProfile)
			r.Put("/change-password", a.handleChangePassword)
			r.Delete("/delete-account", a.handleDeleteAccount)
		})
		r.Get("/{id}", a.handleGetUser)
	})

	r.Route("/api/resources", func(r chi.Router) {
		r.Get("/", a.handleListResources)
		r.Get("/top", a.handleTrendingResources)
		r.Get("/search", a.handleSearchResources)

		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Post("/", a.handleUploadResource)
			r.Get("/my", a.handleMyUploads)
			r.Put("/{id}", a.handleUpdateResource)
			r.Delete("/{id}", a.handleDeleteResource)
			r.Post("/{id}/hype", a.handleToggleHype)
			r.Post("/{id}/comment", a.handleAddComment)
		})

		r.Get("/{id}", a.handleGetResource)
		r.Get("/{id}/comments", a.handleListComments)
		r.Get("/{id}/download", a.handleDownloadResource)
	})

	r.Route("/api/comments", func(r chi.Router) {
		r.Use(a.requireAuth)
		r.Delete("/{id}", a.handleDeleteComment)
	})

	return r
}
