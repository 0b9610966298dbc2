package handler

import (
	"net/http"

	"github.com/msomdec/userauth/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, staticDir string) {
	authHandler := NewAuthHandler(auth)
	pages := NewPages(staticDir)

	mux.HandleFunc("POST /signup", authHandler.HandleSignup)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", pages.HandleHome)
	mux.HandleFunc("GET /dashboardprofile", pages.HandleDashboardProfile)
	mux.Handle("GET /", pages.Assets())
}
