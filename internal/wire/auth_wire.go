package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// POST /register - Create a new account
	r.Post("/register", authHandler.Register)

	// POST /login - Open a session
	r.Post("/login", authHandler.Login)

	// POST /logout - Revoke the current session (requires auth)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Post("/logout", authHandler.Logout)
	})
}
