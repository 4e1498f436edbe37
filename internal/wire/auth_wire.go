package wire

import (
	"hotel-reservation/internal/adaptor"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/auth/register - Create a guest account
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Exchange credentials for an access token
	r.Post("/api/auth/login", authHandler.Login)
}
