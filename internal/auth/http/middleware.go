package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/courtside/registration/internal/auth/domain"
	authService "github.com/courtside/registration/internal/auth/service"
	authUseCase "github.com/courtside/registration/internal/auth/usecase"
	apperrors "github.com/courtside/registration/internal/errors"
	"github.com/courtside/registration/internal/httputil"
)

// AuthenticationMiddleware provides authentication via Bearer token in the
// Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Hashes the token using tokenService.HashToken()
// 3. Validates the token using tokenUseCase.Authenticate()
// 4. Stores the authenticated actor in the request context
// 5. Allows downstream handlers to access the actor via GetActor()
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid/expired/revoked token → 401 Unauthorized (from TokenUseCase.Authenticate)
//   - Inactive actor → 403 Forbidden (from TokenUseCase.Authenticate)
//   - Other errors → 500 Internal Server Error
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Hash the token for lookup
		tokenHash := tokenService.HashToken(plainToken)

		actor, err := tokenUseCase.Authenticate(c.Request.Context(), tokenHash)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("actor_id", actor.ID.String()),
			slog.String("actor_role", string(actor.Role)))

		c.Next()
	}
}

// RequireRole provides role-based authorization for authenticated actors.
//
// This middleware MUST be used after AuthenticationMiddleware, as it requires
// an authenticated actor in the request context. The request proceeds when the
// actor holds any of the given roles.
//
// Error handling:
//   - No actor in context → 401 Unauthorized (AuthenticationMiddleware not run)
//   - Actor lacks all given roles → 403 Forbidden
func RequireRole(logger *slog.Logger, roles ...authDomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c.Request.Context())
		if !ok || actor == nil {
			logger.Debug("authorization failed: no authenticated actor in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !actor.HasAnyRole(roles...) {
			logger.Debug("authorization failed: insufficient role",
				slog.String("actor_id", actor.ID.String()),
				slog.String("actor_role", string(actor.Role)),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleErrorGin(c, authDomain.ErrInsufficientRole, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
