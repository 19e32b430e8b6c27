package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/pkg/auth"
)

// actorContextKey is where the resolved actor lives in the gin context
const actorContextKey = "actor"

// AuthMiddleware validates access tokens and resolves the acting user
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	authService *services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved actor for the handlers downstream
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(token)
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "access token expired")))
				return
			}
			abortUnauthorized(c, "invalid access token")
			return
		}

		actor, err := m.authService.ResolveActor(c.Request.Context(), claims)
		if err != nil {
			abortUnauthorized(c, "invalid access token")
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// RoleRequired allows only the given roles past. It assumes Authenticate
// already ran.
func RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "insufficient role")))
	}
}

// GetActor returns the actor stored by Authenticate
func GetActor(c *gin.Context) (appauth.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return appauth.Actor{}, false
	}
	actor, ok := value.(appauth.Actor)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)))
}
