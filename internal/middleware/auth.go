package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tradehive/tradehive_backend/internal/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware creates a Gin middleware handler that validates staff JWT
// tokens and resolves the caller's user and company IDs into the request
// context. All tenant-scoped routes sit behind this middleware.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := bearerToken(c)
		if !ok {
			logger.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Audience == utils.AudiencePortal {
			logger.Warn("Portal token presented on a staff route")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if claims.Subject == "" || claims.CompanyID == "" {
			logger.Error("Subject or company missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.Subject)
		ctx = context.WithValue(ctx, companyIDKey, claims.CompanyID)

		enrichedLogger := logger.With(
			slog.String("user_id", claims.Subject),
			slog.String("company_id", claims.CompanyID),
		)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// PortalAuthMiddleware validates portal session tokens issued to end
// customers after magic-link verification. It resolves the customer and
// company IDs into the request context.
func PortalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := bearerToken(c)
		if !ok {
			// Portal pages may also carry the session in a cookie.
			cookie, err := c.Cookie(utils.PortalSessionCookie)
			if err != nil || cookie == "" {
				logger.Warn("Portal session missing")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Portal session required"})
				return
			}
			tokenString = cookie
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid portal session", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired portal session"})
			return
		}

		if claims.Audience != utils.AudiencePortal || claims.Subject == "" || claims.CompanyID == "" {
			logger.Warn("Token is not a portal session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired portal session"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), customerIDKey, claims.Subject)
		ctx = context.WithValue(ctx, companyIDKey, claims.CompanyID)
		ctx = context.WithValue(ctx, loggerCtxKey, logger.With(
			slog.String("portal_customer_id", claims.Subject),
			slog.String("company_id", claims.CompanyID),
		))

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
