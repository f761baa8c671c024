package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
	"github.com/noah-isme/kairos-api/pkg/response"
)

const (
	// ContextClaimsKey stores the verified token identity.
	ContextClaimsKey = "authClaims"
	// ContextAdminKey stores the resolved admin account.
	ContextAdminKey = "currentAdmin"
)

// TokenAuthenticator verifies provider tokens and maps them onto admin accounts.
type TokenAuthenticator interface {
	ValidateToken(token string) (*models.AuthClaims, error)
	ResolveAdmin(ctx context.Context, claims *models.AuthClaims) (*models.Admin, error)
}

// Authenticated requires a valid bearer token and stores its claims.
func Authenticated(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, auth)
		if !ok {
			return
		}
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// AdminAuth requires a valid bearer token belonging to a registered admin.
func AdminAuth(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, auth)
		if !ok {
			return
		}

		admin, err := auth.ResolveAdmin(c.Request.Context(), claims)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}

// RequireApproved rejects admins still awaiting approval.
func RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := CurrentAdmin(c)
		if admin == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !admin.IsApproved {
			response.Error(c, appErrors.ErrPendingApproval)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireMainAdmin restricts a route to main admins.
func RequireMainAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := CurrentAdmin(c)
		if admin == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !admin.IsMainAdmin {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "main admin required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAdmin returns the admin resolved by AdminAuth, or nil.
func CurrentAdmin(c *gin.Context) *models.Admin {
	value, exists := c.Get(ContextAdminKey)
	if !exists {
		return nil
	}
	admin, _ := value.(*models.Admin)
	return admin
}

// CurrentClaims returns the token identity stored by Authenticated or AdminAuth, or nil.
func CurrentClaims(c *gin.Context) *models.AuthClaims {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.AuthClaims)
	return claims
}

func bearerClaims(c *gin.Context, auth TokenAuthenticator) (*models.AuthClaims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
		c.Abort()
		return nil, false
	}

	claims, err := auth.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		response.Error(c, err)
		c.Abort()
		return nil, false
	}
	return claims, true
}
