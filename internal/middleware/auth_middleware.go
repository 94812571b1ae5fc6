package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextAccountID = "accountID"
	ContextEmail     = "email"
	ContextRoleType  = "roleType"
)

// AuthMiddleware guards routes with access tokens
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// tokenFromHeader accepts "Bearer <jwt>" and, for clients that drop the scheme, a raw token.
func tokenFromHeader(header string) (string, error) {
	header = strings.Trim(header, "\"'")
	if strings.Count(header, ".") == 2 && !strings.HasPrefix(header, "Bearer ") {
		return header, nil
	}
	return auth.ExtractBearerToken(header)
}

// JWTAuth validates the access token and puts the account identity on the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			AbortWithError(c, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing"))
			return
		}

		tokenString, err := tokenFromHeader(authHeader)
		if err != nil {
			AbortWithError(c, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Invalid token format"))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed").WithDetails("Invalid token")
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				detail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Authentication failed").WithDetails("Token has expired")
			case errors.Is(err, auth.ErrInvalidFormat):
				detail.WithDetails("Invalid token format")
			}
			AbortWithError(c, detail)
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, claims.RoleType)

		c.Next()
	}
}

// RoleRequired rejects accounts whose role is not requiredRole. Must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRoleType)
		if role == "" {
			AbortWithError(c, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Account role not found"))
			return
		}
		if role != requiredRole {
			AbortWithError(c, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation"))
			return
		}

		c.Next()
	}
}

// AccountID returns the authenticated account ID set by JWTAuth
func AccountID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextAccountID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok && id > 0
}
