package middleware

import (
	"strings"

	"carefund/internal/models"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by AuthRequired.
const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
	ContextEmail  = "user_email"
)

// AuthRequired validates the bearer token and puts the caller's identity
// into the request context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c, jwtSecret)
		if !ok {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present but lets
// anonymous requests through. Used on the donation checkout, which serves
// guests and logged-in donors alike.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c, jwtSecret); ok {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextEmail, claims.Email)
		}
		c.Next()
	}
}

// AdminRequired gates admin console routes. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return roleRequired(models.UserRoleAdmin)
}

// VendorRequired gates wallet and redemption routes. Admins pass too.
func VendorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		r, ok := role.(string)
		if !ok || (r != string(models.UserRoleVendor) && r != string(models.UserRoleAdmin)) {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func roleRequired(want models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if r, ok := role.(string); !ok || r != string(want) {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwtSecret string) (*utils.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	claims, err := utils.ValidateToken(tokenString, jwtSecret)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// GetUserID reads the authenticated user id set by AuthRequired.
func GetUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// GetRole reads the authenticated role, empty for anonymous requests.
func GetRole(c *gin.Context) string {
	v, exists := c.Get(ContextRole)
	if !exists {
		return ""
	}
	r, _ := v.(string)
	return r
}

// IsAdmin reports whether the request carries the admin role.
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == string(models.UserRoleAdmin)
}
