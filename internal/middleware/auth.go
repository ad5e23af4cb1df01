package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"taxcredit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)

// Context keys set by RequireRole.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

var (
	ErrMissingRole = errors.New("role not found in token")
	ErrUnknownRole = errors.New("unknown role")
)

// ValidRole reports whether role is one the service grants access to.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAccountant, RoleViewer:
		return true
	}
	return false
}

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only
	}
	return []byte(secret)
}

// IssueToken signs an HS256 token carrying subject and role.
func IssueToken(secret []byte, subject, role string, ttl time.Duration) (string, error) {
	if !ValidRole(role) {
		return "", ErrUnknownRole
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates an HMAC-signed token and returns its subject and role.
func ParseToken(secret []byte, tokenString string) (subject, role string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	role, ok = claims["role"].(string)
	if !ok || role == "" {
		return "", "", ErrMissingRole
	}
	subject, _ = claims["sub"].(string)
	return subject, role, nil
}

// RequireRole validates the bearer token and checks the role is in allowedRoles.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return
		}

		subject, userRole, err := ParseToken(GetJWTSecret(), parts[1])
		if errors.Is(err, ErrMissingRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token: "+err.Error()))
			return
		}

		roleAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				roleAllowed = true
				break
			}
		}
		if !roleAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(ContextUserID, subject)
		c.Set(ContextUserRole, userRole)

		c.Next()
	}
}

// Actor returns the token subject of the current request, or "" when the
// route is not protected.
func Actor(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
