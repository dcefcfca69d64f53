package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	userRepo "sntsa.mx/becas/internal/modules/user/repository"
)

// TokenDenylist is the slice of the redis client the middleware needs to
// check revoked token ids.
type TokenDenylist interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

type AuthMiddleware struct {
	usuarioRepo userRepo.UsuarioRepository
	rdb         TokenDenylist
	secret      string
}

func NewAuthMiddleware(usuarioRepo userRepo.UsuarioRepository, rdb TokenDenylist, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		usuarioRepo: usuarioRepo,
		rdb:         rdb,
		secret:      secret,
	}
}

// DenylistKey is the redis key holding a revoked token id.
func DenylistKey(jti string) string {
	return "denylist:" + jti
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		// Signed-out tokens sit in the denylist until they expire.
		if m.rdb != nil && claims.ID != "" {
			if n, err := m.rdb.Exists(c.Request.Context(), DenylistKey(claims.ID)).Result(); err == nil && n > 0 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.Subject)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		usuario, err := m.usuarioRepo.FindByID(c.Request.Context(), userID.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		if !usuario.Staff {
			c.JSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			c.Abort()
			return
		}

		c.Set("usuario", usuario)
		c.Next()
	}
}
