package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"shopease/jwt"
)

// Context keys set for downstream handlers.
const (
	ContextUserID   = "UserID"
	ContextUsername = "Username"
	ContextEmail    = "Email"
	ContextTokenID  = "TokenID"
	ContextToken    = "Token"
)

// RevocationKey is the Redis key holding a signed-out token id. The entry
// carries the same TTL as the token, so the set never outlives the tokens
// it tracks.
func RevocationKey(tokenID string) string {
	return "revoked:" + tokenID
}

// RequireAuth rejects requests without a valid bearer token: 401 when the
// token is missing, 403 when it is malformed, expired, or signed out.
// Verification is signature-only except for the revocation lookup, which is
// skipped entirely when Redis is not configured.
func RequireAuth(secret []byte, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Missing token",
			})
			return
		}

		claims, err := jwt.VerifyToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Invalid or expired token",
			})
			return
		}

		if rdb != nil && claims.ID != "" {
			revoked, err := rdb.Exists(c, RevocationKey(claims.ID)).Result()
			if err != nil && err != redis.Nil {
				logrus.WithError(err).Warn("revocation lookup failed")
			}
			if revoked > 0 {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"message": "Invalid or expired token",
				})
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// UserID extracts the authenticated user id placed by RequireAuth.
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
