package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"festora-chat/internal/transport/httpdto"
	"festora-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthMiddleware verifies the bearer token and places the authenticated
// participant id on the request context. Token issuance and session
// management live in the identity service; this core only verifies.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			unauthorized(c)
			return
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			unauthorized(c)
			return
		}

		sub, err := claims.GetSubject()
		if err != nil {
			unauthorized(c)
			return
		}
		participantID, err := uuid.Parse(sub)
		if err != nil {
			unauthorized(c)
			return
		}

		ctx := WithParticipantID(c.Request.Context(), participantID)
		ctx = context.WithValue(ctx, logger.ParticipantIdKey, participantID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
	c.Abort()
}
