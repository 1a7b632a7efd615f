package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// userIDFromRequest extracts the caller's user id from an optional bearer
// token. Requests are never rejected here - an absent or invalid token just
// means the request row is recorded without a user.
func (m ApiHandler) userIDFromRequest(ctx *gin.Context) *uuid.UUID {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return nil
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	userID, err := m.parseJwt(raw)
	if err != nil {
		return nil
	}
	return userID
}

func (m ApiHandler) parseJwt(raw string) (*uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.JwtDecodeToken), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid jwt claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("jwt missing sub claim")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("jwt sub is not a uuid: %w", err)
	}

	return &userID, nil
}
