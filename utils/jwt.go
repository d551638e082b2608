package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tnqbao/gau-media-service/config"
)

func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func ParseToken(tokenString string, config *config.EnvConfig) (*jwt.Token, error) {
	secret := []byte(config.JWT.SecretKey)
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// InjectClaimsToContext stores the resource grant carried by an LTI access
// token. The token subject is the asset the launch was scoped to.
func InjectClaimsToContext(c *gin.Context, claims jwt.MapClaims) error {
	resourceIDStr, ok := claims["resource_id"].(string)
	if !ok {
		if sub, subOk := claims["sub"].(string); subOk {
			resourceIDStr = sub
		} else {
			return errors.New("invalid resource_id format")
		}
	}
	if _, err := uuid.Parse(resourceIDStr); err != nil {
		return errors.New("invalid resource_id format")
	}
	c.Set("resource_id", resourceIDStr)

	if roles, ok := claims["roles"].(string); ok {
		c.Set("roles", roles)
	} else {
		c.Set("roles", "")
	}
	return nil
}

// GetResourceIDFromContext returns the asset id the request token grants
// access to.
func GetResourceIDFromContext(c *gin.Context) (uuid.UUID, error) {
	resourceID := c.GetString("resource_id")
	if resourceID == "" {
		return uuid.Nil, errors.New("resource_id is missing from context")
	}
	parsed, err := uuid.Parse(resourceID)
	if err != nil {
		return uuid.Nil, errors.New("invalid resource_id format: " + err.Error())
	}
	return parsed, nil
}
