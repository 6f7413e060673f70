package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/internal/interfaces/http/response"
	"kyc-platform.backend/pkg/jwt"
	"kyc-platform.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// CallerAddressKey is the gin context key for the authenticated wallet
	CallerAddressKey = "callerAddress"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware authenticates the caller wallet from a bearer token
func AuthMiddleware(jwtService tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthenticated(c, "Authorization header is required", nil)
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthenticated(c, "Invalid authorization format. Use: Bearer <token>", nil)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthenticated(c, "Token has expired", err)
				return
			}
			abortUnauthenticated(c, "Invalid token", err)
			return
		}
		if !common.IsHexAddress(claims.Address) {
			abortUnauthenticated(c, "Invalid token", nil)
			return
		}

		caller := common.HexToAddress(claims.Address)
		c.Set(CallerAddressKey, caller)
		ctx := context.WithValue(c.Request.Context(), logger.CallerAddressKey, caller.Hex())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, message string, err error) {
	fields := []zap.Field{zap.String("path", c.Request.URL.Path), zap.String("reason", message)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.Warn(c.Request.Context(), "Authentication failed", fields...)

	response.Error(c, domainerrors.Unauthorized(message))
	c.Abort()
}

// GetCallerAddress gets the authenticated wallet from context
func GetCallerAddress(c *gin.Context) (common.Address, bool) {
	v, exists := c.Get(CallerAddressKey)
	if !exists {
		return common.Address{}, false
	}
	addr, ok := v.(common.Address)
	return addr, ok
}

// MustCallerAddress returns the caller or writes a 401 and reports false
func MustCallerAddress(c *gin.Context) (common.Address, bool) {
	addr, ok := GetCallerAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		c.Abort()
	}
	return addr, ok
}
