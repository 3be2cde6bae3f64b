package tool

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/go-vantage/vantage/internal/engine/consts"
	"github.com/go-vantage/vantage/pkg/http"
	"github.com/go-vantage/vantage/pkg/http/jwt"
)

/**
 * @time: 2025/3/15 19:51
 * @file: token.go
 * @description: token tool
 */

func ParseAuthorizationToken(c *fiber.Ctx, secretKey string) (*jwt.AuthClaims, error) {
	token := c.Get("Authorization")
	if token == "" {
		return nil, errors.New(http.TokenBeEmpty.Msg)
	}
	if strings.HasPrefix(token, "Bearer ") {
		token = strings.TrimPrefix(token, "Bearer ")
	} else {
		return nil, errors.New(http.TokenFormatIncorrect.Msg)
	}
	claims, err := jwt.ParseToken(token, secretKey)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ClaimsFromCtx 读取认证中间件写入的 claims
func ClaimsFromCtx(c *fiber.Ctx) (*jwt.AuthClaims, error) {
	claims, ok := c.Locals(consts.CLAIMS).(*jwt.AuthClaims)
	if !ok || claims == nil {
		return nil, errors.New(http.AuthenticationFailed.Msg)
	}
	return claims, nil
}
