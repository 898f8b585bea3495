package middleware

import (
	"strings"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/gomall/internal/auth"
	"github.com/example/gomall/internal/config"
)

const principalKey = "auth.principal"

// JWTAuth 校验 Authorization 头中的 Bearer JWT 并注入 Principal。
// cache 可以为 nil，此时每次请求都走验签。
func JWTAuth(cfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		token := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "missing token"})
			return
		}

		var claims *auth.Claims
		if cache != nil {
			cached, ok, err := cache.Get(ctx.Request().Context(), token)
			if err != nil {
				// 缓存故障降级为直接验签
				zap.L().Warn("token cache get failed", zap.Error(err))
			} else if ok {
				claims = cached
			}
		}
		if claims == nil {
			parsed, err := auth.ParseToken(cfg, token)
			if err != nil {
				ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "invalid token"})
				return
			}
			claims = parsed
			if cache != nil {
				if err := cache.Set(ctx.Request().Context(), token, claims); err != nil {
					zap.L().Warn("token cache set failed", zap.Error(err))
				}
			}
		}

		ctx.Values().Set(principalKey, auth.Principal{UserID: claims.UserID, Role: claims.Role})
		ctx.Next()
	}
}

// PrincipalFrom 取出鉴权中间件注入的认证主体
func PrincipalFrom(ctx iris.Context) auth.Principal {
	p, _ := ctx.Values().Get(principalKey).(auth.Principal)
	return p
}

// RequireRoles 仅放行指定角色，其余一律 403
func RequireRoles(roles ...string) iris.Handler {
	return func(ctx iris.Context) {
		p := PrincipalFrom(ctx)
		for _, r := range roles {
			if p.Role == r {
				ctx.Next()
				return
			}
		}
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"message": "Forbidden"})
	}
}
