package middleware

import (
	"net/http"

	"github.com/kataras/iris/v12"
)

// CORS 设置跨域响应头，origin 为空时放行所有来源
func CORS(origin string) iris.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if ctx.Method() == http.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
