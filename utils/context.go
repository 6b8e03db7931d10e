package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

func ClientIpFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ContextKeyClientIp).(string)
	return ip
}

func StoreClientIpInContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ContextKeyClientIp, ip)
}

func StoreClientIpInContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctxWithIp := StoreClientIpInContext(c.Request.Context(), c.ClientIP())
		c.Request = c.Request.WithContext(ctxWithIp)
		c.Next()
	}
}
