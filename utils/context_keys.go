package utils

// ContextKey indexes the request-scoped values the middlewares store on the
// context: credentials, client IP, logger, segment client and tracer.
type ContextKey int

const (
	ContextKeyCredentials ContextKey = iota
	ContextKeyClientIp
	ContextKeyLogger
	ContextKeySegmentClient
	ContextKeyOpenTelemetryTracer
)
