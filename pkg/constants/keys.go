package constants

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	ViewerKey    ContextKey = "viewer"
	RequestIDKey ContextKey = "request_id"
)
