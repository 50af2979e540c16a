package constants

// gin context keys
const (
	CtxUserID    = "user_id"    // uint, set by JWTAuth
	CtxPhone     = "phone"      // string, set by JWTAuth
	CtxRequestID = "request_id" // string, set by RequestID
)

// headers
const (
	HeaderRequestID  = "X-Request-ID"
	HeaderSearchTier = "X-Search-Tier"
)

const (
	SHUTDOWN_TIMEOUT_SECONDS = 10  // graceful shutdown window
	BATCH_INSERT_SIZE        = 100 // rows per CreateInBatches call
)
