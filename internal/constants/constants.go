package constants

// Context keys
const (
	ContextKeyPrincipal   = "principal"
	ContextKeyCurrentUser = "current_user"
	ContextKeyRequestID   = "request_id"
)

// Headers
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderRequestID  = "X-Request-ID"
)

// Field limits
const (
	MinPasswordLength  = 3
	MinLabelNameLength = 3
	MaxLabelNameLength = 1000
)
