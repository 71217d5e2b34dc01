package contextkeys

type contextKey string

const (
	UserIDKey    contextKey = "UserID"
	UserRoleKey  contextKey = "UserRole"
	RequestIPKey contextKey = "RequestIP"
	UserAgentKey contextKey = "UserAgent"
)
