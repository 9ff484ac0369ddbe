package constants

// Session and context keys
const (
	SessionCookieName  = "workmatch_session"
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Content limits
const (
	MaxMessageLength    = 5000
	MaxSkillsPerEntity  = 50
	MaxSuggestedSkills  = 10
	NotificationPreview = 80
)
