package constants

const (
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // refresh token lifetime, 7 days

	// Redis key prefixes. Per-user keys append the decimal user id.
	REDIS_USER_TOKEN_PREFIX  = "family:user_token:"  // current refresh token id
	REDIS_USER_LIST_PREFIX   = "family:users:"       // public user list excluding the id
	REDIS_CONNECTIONS_PREFIX = "family:connections:" // approved connections of the id
	REDIS_USER_LIST_PATTERN  = "family:users:*"

	// Context key set by the JWT middleware.
	CTX_USER_ID = "user_id"
)
