package common

const (
	// AuthorizationHeader carries the bearer token on HTTP requests and, lower-cased,
	// in gRPC metadata.
	AuthorizationHeader = "Authorization"

	// BearerScheme prefixes the token in the Authorization header.
	BearerScheme = "Bearer"
)
