// Package constants holds values shared across layers.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Gateway identity headers
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// Websocket handshake query parameters
const (
	QueryUserID = "userId"
	QueryRole   = "role"
	QueryToken  = "token"
)

// Echo context keys
const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
)
