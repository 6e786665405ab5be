// Package common contains shared constants and sentinel errors used across
// GrowFlow components.
package common

// AuthorizationHeaderName is the HTTP header carrying the session token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// MaxGrowthStage is the last growth stage a task can reach.
const MaxGrowthStage = 5
