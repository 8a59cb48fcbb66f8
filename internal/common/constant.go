// Package common contains shared constants and sentinel errors used across
// ScanMed server components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header value.
const BearerPrefix = "Bearer "

// RoleAdmin is the token role allowed to read platform-wide statistics.
const RoleAdmin = "admin"
