package domain

import "time"

// TokenType is the scheme advertised to clients for issued access tokens.
const TokenType = "Bearer"

// AccessToken describes an issued bearer token.
type AccessToken struct {
	Value     string
	Subject   string
	ExpiresAt time.Time
}
