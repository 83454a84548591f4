package auth

import "errors"

var (
	// ErrInvalidCredentials covers every verification failure: wrong password, malformed,
	// forged or expired tokens and tokens naming an unknown user.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrHashingFailure signals an unrecoverable failure while deriving a password hash.
	ErrHashingFailure = errors.New("password hashing failed")
)
