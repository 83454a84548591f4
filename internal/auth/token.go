package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTokenTTL is the access token lifetime when none is configured.
	DefaultTokenTTL = 30 * time.Minute

	claimSubject    = "sub"
	claimExpiration = "exp"
)

var signingMethod = jwt.SigningMethodHS256

// TokenManager issues and validates HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
	parser *jwt.Parser
}

// NewTokenManager builds a manager. A nil clock uses SystemClock; a non-positive ttl uses DefaultTokenTTL.
func NewTokenManager(secret string, ttl time.Duration, clock Clock) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if clock == nil {
		clock = SystemClock
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingMethod.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a copy of claims with an exp of now+ttl.
func (tm *TokenManager) Issue(claims jwt.MapClaims) (string, time.Time, error) {
	expiresAt := tm.clock.Now().UTC().Add(tm.ttl)

	payload := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		payload[k] = v
	}
	payload[claimExpiration] = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(signingMethod, payload).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// IssueFor issues a token whose subject is the given identity.
func (tm *TokenManager) IssueFor(subject string) (string, time.Time, error) {
	return tm.Issue(jwt.MapClaims{claimSubject: subject})
}

// Validate verifies signature, expiry and subject presence. Every failure is ErrInvalidCredentials.
func (tm *TokenManager) Validate(tokenStr string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := tm.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}

	if _, ok := Subject(claims); !ok {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// Subject extracts a non-empty string "sub" claim.
func Subject(claims jwt.MapClaims) (string, bool) {
	sub, ok := claims[claimSubject].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
