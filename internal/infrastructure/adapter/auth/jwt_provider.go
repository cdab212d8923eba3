package auth

import (
	"errors"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	authport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/auth"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultRole is the role claim stamped on every issued token
const DefaultRole = "service"

// supportedAlgorithms lists the HMAC signing methods the provider accepts
var supportedAlgorithms = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// JWTProvider issues and validates HMAC-signed JWT credentials carrying
// subject, issued-at and expiry claims
type JWTProvider struct {
	secret       []byte
	method       *jwt.SigningMethodHMAC
	algorithm    string
	expiry       time.Duration
	timeProvider coreport.TimeProvider
}

// NewJWTProvider creates a token provider. The algorithm must be one of
// HS256, HS384 or HS512 and the secret must not be empty.
func NewJWTProvider(secret, algorithm string, expiry time.Duration, timeProvider coreport.TimeProvider) (*JWTProvider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	method, ok := supportedAlgorithms[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm: %s", algorithm)
	}
	if expiry <= 0 {
		return nil, errors.New("jwt expiry must be positive")
	}

	return &JWTProvider{
		secret:       []byte(secret),
		method:       method,
		algorithm:    algorithm,
		expiry:       expiry,
		timeProvider: timeProvider,
	}, nil
}

// Issue creates a signed token for the subject with iat and exp claims,
// plus a role and a unique token identifier
func (p *JWTProvider) Issue(subject string) (string, time.Duration, error) {
	now := p.timeProvider.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"iat":  now.Unix(),
		"exp":  now.Add(p.expiry).Unix(),
		"role": DefaultRole,
		"jti":  uuid.NewString(),
	}

	token := jwt.NewWithClaims(p.method, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, p.expiry, nil
}

// Validate checks the signature and the required iat/exp claims, rejecting
// expired or malformed tokens with ErrUnauthorized
func (p *JWTProvider) Validate(tokenString string) (*authport.Claims, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return p.secret, nil
		},
		jwt.WithValidMethods([]string{p.algorithm}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(p.timeProvider.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", errs.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}

	claims := &authport.Claims{}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if jti, ok := mapClaims["jti"].(string); ok {
		claims.TokenID = jti
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	} else {
		return nil, fmt.Errorf("%w: missing iat claim", errs.ErrUnauthorized)
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
