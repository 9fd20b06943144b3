package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/loinx/user-management/internal/core/domain"
)

// TokenService issues and checks HS256-signed JWTs. The signing key
// and lifetime are fixed at construction and never mutated.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token whose subject is the user's email.
// Reserved claims (sub, iat, exp) cannot be overridden by extraClaims.
func (s *TokenService) Issue(user *domain.User, extraClaims map[string]any) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{}
	for k, v := range extraClaims {
		claims[k] = v
	}
	claims["sub"] = user.Email
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttl).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ExtractSubject verifies the signature and returns the subject claim.
// Expiry is deliberately not checked here so callers can resolve the
// record before asserting validity.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, s.keyFunc, jwt.WithoutClaimsValidation()); err != nil {
		return "", domain.ErrMalformedToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrMalformedToken
	}
	return sub, nil
}

// Validate reports whether token is currently valid for user. The
// subject is compared against the freshly loaded record's email, not
// against whatever identity the token was minted for.
func (s *TokenService) Validate(token string, user *domain.User) bool {
	if user == nil {
		return false
	}
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return false
	}
	sub, _ := claims["sub"].(string)
	return sub == user.Email
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.secret, nil
}
