package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/pkg/metrics"
)

const defaultTokenTTL = 24 * time.Hour

// tokenClaims is the signed payload of a bearer token.
type tokenClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens with a process-wide secret.
type TokenService struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

func NewTokenService(jwtSecret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	s := &TokenService{
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s
}

// Issue signs a token for user that expires tokenTTL from now.
func (s *TokenService) Issue(user domain.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Username: user.DisplayName,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry in one pass. Every failure
// collapses into domain.ErrInvalidToken so callers cannot tell them apart.
func (s *TokenService) Verify(token string) (domain.User, error) {
	var claims tokenClaims
	tkn, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return domain.User{}, domain.ErrInvalidToken
	}

	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	return domain.User{
		ID:          claims.Subject,
		DisplayName: claims.Username,
		IsAdmin:     claims.IsAdmin,
	}, nil
}
