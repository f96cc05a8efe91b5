package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims accepts tokens from the identity provider, which carries the user id in
// "sub"; tokens minted by this service also set "user_id".
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`

	jwtlib.RegisteredClaims
}

// User returns the authenticated user id, preferring "user_id" over "sub".
func (c Claims) User() (uuid.UUID, error) {
	raw := strings.TrimSpace(c.UserID)
	if raw == "" {
		raw = strings.TrimSpace(c.Subject)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return id, nil
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret          []byte
	issuer          string
	accessExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(secret, issuer string, accessExpiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:          []byte(secret),
		issuer:          strings.TrimSpace(issuer),
		accessExpiresIn: accessExpiresIn,
		now:             time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	if len(s.secret) == 0 || s.accessExpiresIn <= 0 || userID == uuid.Nil {
		return "", ErrTokenInvalid
	}
	now := s.now().UTC()

	c := Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.accessExpiresIn)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	p := jwtlib.NewParser(opts...)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if _, err := c.User(); err != nil {
		return Claims{}, err
	}
	return c, nil
}
