package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/ancheloroman23/EasyLogin/internal/auth/service TokenGenerator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	Generate(userID int) (string, time.Time, error)
	Verify(tokenString string) (*JWTCustomClaims, error)
}

type TokenService struct {
	Secret   string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID int `json:"id"`
}

func NewTokenService(secret, issuer, audience string, expiryMinutes int) *TokenService {
	return &TokenService{
		Secret:   secret,
		Issuer:   issuer,
		Audience: audience,
		Expiry:   time.Duration(expiryMinutes) * time.Minute,
	}
}

// Generate signs a token whose subject is the user's id, expiring after the
// configured lifetime.
func (ts *TokenService) Generate(userID int) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.Expiry)

	claims := JWTCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    ts.Issuer,
			Audience:  jwt.ClaimStrings{ts.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Verify parses the given token string and validates its signature, issuer,
// audience and expiry.
func (ts *TokenService) Verify(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	}, jwt.WithIssuer(ts.Issuer), jwt.WithAudience(ts.Audience))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
