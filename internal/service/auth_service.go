package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"drive-file-copy/internal/model"
)

// AuthService guards the driver API behind a single operator passphrase.
// The passphrase is stored as a bcrypt hash in configuration; successful
// login yields a short-lived HS256 access token.
type AuthService struct {
	passphraseHash []byte
	jwtSecret      []byte
	accessTTL      time.Duration
}

func NewAuthService(passphraseHash, jwtSecret string, accessTTL time.Duration) *AuthService {
	return &AuthService{
		passphraseHash: []byte(passphraseHash),
		jwtSecret:      []byte(jwtSecret),
		accessTTL:      accessTTL,
	}
}

func (s *AuthService) Login(passphrase string) (model.TokenPair, error) {
	if err := bcrypt.CompareHashAndPassword(s.passphraseHash, []byte(passphrase)); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	token, err := s.issueToken()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return model.TokenPair{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *AuthService) issueToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "operator",
		"typ": "access",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies an access token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (model.AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return model.AuthClaims{}, model.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.AuthClaims{}, model.ErrUnauthorized
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return model.AuthClaims{}, model.ErrUnauthorized
	}

	out := model.AuthClaims{Type: "access"}
	out.Subject, _ = claims["sub"].(string)
	out.TokenID, _ = claims["jti"].(string)
	return out, nil
}
