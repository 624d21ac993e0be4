package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/kundli-service/internal/models"
)

// TokenTTL is the lifetime of an issued API token
const TokenTTL = 24 * time.Hour

// ErrInvalidCredentials is returned for an unknown client or wrong secret
var ErrInvalidCredentials = errors.New("invalid credentials")

// IssueToken authenticates an API client and returns a signed JWT
func (s *Service) IssueToken(req models.TokenRequest) (models.TokenResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return models.TokenResponse{}, err
	}
	if subtle.ConstantTimeCompare([]byte(req.ClientID), []byte(s.config.APIClientID)) != 1 {
		return models.TokenResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.APIClientSecretHash), []byte(req.ClientSecret)); err != nil {
		return models.TokenResponse{}, ErrInvalidCredentials
	}

	// Generate JWT
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   req.ClientID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("Token issued for client: %s", req.ClientID)
	return models.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int64(TokenTTL.Seconds()),
	}, nil
}
