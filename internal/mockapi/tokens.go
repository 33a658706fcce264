package mockapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// accessTokenTTL bounds how long an issued access token stays valid.
const accessTokenTTL = 15 * time.Minute

// issueAccessToken mints an HS256 access token for the user
func (s *Server) issueAccessToken(userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"type": "access",
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	})
	return token.SignedString([]byte(s.secret))
}

// issueRefreshToken mints and records an opaque refresh token
func (s *Server) issueRefreshToken(userID int) string {
	token := uuid.New().String()
	s.state.mu.Lock()
	s.state.refreshTokens[token] = userID
	s.state.mu.Unlock()
	return token
}

// redeemRefreshToken consumes a refresh token, returning the user id it was
// issued for. Tokens are single use.
func (s *Server) redeemRefreshToken(token string) (int, bool) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	userID, ok := s.state.refreshTokens[token]
	if ok {
		delete(s.state.refreshTokens, token)
	}
	return userID, ok
}

// revokeRefreshTokens drops every refresh token issued for the user
func (s *Server) revokeRefreshTokens(userID int) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for token, id := range s.state.refreshTokens {
		if id == userID {
			delete(s.state.refreshTokens, token)
		}
	}
}

// parseAccessToken validates an access token and returns the user id
func (s *Server) parseAccessToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	if claims["type"] != "access" {
		return 0, errors.New("not an access token")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("missing subject claim")
	}
	return int(sub), nil
}
