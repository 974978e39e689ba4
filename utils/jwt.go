package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// SessionTokenIssuer signs and verifies the tokens that guard checkout sessions.
type SessionTokenIssuer struct {
	secret []byte
}

func NewSessionTokenIssuer(secret string) (*SessionTokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}
	return &SessionTokenIssuer{secret: []byte(secret)}, nil
}

// GenerateToken creates a signed token bound to a session ID and flow kind ("booking" or "meals").
func (i *SessionTokenIssuer) GenerateToken(sessionID, flow string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sessionID,
		"flow": flow,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func (i *SessionTokenIssuer) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
}

// ExtractSession returns the session ID and flow carried by a valid token.
func (i *SessionTokenIssuer) ExtractSession(tokenString string) (string, string, error) {
	token, err := i.ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", "", errors.New("token does not contain a valid 'sid' claim")
	}
	flow, _ := claims["flow"].(string)

	return sid, flow, nil
}
