package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims authorise moves on a single game session of a single
// server process.
type SessionClaims struct {
	InstanceId    string `json:"instance_id"`
	GameSessionId int64  `json:"game_session_id"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

func loadSecret() ([]byte, error) {
	secret, ok := os.LookupEnv("SESSION_SECRET")
	if ok && secret != "" {
		return []byte(secret), nil
	}
	secretPath, ok := os.LookupEnv("SESSION_SECRET_FILE")
	if ok {
		b, err := os.ReadFile(secretPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read session secret: %w", err)
		}
		return b, nil
	}
	// tokens then only survive as long as the process
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("unable to generate session secret: %w", err)
	}
	return b, nil
}

func NewTokens() (*Tokens, error) {
	secret, err := loadSecret()
	if err != nil {
		return nil, err
	}

	t := &Tokens{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: time.Hour * 24,
	}

	return t, nil
}

func (t *Tokens) Sign(instanceId string, gameSessionId int64) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		InstanceId:    instanceId,
		GameSessionId: gameSessionId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(t.signingMethod, claims).SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(*jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{t.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
