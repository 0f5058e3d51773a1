/*
 * Copyright (c) tkc17.
 */
package util

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const authSecretFile = "auth.key"

// Claims for the JWT.
type Claims struct {
	ClientId string `json:"clientId"`
	jwt.RegisteredClaims
}

// AuthSecretPath returns the configured path of the shared secret file.
// Returns empty string if API auth is not set up.
func AuthSecretPath(config *Config) string {
	return config.String(ServerAuthSecretKey)
}

// AuthSecret reads the shared secret used to sign and verify API tokens.
func AuthSecret(ctx context.Context, config *Config) ([]byte, error) {
	secretPath := AuthSecretPath(config)
	if secretPath == "" {
		return nil, fmt.Errorf("Auth secret path is not configured")
	}
	secret, err := os.ReadFile(secretPath)
	if err != nil {
		FileLogger().Errorf(ctx, "Error while reading the auth secret: %s", err.Error())
		return nil, err
	}
	secret = bytes.TrimSpace(secret)
	if len(secret) == 0 {
		return nil, fmt.Errorf("Auth secret file %s is empty", secretPath)
	}
	return secret, nil
}

// EnsureAuthSecret creates a random secret file under the config directory
// if none is configured yet, and saves its path in the config.
func EnsureAuthSecret(ctx context.Context, config *Config) (string, error) {
	secretPath := AuthSecretPath(config)
	if secretPath != "" {
		if _, err := os.Stat(secretPath); err == nil {
			return secretPath, nil
		}
	}
	if secretPath == "" {
		secretPath = filepath.Join(ConfigDir(), authSecretFile)
	}
	ba := make([]byte, 32)
	if _, err := rand.Read(ba); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(secretPath), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(secretPath, []byte(hex.EncodeToString(ba)), 0600); err != nil {
		FileLogger().Errorf(ctx, "Error while saving the auth secret to %s: %s", secretPath, err.Error())
		return "", err
	}
	if err := config.Update(ServerAuthSecretKey, secretPath); err != nil {
		return "", err
	}
	FileLogger().Infof(ctx, "Saved new auth secret to %s", secretPath)
	return secretPath, nil
}

// Creates a new JWT with the agent id claim.
// The JWT is signed using the shared secret.
func GenerateJWT(ctx context.Context, config *Config, ttl time.Duration) (string, error) {
	secret, err := AuthSecret(ctx, config)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{
		ClientId: config.String(AgentIdKey),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    JwtIssuer,
			Subject:   JwtSubject,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyJWT checks the token signature and expiry against the shared secret.
func VerifyJWT(ctx context.Context, config *Config, authToken string) (*jwt.MapClaims, error) {
	secret, err := AuthSecret(ctx, config)
	if err != nil {
		FileLogger().Errorf(ctx, "Error in getting the auth secret: %s", err.Error())
		return nil, err
	}
	token, err := jwt.ParseWithClaims(
		authToken,
		&jwt.MapClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("Unexpected token signing method")
			}
			return secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("Invalid token: %w", err)
	}
	return token.Claims.(*jwt.MapClaims), nil
}
