/*
 * Copyright (c) tkc17.
 */
package util

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setTestAuthSecret(t *testing.T, config *Config) {
	t.Helper()
	secretPath := filepath.Join(t.TempDir(), "auth.key")
	err := os.WriteFile(secretPath, []byte("86f71ab95d3d2c2b8e1ea4adar64bc33"), 0600)
	if err != nil {
		t.Fatalf("Error while writing auth secret - %s", err.Error())
	}
	if err := config.Update(ServerAuthSecretKey, secretPath); err != nil {
		t.Fatalf("Error while updating config - %s", err.Error())
	}
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	ctx := context.Background()
	config := CurrentConfig()
	setTestAuthSecret(t, config)
	if err := config.Update(AgentIdKey, "test-agent-id"); err != nil {
		t.Fatalf("Error while updating config - %s", err.Error())
	}
	token, err := GenerateJWT(ctx, config, time.Minute)
	if err != nil {
		t.Fatalf("Error generating JWT - %s", err.Error())
	}
	claims, err := VerifyJWT(ctx, config, token)
	if err != nil {
		t.Fatalf("Error verifying JWT - %s", err.Error())
	}
	if got := (*claims)[JwtClientIdClaim]; got != "test-agent-id" {
		t.Fatalf("Expected test-agent-id but got %v", got)
	}
}

func TestVerifyJWTTampered(t *testing.T) {
	ctx := context.Background()
	config := CurrentConfig()
	setTestAuthSecret(t, config)
	token, err := GenerateJWT(ctx, config, time.Minute)
	if err != nil {
		t.Fatalf("Error generating JWT - %s", err.Error())
	}
	_, err = VerifyJWT(ctx, config, token+"x")
	if err == nil {
		t.Fatalf("Expected error for tampered token")
	}
}

func TestVerifyJWTExpired(t *testing.T) {
	ctx := context.Background()
	config := CurrentConfig()
	setTestAuthSecret(t, config)
	token, err := GenerateJWT(ctx, config, -time.Minute)
	if err != nil {
		t.Fatalf("Error generating JWT - %s", err.Error())
	}
	_, err = VerifyJWT(ctx, config, token)
	if err == nil {
		t.Fatalf("Expected error for expired token")
	}
}

func TestEnsureAuthSecret(t *testing.T) {
	ctx := context.Background()
	config := CurrentConfig()
	if err := config.Update(ServerAuthSecretKey, ""); err != nil {
		t.Fatalf("Error while updating config - %s", err.Error())
	}
	secretPath, err := EnsureAuthSecret(ctx, config)
	if err != nil {
		t.Fatalf("Error in EnsureAuthSecret - %s", err.Error())
	}
	info, err := os.Stat(secretPath)
	if err != nil {
		t.Fatalf("Expected secret file at %s - %s", secretPath, err.Error())
	}
	if info.Size() == 0 {
		t.Fatalf("Expected non-empty secret file")
	}
	if got := config.String(ServerAuthSecretKey); got != secretPath {
		t.Fatalf("Expected %s but got %s", secretPath, got)
	}
	// A second call must reuse the same secret.
	again, err := EnsureAuthSecret(ctx, config)
	if err != nil {
		t.Fatalf("Error in EnsureAuthSecret - %s", err.Error())
	}
	if again != secretPath {
		t.Fatalf("Expected %s but got %s", secretPath, again)
	}
}
