// Copyright (c) tkc17.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tkc17/iw-parser/util"
)

// Authenticator is the server auth handler.
type Authenticator struct {
	config *util.Config
}

// NewAuthenticator returns an authenticator verifying tokens against
// the configured secret.
func NewAuthenticator(config *util.Config) *Authenticator {
	return &Authenticator{config: config}
}

func (authenticator *Authenticator) authorize(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("Authorization token is not provided")
	}
	if _, err := util.VerifyJWT(ctx, authenticator.config, token); err != nil {
		return fmt.Errorf("Authorization token is invalid - %s", err.Error())
	}
	return nil
}

// Middleware authorizes API requests with a bearer token. WebSocket
// clients may pass the token as a query parameter instead.
func (authenticator *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := authenticator.authorize(r.Context(), requestToken(r)); err != nil {
			writeError(r.Context(), w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
