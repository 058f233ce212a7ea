// Package sessionstore builds the admin session backend.
// File: sessionstore/sessionstore.go
package sessionstore

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"

	"fest-registration/config"
	"fest-registration/logger"
)

// Session keys shared by the login handler and the admin guard.
const (
	KeyAdmin      = "admin"
	KeyLoggedInAt = "logged_in_at"
)

// Options derives cookie attributes from the configuration.
func Options(cfg *config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.TTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.SecureCookies(),
		SameSite: http.SameSiteLaxMode,
	}
}

// Keys returns the hash and encryption keys for securecookie. An empty
// secret yields random keys, so sessions do not survive a restart.
func Keys(secret string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		return securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32), nil
	}
	hashKey = make([]byte, 64)
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte("festreg session hash")), hashKey); err != nil {
		return nil, nil, err
	}
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte("festreg session block")), blockKey); err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

// New returns the store selected by SESSION_STORE. A redis store also
// implements io.Closer.
func New(cfg *config.Config) (sessions.Store, error) {
	if cfg.Session.Secret == "" {
		logger.Warn.Println("SESSION_SECRET not set; using a random key, sessions end on restart")
	}
	hashKey, blockKey, err := Keys(cfg.Session.Secret)
	if err != nil {
		return nil, fmt.Errorf("derive session keys: %w", err)
	}

	var store sessions.Store
	switch cfg.Session.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			// the store keeps working once redis comes up
			logger.Warn.Printf("Redis at %s not reachable yet: %v", cfg.Redis.Addr, err)
		}
		store = NewRedisStore(client, cfg.Redis.Prefix, hashKey, blockKey)
		logger.Info.Printf("Session store: redis (%s)", cfg.Redis.Addr)
	case "cookie", "":
		store = cookie.NewStore(hashKey, blockKey)
		logger.Info.Println("Session store: signed cookie")
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}

	store.Options(Options(cfg))
	return store, nil
}
