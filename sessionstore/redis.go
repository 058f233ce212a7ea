package sessionstore

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/securecookie"
	gsessions "github.com/gorilla/sessions"
)

// redisClient is the part of *redis.Client the store needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps session values in redis. The cookie carries only a
// signed random id.
type RedisStore struct {
	client  redisClient
	prefix  string
	codecs  []securecookie.Codec
	options *gsessions.Options
	serial  securecookie.GobEncoder
	timeout time.Duration
}

var _ sessions.Store = (*RedisStore)(nil)

// NewRedisStore builds a store on client. keyPairs are passed to
// securecookie as for the cookie store.
func NewRedisStore(client redisClient, prefix string, keyPairs ...[]byte) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		codecs:  securecookie.CodecsFromPairs(keyPairs...),
		options: &gsessions.Options{Path: "/", MaxAge: 86400},
		timeout: 3 * time.Second,
	}
}

// Options sets the cookie attributes and key TTL for new sessions.
func (s *RedisStore) Options(opts sessions.Options) {
	s.options = opts.ToGorillaOptions()
}

// Get returns the session cached on the request, loading it if needed.
func (s *RedisStore) Get(r *http.Request, name string) (*gsessions.Session, error) {
	return gsessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie, or starts an empty
// one. A bad cookie or missing key is not an error to the caller.
func (s *RedisStore) New(r *http.Request, name string) (*gsessions.Session, error) {
	session := gsessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.codecs...); err != nil {
		return session, nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	data, err := s.client.Get(ctx, s.prefix+session.ID).Bytes()
	if errors.Is(err, redis.Nil) {
		session.ID = ""
		return session, nil
	}
	if err != nil {
		return session, fmt.Errorf("load session: %w", err)
	}
	if err := s.serial.Deserialize(data, &session.Values); err != nil {
		return session, fmt.Errorf("decode session: %w", err)
	}
	session.IsNew = false
	return session, nil
}

// Save writes the values to redis under a new id and the id cookie to w.
// A negative MaxAge deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *gsessions.Session) error {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(ctx, s.prefix+session.ID).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		session.ID = ""
		http.SetCookie(w, gsessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	// every save moves the values to a fresh id, so a login never keeps
	// an id the client had before it
	if session.ID != "" {
		if err := s.client.Del(ctx, s.prefix+session.ID).Err(); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	session.ID = strings.TrimRight(
		base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")

	data, err := s.serial.Serialize(session.Values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.client.Set(ctx, s.prefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, gsessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// Close releases the redis connection pool.
func (s *RedisStore) Close() error {
	if c, ok := s.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
