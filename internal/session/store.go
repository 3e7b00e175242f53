// Package session implements server-side sessions referenced by a signed cookie.
package session

import (
	"context"
	"encoding/base32"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// RedisStore is a sessions.Store that keeps session values in Redis.
// The cookie carries only the signed session id.
type RedisStore struct {
	client  *redis.Client
	Codecs  []securecookie.Codec
	Options *sessions.Options
}

// NewRedisStore creates a store using keyPairs for cookie signing (see securecookie.CodecsFromPairs).
func NewRedisStore(client *redis.Client, opts sessions.Options, keyPairs ...[]byte) *RedisStore {
	s := &RedisStore{
		client:  client,
		Codecs:  securecookie.CodecsFromPairs(keyPairs...),
		Options: &opts,
	}
	s.maxAge(opts.MaxAge)
	return s
}

func (s *RedisStore) maxAge(age int) {
	for _, c := range s.Codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

// Get returns the session registered for this request, loading it once.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns a session for name. An unknown, expired or tampered cookie yields a fresh session.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.Options
	sess.Options = &opts
	sess.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}

	if err := securecookie.DecodeMulti(name, c.Value, &sess.ID, s.Codecs...); err != nil {
		sess.ID = ""
		return sess, nil
	}

	found, err := s.load(r.Context(), sess)
	if err != nil {
		return sess, err
	}
	if !found {
		sess.ID = ""
		return sess, nil
	}
	sess.IsNew = false
	return sess, nil
}

// Save persists the session and writes the cookie. MaxAge <= 0 deletes it.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	if sess.Options.MaxAge <= 0 {
		if sess.ID != "" {
			if err := s.client.Del(r.Context(), keyPrefix+sess.ID).Err(); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = newSessionID()
	}
	if err := s.save(r.Context(), sess); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

// Regenerate drops the stored record and assigns a new id, keeping the values.
// Called on login so a pre-auth session id is never promoted.
func (s *RedisStore) Regenerate(r *http.Request, sess *sessions.Session) error {
	if sess.ID != "" {
		if err := s.client.Del(r.Context(), keyPrefix+sess.ID).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	sess.ID = newSessionID()
	return nil
}

func (s *RedisStore) save(ctx context.Context, sess *sessions.Session) error {
	values := make(map[string]any, len(sess.Values))
	for k, v := range sess.Values {
		key, ok := k.(string)
		if !ok {
			return errors.New("session keys must be strings")
		}
		values[key] = v
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Duration(sess.Options.MaxAge) * time.Second
	if err := s.client.Set(ctx, keyPrefix+sess.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, sess *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+sess.ID).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load session: %w", err)
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return false, nil
	}
	for k, v := range values {
		sess.Values[k] = v
	}
	return true, nil
}

func newSessionID() string {
	return strings.ToLower(idEncoding.EncodeToString(securecookie.GenerateRandomKey(32)))
}
