//go:build integration

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitivewalks/pawsitivewalks/internal/testutil"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *redis.Client) {
	t.Helper()
	url := testutil.RequireEnv(t, "REDIS_URL")

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, testutil.FlushRedis(ctx, client))

	store := NewRedisStore(client, CookieOptions(Options{TTL: time.Hour}), []byte("0123456789abcdef0123456789abcdef"))
	return store, client
}

func TestRedisStore_Lifecycle(t *testing.T) {
	store, client := newTestRedisStore(t)
	m := NewManager(store)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Start(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-42"))

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	keys, err := client.Keys(ctx, keyPrefix+"*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)

	ttl, err := client.TTL(ctx, keys[0]).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	id, err := m.UserID(req)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)

	out := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	require.NoError(t, m.Destroy(out, req))

	exists, err := client.Exists(ctx, keys[0]).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	// The old cookie no longer resolves to a user.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	id, err = m.UserID(req)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestRedisStore_StartRotatesID(t *testing.T) {
	store, client := newTestRedisStore(t)
	m := NewManager(store)
	ctx := context.Background()

	first := httptest.NewRecorder()
	require.NoError(t, m.Start(first, httptest.NewRequest(http.MethodPost, "/", nil), "user-1"))
	old := first.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(old)
	second := httptest.NewRecorder()
	require.NoError(t, m.Start(second, req, "user-2"))

	keys, err := client.Keys(ctx, keyPrefix+"*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
	assert.NotEqual(t, old.Value, second.Result().Cookies()[0].Value)
}

func TestRedisStore_TamperedCookieIsNew(t *testing.T) {
	store, _ := newTestRedisStore(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-signed-value"})

	sess, err := store.New(req, CookieName)
	require.NoError(t, err)
	assert.True(t, sess.IsNew)
	assert.Empty(t, sess.ID)
}
