package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pawsitivewalks/pawsitivewalks/internal/cache"
	"github.com/pawsitivewalks/pawsitivewalks/internal/handler/dto"
	"github.com/pawsitivewalks/pawsitivewalks/internal/metrics"
	"github.com/pawsitivewalks/pawsitivewalks/internal/middleware"
	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
	"github.com/pawsitivewalks/pawsitivewalks/internal/service"
	"github.com/pawsitivewalks/pawsitivewalks/internal/session"
	"github.com/pawsitivewalks/pawsitivewalks/internal/testutil/memstore"
)

type RouterSuite struct {
	suite.Suite

	store    *memstore.Store
	recorder *metrics.InMemoryRecorder
	router   http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.store = memstore.New()
	s.recorder = metrics.NewInMemory()
	logger := discardLogger()

	cookieStore := sessions.NewCookieStore([]byte("router-test-hash-key-32-bytes!!!"))
	opts := session.CookieOptions(session.Options{TTL: time.Hour})
	cookieStore.Options = &opts
	manager := session.NewManager(cookieStore)

	router, err := NewRouter(RouterConfig{
		Logger:   logger,
		Recorder: s.recorder,
		Auth:     NewAuthHandler(service.NewAuthService(s.store, s.recorder), manager, logger),
		Requests: NewRequestHandler(service.NewRequestService(s.store, s.recorder), logger),
		Walkers:  NewWalkerHandler(service.NewWalkerService(s.store, s.recorder), logger),
		Health:   NewHealthHandler(s.store, nil),
		Sessions: manager,
		Security: middleware.SecurityConfig{IsDevelopment: true},
	})
	s.Require().NoError(err)
	s.router = router
}

// do sends a request through the router, replaying cookies.
func (s *RouterSuite) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	s.FailNow("session cookie not set")
	return nil
}

// signup registers a user and returns their session cookie and id.
func (s *RouterSuite) signup(email string) (*http.Cookie, string) {
	rec := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":       email,
		"password":    "longpass1",
		"displayName": "Tester",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var env dto.UserEnvelope
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&env))
	return s.sessionCookie(rec), env.User.ID
}

func validRequestBody() map[string]any {
	return map[string]any{
		"dogName":    "Rex",
		"breed":      "Beagle",
		"age":        4,
		"size":       "medium",
		"location":   "Brooklyn, NY",
		"ownerName":  "Alex",
		"ownerEmail": "alex@example.com",
	}
}

func (s *RouterSuite) decodeError(rec *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (s *RouterSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusOK, rec.Code)

	var resp HealthResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("ok", resp.Status)
	s.Equal("PawsitiveWalks API is running", resp.Message)
}

func (s *RouterSuite) TestRegisterLoginMe() {
	s.signup("a@x.com")

	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "longpass1"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	cookie := s.sessionCookie(rec)
	s.True(cookie.HttpOnly)
	s.Equal(http.SameSiteLaxMode, cookie.SameSite)

	rec = s.do(http.MethodGet, "/api/auth/me", nil, cookie)
	s.Require().Equal(http.StatusOK, rec.Code)

	var env dto.UserEnvelope
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&env))
	s.Equal("a@x.com", env.User.Email)
	s.NotContains(rec.Body.String(), "password")

	snap := s.recorder.Snapshot()
	s.Equal(uint64(1), snap.AuthEvents["login/success"])
}

func (s *RouterSuite) TestRegisterDuplicate() {
	s.signup("a@x.com")

	rec := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":       "A@X.com",
		"password":    "longpass2",
		"displayName": "Other",
	})
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("Email already registered", s.decodeError(rec).Error)
}

func (s *RouterSuite) TestLoginWrongPassword() {
	s.signup("a@x.com")

	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "wrongpass"})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Invalid credentials", s.decodeError(rec).Error)
}

func (s *RouterSuite) TestMeWithoutSession() {
	rec := s.do(http.MethodGet, "/api/auth/me", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Not authenticated", s.decodeError(rec).Error)
}

func (s *RouterSuite) TestLogoutEndsSession() {
	cookie, _ := s.signup("a@x.com")

	rec := s.do(http.MethodGet, "/api/auth/logout", nil, cookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	expired := s.sessionCookie(rec)
	s.True(expired.MaxAge < 0)

	rec = s.do(http.MethodGet, "/api/auth/me", nil, expired)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestUnauthenticatedMutations() {
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/requests"},
		{http.MethodPut, "/api/requests/" + model.NewID()},
		{http.MethodDelete, "/api/requests/" + model.NewID()},
		{http.MethodPost, "/api/walkers"},
		{http.MethodPut, "/api/walkers/" + model.NewID()},
		{http.MethodDelete, "/api/walkers/" + model.NewID()},
	}

	for _, p := range paths {
		rec := s.do(p.method, p.path, validRequestBody())
		s.Equal(http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func (s *RouterSuite) TestCreateRequestForcesOpenStatus() {
	cookie, userID := s.signup("a@x.com")

	body := validRequestBody()
	body["status"] = "completed"
	body["createdBy"] = "someone-else"

	rec := s.do(http.MethodPost, "/api/requests", body, cookie)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var env dto.RequestEnvelope
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&env))
	s.Equal(model.RequestStatusOpen, env.Request.Status)
	s.Equal(userID, env.Request.CreatedBy)

	rec = s.do(http.MethodGet, "/api/requests/"+env.Request.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var fetched dto.RequestEnvelope
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&fetched))
	s.Equal("Rex", fetched.Request.DogName)
	s.Equal("Beagle", fetched.Request.Breed)
	s.Require().NotNil(fetched.Request.Age)
	s.Equal(4, *fetched.Request.Age)
	s.Equal("medium", fetched.Request.Size)
}

func (s *RouterSuite) TestCreateRequestAgeOutOfRange() {
	cookie, _ := s.signup("a@x.com")

	body := validRequestBody()
	body["age"] = 35

	rec := s.do(http.MethodPost, "/api/requests", body, cookie)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	resp := s.decodeError(rec)
	s.Equal("Validation failed", resp.Error)
	s.Contains(resp.Details, "age must be a number between 0 and 30")
}

func (s *RouterSuite) TestGetRequestErrors() {
	rec := s.do(http.MethodGet, "/api/requests/not-an-id", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Invalid request ID format", s.decodeError(rec).Error)

	rec = s.do(http.MethodGet, "/api/requests/"+model.NewID(), nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Request not found", s.decodeError(rec).Error)
}

func (s *RouterSuite) TestRequestOwnership() {
	ownerCookie, _ := s.signup("owner@x.com")
	otherCookie, _ := s.signup("other@x.com")

	rec := s.do(http.MethodPost, "/api/requests", validRequestBody(), ownerCookie)
	s.Require().Equal(http.StatusCreated, rec.Code)
	var env dto.RequestEnvelope
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&env))
	path := "/api/requests/" + env.Request.ID

	rec = s.do(http.MethodPut, path, validRequestBody(), otherCookie)
	s.Equal(http.StatusForbidden, rec.Code)
	s.Equal("You can only update your own requests.", s.decodeError(rec).Error)

	rec = s.do(http.MethodDelete, path, nil, otherCookie)
	s.Equal(http.StatusForbidden, rec.Code)
	s.Equal("You can only delete your own requests.", s.decodeError(rec).Error)

	body := validRequestBody()
	body["status"] = "matched"
	rec = s.do(http.MethodPut, path, body, ownerCookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&env))
	s.Equal(model.RequestStatusMatched, env.Request.Status)

	rec = s.do(http.MethodDelete, path, nil, ownerCookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	var msg dto.MessageResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&msg))
	s.Equal("Request deleted successfully", msg.Message)

	rec = s.do(http.MethodGet, path, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestListRequestsClampsPageSize() {
	cookie, _ := s.signup("a@x.com")
	for i := 0; i < 3; i++ {
		rec := s.do(http.MethodPost, "/api/requests", validRequestBody(), cookie)
		s.Require().Equal(http.StatusCreated, rec.Code)
	}

	rec := s.do(http.MethodGet, "/api/requests?pageSize=500", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.RequestListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(100, resp.PageSize)
	s.Equal(int64(3), resp.Total)
	s.Len(resp.Data, 3)
	s.Equal(1, resp.Page)
}

func (s *RouterSuite) TestWalkerSizeFilterPagination() {
	cookie, _ := s.signup("walker@x.com")

	for i := 0; i < 12; i++ {
		sizes := []string{"large"}
		if i%2 == 0 {
			sizes = []string{"small", "medium"}
		}
		rec := s.do(http.MethodPost, "/api/walkers", map[string]any{
			"name":              fmt.Sprintf("Walker %d", i),
			"experienceYears":   i,
			"serviceAreas":      []string{"Queens"},
			"preferredDogSizes": sizes,
		}, cookie)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := s.do(http.MethodGet, "/api/walkers?size=small&pageSize=5&page=2", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.WalkerListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(int64(6), resp.Total)
	s.Equal(2, resp.Page)
	s.Equal(5, resp.PageSize)
	s.Equal(2, resp.TotalPages)
	s.Len(resp.Data, 1)
	for _, w := range resp.Data {
		s.Contains(w.PreferredDogSizes, "small")
	}
}

func (s *RouterSuite) TestListHugePageIsEmpty() {
	cookie, _ := s.signup("far@x.com")
	rec := s.do(http.MethodPost, "/api/walkers", map[string]any{"name": "Only Walker"}, cookie)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/walkers?page=922337203685477580&pageSize=20", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var walkers dto.WalkerListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&walkers))
	s.Equal(service.MaxPage, walkers.Page)
	s.Equal(int64(1), walkers.Total)
	s.Empty(walkers.Data)

	rec = s.do(http.MethodGet, "/api/requests?page=922337203685477580", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *RouterSuite) TestWalkerMyPosts() {
	mine, _ := s.signup("mine@x.com")
	theirs, _ := s.signup("theirs@x.com")

	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/walkers", map[string]any{"name": "Mine"}, mine).Code)
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/walkers", map[string]any{"name": "Theirs"}, theirs).Code)

	rec := s.do(http.MethodGet, "/api/walkers?myPosts=true", nil, mine)
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp dto.WalkerListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Require().Len(resp.Data, 1)
	s.Equal("Mine", resp.Data[0].Name)

	rec = s.do(http.MethodGet, "/api/walkers?myPosts=true", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Empty(resp.Data)
	s.Equal(int64(0), resp.Total)
}

func (s *RouterSuite) TestWalkerOwnership() {
	owner, _ := s.signup("owner@x.com")
	other, _ := s.signup("other@x.com")

	rec := s.do(http.MethodPost, "/api/walkers", map[string]any{"name": "Sam"}, owner)
	s.Require().Equal(http.StatusCreated, rec.Code)
	var env dto.WalkerEnvelope
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&env))

	rec = s.do(http.MethodPut, "/api/walkers/"+env.Walker.ID, map[string]any{"name": "Hijacked"}, other)
	s.Equal(http.StatusForbidden, rec.Code)
	s.Equal("You can only update your own walker profiles.", s.decodeError(rec).Error)

	rec = s.do(http.MethodDelete, "/api/walkers/"+env.Walker.ID, nil, other)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/walkers/"+env.Walker.ID, nil, owner)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestUnknownRoutes() {
	rec := s.do(http.MethodGet, "/api/unknown", nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPatch, "/api/requests", nil)
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestNewRouter_StoreFailureIsGeneric500(t *testing.T) {
	store := memstore.New()
	store.Err = assert.AnError
	logger := discardLogger()

	cookieStore := sessions.NewCookieStore([]byte("router-test-hash-key-32-bytes!!!"))
	manager := session.NewManager(cookieStore)

	router, err := NewRouter(RouterConfig{
		Logger:   logger,
		Auth:     NewAuthHandler(service.NewAuthService(store, nil), manager, logger),
		Requests: NewRequestHandler(service.NewRequestService(store, nil), logger),
		Walkers:  NewWalkerHandler(service.NewWalkerService(store, nil), logger),
		Health:   NewHealthHandler(store, nil),
		Sessions: manager,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/walkers", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

type recordingLimiter struct {
	ips []string
}

func (l *recordingLimiter) CheckIPRateLimit(_ context.Context, _, ip string, _, burst int) (*cache.RateLimitResult, error) {
	l.ips = append(l.ips, ip)
	return &cache.RateLimitResult{Allowed: true, Remaining: int64(burst), ResetAt: time.Now()}, nil
}

func TestNewRouter_ProxyHeadersOnlyWhenTrusted(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		want       string
	}{
		{"untrusted uses socket address", false, "192.0.2.1"},
		{"trusted uses forwarded address", true, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			logger := discardLogger()
			manager := session.NewManager(sessions.NewCookieStore([]byte("router-test-hash-key-32-bytes!!!")))
			limiter := &recordingLimiter{}

			router, err := NewRouter(RouterConfig{
				Logger:   logger,
				Auth:     NewAuthHandler(service.NewAuthService(store, nil), manager, logger),
				Requests: NewRequestHandler(service.NewRequestService(store, nil), logger),
				Walkers:  NewWalkerHandler(service.NewWalkerService(store, nil), logger),
				Health:   NewHealthHandler(store, nil),
				Sessions: manager,
				AuthRateLimit: middleware.RateLimitConfig{
					Logger:  logger,
					Limiter: limiter,
					Enabled: true,
					Scope:   "auth",
					RPS:     1,
					Burst:   5,
				},
				TrustProxy: tt.trustProxy,
			})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"email":"a@x.com","password":"longpass1"}`))
			req.RemoteAddr = "192.0.2.1:1234"
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			router.ServeHTTP(httptest.NewRecorder(), req)

			require.Len(t, limiter.ips, 1)
			assert.Equal(t, tt.want, limiter.ips[0])
		})
	}
}
