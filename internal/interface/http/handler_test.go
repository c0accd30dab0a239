package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/postboard-api/internal/application"
	"github.com/oksasatya/postboard-api/internal/domain/event"
	"github.com/oksasatya/postboard-api/internal/domain/repository/mock"
	"github.com/oksasatya/postboard-api/internal/interface/middleware"
	"github.com/oksasatya/postboard-api/pkg/helpers"
)

type testServer struct {
	engine *gin.Engine
	store  *mock.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	store := mock.NewStore(helpers.NewBcryptHasher(bcrypt.MinCost))

	accounts := NewAccountHandler(application.NewAccountService(store.Accounts(), event.Nop{}, logger))
	posts := NewPostHandler(application.NewPostService(store.Posts(), event.Nop{}, logger))

	r := gin.New()
	r.Use(middleware.ErrorTranslator(logger))
	r.POST("/user/", accounts.Create)
	r.GET("/user/:id/", accounts.Get)
	r.PATCH("/user/:id/", accounts.Update)
	r.DELETE("/user/:id/", accounts.Delete)
	r.POST("/post/", posts.Create)
	r.GET("/post/:id/", posts.Get)
	r.PATCH("/post/:id/", posts.Update)
	r.DELETE("/post/:id/", posts.Delete)
	return &testServer{engine: r, store: store}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (s *testServer) createUser(t *testing.T, name string) int64 {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/user/", fmt.Sprintf(`{"name":%q,"password":"12345"}`, name))
	require.Equal(t, http.StatusOK, code, body)
	return int64(body["id"].(float64))
}

func TestAccountRoundTrip(t *testing.T) {
	s := newTestServer(t)

	code, created := s.do(t, http.MethodPost, "/user/", `{"name":"user_1","password":"12345"}`)
	require.Equal(t, http.StatusOK, code)
	id := int64(created["id"].(float64))

	code, got := s.do(t, http.MethodGet, fmt.Sprintf("/user/%d/", id), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "user_1", got["name"])
	assert.Equal(t, float64(id), got["id"])
	assert.NotEmpty(t, got["registration_time"])
	assert.NotContains(t, got, "password")
	assert.Len(t, got, 3)
}

func TestAccountDuplicateName(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPost, "/user/", `{"name":"user_1","password":"12345"}`)
	assert.Equal(t, http.StatusOK, code)

	code, body := s.do(t, http.MethodPost, "/user/", `{"name":"user_1","password":"12345"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "user already exists", body["error"])
}

func TestPasswordLengthBoundary(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/user/", `{"name":"short","password":"1234"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, map[string]any{"field": "password", "reason": "must be at least 5 characters long"}, body["error"])

	code, _ = s.do(t, http.MethodPost, "/user/", `{"name":"short","password":"12345"}`)
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodPost, "/user/", `{"name":"wide","password":"`+strings.Repeat("é", 40)+`"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, map[string]any{"field": "password", "reason": "must be at most 72 bytes long"}, body["error"])

	code, _ = s.do(t, http.MethodPost, "/user/", `{"name":"wide","password":"`+strings.Repeat("é", 36)+`"}`)
	assert.Equal(t, http.StatusOK, code)
}

func TestPartialUpdateKeepsName(t *testing.T) {
	s := newTestServer(t)
	id := s.createUser(t, "user_1")
	before := s.store.StoredHash(id)

	code, body := s.do(t, http.MethodPatch, fmt.Sprintf("/user/%d/", id), `{"password":"abcdef"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "user_1", body["name"])
	assert.NotContains(t, body, "password")

	after := s.store.StoredHash(id)
	assert.NotEqual(t, before, after)
	assert.True(t, helpers.NewBcryptHasher(bcrypt.MinCost).Verify("abcdef", after))
}

func TestCascadeDelete(t *testing.T) {
	s := newTestServer(t)
	uid := s.createUser(t, "owner")

	code, post := s.do(t, http.MethodPost, "/post/", fmt.Sprintf(`{"heading":"h","description":"d","user_id":%d}`, uid))
	require.Equal(t, http.StatusOK, code)
	pid := int64(post["id"].(float64))

	code, body := s.do(t, http.MethodDelete, fmt.Sprintf("/user/%d/", uid), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "deleted", body["status"])

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/post/%d/", pid), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "post not found", body["error"])
}

func TestPostWithUnknownOwner(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/post/", `{"heading":"h","description":"d","user_id":404}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "post error: user does not exist", body["error"])
}

func TestPostLifecycle(t *testing.T) {
	s := newTestServer(t)
	uid := s.createUser(t, "owner")
	other := s.createUser(t, "other")

	code, post := s.do(t, http.MethodPost, "/post/", fmt.Sprintf(`{"heading":"h","description":"d","user_id":%d}`, uid))
	require.Equal(t, http.StatusOK, code)
	pid := int64(post["id"].(float64))
	assert.ElementsMatch(t,
		[]string{"id", "heading", "description", "registration_time_post", "user_id"},
		keys(post))

	code, post = s.do(t, http.MethodPatch, fmt.Sprintf("/post/%d/", pid), fmt.Sprintf(`{"user_id":%d}`, other))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(other), post["user_id"])
	assert.Equal(t, "h", post["heading"])

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/post/%d/", pid), "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/post/%d/", pid), "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestNotFoundPaths(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method, path, body, msg string
	}{
		{http.MethodGet, "/user/99/", "", "user not found"},
		{http.MethodGet, "/user/abc/", "", "user not found"},
		{http.MethodGet, "/user/-1/", "", "user not found"},
		{http.MethodPatch, "/user/99/", `{"name":"x"}`, "user not found"},
		{http.MethodDelete, "/user/99/", "", "user not found"},
		{http.MethodGet, "/user/2147483648/", "", "user not found"},
		{http.MethodDelete, "/user/99999999999/", "", "user not found"},
		{http.MethodGet, "/post/99/", "", "post not found"},
		{http.MethodGet, "/post/2147483648/", "", "post not found"},
		{http.MethodPatch, "/post/abc/", `{}`, "post not found"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			code, body := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, code)
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestValidationFailures(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name, path, body, field string
	}{
		{"malformed json", "/user/", `{"name":`, "payload"},
		{"missing name", "/user/", `{"password":"12345"}`, "name"},
		{"name of wrong type", "/user/", `{"name":1,"password":"12345"}`, "name"},
		{"missing heading", "/post/", `{"description":"d","user_id":1}`, "heading"},
		{"user_id as string", "/post/", `{"heading":"h","description":"d","user_id":"1"}`, "user_id"},
		{"empty body", "/post/", "", "heading"},
		{"user_id beyond int4", "/post/", `{"heading":"h","description":"d","user_id":3000000000}`, "user_id"},
		{"multi-byte password over 72 bytes", "/user/", `{"name":"wide","password":"` + strings.Repeat("é", 40) + `"}`, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusConflict, code)
			detail, ok := body["error"].(map[string]any)
			require.True(t, ok, "expected field error, got %v", body)
			assert.Equal(t, tt.field, detail["field"])
		})
	}
}

func TestNoResponseLeaksPassword(t *testing.T) {
	s := newTestServer(t)

	for _, step := range []struct{ method, path, body string }{
		{http.MethodPost, "/user/", `{"name":"secretive","password":"hunter22"}`},
		{http.MethodGet, "/user/1/", ""},
		{http.MethodPatch, "/user/1/", `{"password":"hunter33"}`},
	} {
		req := httptest.NewRequest(step.method, step.path, strings.NewReader(step.body))
		rec := httptest.NewRecorder()
		s.engine.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		out := rec.Body.String()
		assert.NotContains(t, out, "hunter")
		assert.NotContains(t, out, "password")
		assert.NotContains(t, out, "$2a$")
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
