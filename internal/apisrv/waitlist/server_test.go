package waitlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/grbpwr-waitlist/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-waitlist/internal/dependency"
	"github.com/jekabolt/grbpwr-waitlist/internal/dependency/mocks"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	"github.com/jekabolt/grbpwr-waitlist/internal/middleware"
	"github.com/jekabolt/grbpwr-waitlist/internal/store/memory"
	wl "github.com/jekabolt/grbpwr-waitlist/internal/waitlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	h          http.Handler
	adminToken string
	userToken  string
}

func newTestServer(t *testing.T, repo dependency.Repository) *testServer {
	t.Helper()

	authsrv, err := auth.New(&auth.Config{JWTSecret: "hehe", JWTTTL: "5m"})
	require.NoError(t, err)

	n := 0
	svc, err := wl.New(wl.Config{
		Enabled: true,
		AdditionalFields: []entity.FieldDescriptor{
			{Name: "company", Type: entity.FieldTypeString, Required: true},
			{Name: "seats", Type: entity.FieldTypeNumber},
		},
	}, repo, wl.Options{
		Now: func() time.Time { return time.Date(2026, 1, 1, 0, 0, n, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%03d", n)
		},
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(middleware.Principal(authsrv.JwtAuth))
	r.Mount("/", New(svc).Routes())

	adminToken, err := authsrv.IssueToken("admin-1", "admin", 0)
	require.NoError(t, err)
	userToken, err := authsrv.IssueToken("user-1", "user", 0)
	require.NoError(t, err)

	return &testServer{h: r, adminToken: adminToken, userToken: userToken}
}

func (ts *testServer) do(t *testing.T, method, target, body, token string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestServer_Join(t *testing.T) {
	ts := newTestServer(t, memory.New())

	code, body := ts.do(t, http.MethodPost, "/add-user", `{"email":"User@Test.com","company":"acme","seats":3}`, "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Request created successfully", body["message"])
	assert.Equal(t, true, body["success"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "id-001", details["id"])
	assert.Equal(t, "user@test.com", details["email"])
	assert.Equal(t, "pending", details["status"])
	assert.Equal(t, "acme", details["company"])
	assert.Equal(t, float64(3), details["seats"])

	code, body = ts.do(t, http.MethodPost, "/add-user", `{"email":"user@test.com","company":"acme"}`, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "EMAIL_ALREADY_IN_WAITLIST", body["code"])
}

func TestServer_JoinInvalid(t *testing.T) {
	ts := newTestServer(t, memory.New())

	tests := []struct {
		name string
		body string
		code int
		err  string
	}{
		{"malformed json", `{"email":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"email not a string", `{"email":42,"company":"acme"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad email", `{"email":"nope","company":"acme"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing required field", `{"email":"a@test.com"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := ts.do(t, http.MethodPost, "/add-user", tt.body, "")
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.err, body["code"])
			assert.NotEmpty(t, body["details"])
		})
	}
}

func TestServer_Status(t *testing.T) {
	ts := newTestServer(t, memory.New())
	ts.do(t, http.MethodPost, "/add-user", `{"email":"user@test.com","company":"acme"}`, "")

	code, body := ts.do(t, http.MethodGet, "/status?email=USER@test.com", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pending", body["status"])
	assert.NotEmpty(t, body["requestedAt"])
	assert.NotContains(t, body, "processedBy")

	code, body = ts.do(t, http.MethodGet, "/status?email=nobody@test.com", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "WAITLIST_ENTRY_NOT_FOUND", body["code"])
}

func TestServer_AdminRoutesRequirePrincipal(t *testing.T) {
	ts := newTestServer(t, memory.New())

	routes := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/requests/list", ""},
		{http.MethodGet, "/requests/count", ""},
		{http.MethodGet, "/request/id-001", ""},
		{http.MethodPost, "/request/approve", `{"id":"id-001"}`},
		{http.MethodPost, "/request/reject", `{"id":"id-001"}`},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.target, func(t *testing.T) {
			code, body := ts.do(t, rt.method, rt.target, rt.body, "")
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, "UNAUTHORIZED", body["code"])

			code, body = ts.do(t, rt.method, rt.target, rt.body, "not-a-token")
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, "UNAUTHORIZED", body["code"])

			code, body = ts.do(t, rt.method, rt.target, rt.body, ts.userToken)
			assert.Equal(t, http.StatusForbidden, code)
			assert.Equal(t, "FORBIDDEN", body["code"])
		})
	}
}

func TestServer_ListAndCount(t *testing.T) {
	ts := newTestServer(t, memory.New())
	for i, company := range []string{"acme", "globex", "acme"} {
		code, _ := ts.do(t, http.MethodPost, "/add-user",
			fmt.Sprintf(`{"email":"user%d@test.com","company":%q}`, i, company), "")
		require.Equal(t, http.StatusCreated, code)
	}

	code, body := ts.do(t, http.MethodGet, "/requests/list?company=acme&sortBy=email&sortDirection=asc&limit=1", "", ts.adminToken)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(1), body["limit"])
	assert.Equal(t, float64(2), body["total"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "user0@test.com", data[0].(map[string]any)["email"])

	code, body = ts.do(t, http.MethodGet, "/requests/list?page=2&limit=1&company=acme&sortBy=email&sortDirection=asc", "", ts.adminToken)
	require.Equal(t, http.StatusOK, code)
	data = body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "user2@test.com", data[0].(map[string]any)["email"])

	code, body = ts.do(t, http.MethodGet, "/requests/list?page=0", "", ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	code, body = ts.do(t, http.MethodGet, "/requests/list?plan=gold", "", ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	code, body = ts.do(t, http.MethodGet, "/requests/count?status=pending", "", ts.adminToken)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["count"])

	code, body = ts.do(t, http.MethodGet, "/requests/count?status=waiting", "", ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestServer_ProcessEntries(t *testing.T) {
	ts := newTestServer(t, memory.New())
	ts.do(t, http.MethodPost, "/add-user", `{"email":"a@test.com","company":"acme"}`, "")
	ts.do(t, http.MethodPost, "/add-user", `{"email":"b@test.com","company":"acme"}`, "")

	code, body := ts.do(t, http.MethodPost, "/request/approve", `{"id":"id-001"}`, ts.adminToken)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Waitlist entry approved", body["message"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "approved", details["status"])
	assert.Equal(t, "admin-1", details["processedBy"])
	assert.NotNil(t, details["processedAt"])

	code, body = ts.do(t, http.MethodPost, "/request/approve", `{"id":"id-001"}`, ts.adminToken)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "WAITLIST_ENTRY_ALREADY_PROCESSED", body["code"])

	code, body = ts.do(t, http.MethodPost, "/request/reject", `{"id":"id-002"}`, ts.adminToken)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"message": "Waitlist entry rejected"}, body)

	code, body = ts.do(t, http.MethodPost, "/request/reject", `{"id":"missing"}`, ts.adminToken)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "WAITLIST_ENTRY_NOT_FOUND", body["code"])

	code, body = ts.do(t, http.MethodPost, "/request/reject", `{"id":""}`, ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	code, body = ts.do(t, http.MethodGet, "/request/id-002", "", ts.adminToken)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "rejected", body["status"])
	assert.Equal(t, "acme", body["company"])

	code, body = ts.do(t, http.MethodGet, "/request/missing", "", ts.adminToken)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "WAITLIST_ENTRY_NOT_FOUND", body["code"])
}

func TestServer_Schema(t *testing.T) {
	ts := newTestServer(t, memory.New())

	code, body := ts.do(t, http.MethodGet, "/schema", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "waitlist", body["name"])
	assert.Len(t, body["fields"], 8)
}

func TestServer_InternalError(t *testing.T) {
	repMock := mocks.NewRepository(t)
	wlMock := mocks.NewWaitlist(t)
	repMock.EXPECT().Waitlist().Return(wlMock)
	wlMock.EXPECT().GetWaitlistEntryByEmail(mock.Anything, "user@test.com").
		Return(nil, errors.New("connection refused"))

	ts := newTestServer(t, repMock)

	code, body := ts.do(t, http.MethodGet, "/status?email=user@test.com", "", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, map[string]any{
		"code":    "INTERNAL_ERROR",
		"message": "Internal server error",
	}, body)
}
