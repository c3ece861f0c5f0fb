package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-profile-manager/internal/interface/http"
	"github.com/oksasatya/go-profile-manager/internal/interface/middleware"
	"github.com/oksasatya/go-profile-manager/internal/router"
	"github.com/oksasatya/go-profile-manager/internal/router/modules"
)

type envelope[T any] struct {
	Status    int               `json:"status"`
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id"`
	Data      T                 `json:"data"`
	Error     map[string]string `json:"error"`
}

type collection struct {
	Profiles  []entity.Profile `json:"profiles"`
	Loading   bool             `json:"loading"`
	LoadError string           `json:"load_error"`
	Busy      bool             `json:"busy"`
}

type testServer struct {
	engine  *gin.Engine
	session *app.Session
	kv      *memory.KVStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	kv := memory.NewKVStore(0)
	s := app.NewSession(kv, app.SessionConfig{}, nil)
	t.Cleanup(s.Close)
	_, err := s.Reload()
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := router.NewRegistry(r)
	reg.Add(modules.NewProfileModule(handlers.NewProfileHandler(s, nil), handlers.NewUIHandler(s), nil, nil, 0))
	reg.RegisterAll()
	return &testServer{engine: r, session: s, kv: kv}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestListEmptyCollection(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[collection](t, w)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.NotNil(t, env.Data.Profiles)
	assert.Empty(t, env.Data.Profiles)
	assert.False(t, env.Data.Loading)
}

func TestCreateUpdateAndList(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/profiles", map[string]string{"name": "Ada", "email": "ada@example.com", "role": "Engineer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[entity.Profile](t, w).Data
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	w = ts.do(t, http.MethodPut, "/api/profiles/"+created.ID, map[string]string{"name": "Ada Lovelace", "email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[entity.Profile](t, w).Data
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.Empty(t, updated.Role)

	env := decode[collection](t, ts.do(t, http.MethodGet, "/api/profiles", nil))
	require.Len(t, env.Data.Profiles, 1)
	assert.Equal(t, "Ada Lovelace", env.Data.Profiles[0].Name)

	toast := decode[entity.Notification](t, ts.do(t, http.MethodGet, "/api/toast", nil))
	assert.Equal(t, "Profile updated", toast.Data.Message)
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/profiles", map[string]string{"name": " ", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode[any](t, w)
	assert.False(t, env.Success)
	assert.Equal(t, map[string]string{"name": "is required", "email": "must be a valid email"}, env.Error)
	assert.Equal(t, 0, ts.kv.Len(), "invalid drafts must not be written")
}

func TestUpdateUnknownProfile(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPut, "/api/profiles/missing", map[string]string{"name": "A", "email": "a@b.co"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveFailureReturns500(t *testing.T) {
	ts := newTestServer(t)
	ts.kv.FailNextSet(assert.AnError)

	w := ts.do(t, http.MethodPost, "/api/profiles", map[string]string{"name": "Ada", "email": "ada@example.com"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	env := decode[collection](t, ts.do(t, http.MethodGet, "/api/profiles", nil))
	assert.Empty(t, env.Data.Profiles)
	toast := decode[entity.Notification](t, ts.do(t, http.MethodGet, "/api/toast", nil))
	assert.Equal(t, entity.NotificationError, toast.Data.Kind)
}

func TestClearAllNeedsNoConfirmation(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/profiles", map[string]string{"name": "Ada", "email": "ada@example.com"})

	w := ts.do(t, http.MethodDelete, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[collection](t, w).Data.Profiles)
	assert.Equal(t, 0, ts.kv.Len())
}

func TestReloadSurfacesCorruptDocument(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.kv.Set(t.Context(), app.DefaultStorageKey, "{broken"))

	w := ts.do(t, http.MethodPost, "/api/profiles/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[collection](t, w)
	assert.Contains(t, env.Data.LoadError, "corrupted")
	assert.Empty(t, env.Data.Profiles)

	w = ts.do(t, http.MethodDelete, "/api/load-error", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[collection](t, w).Data.LoadError)
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/profiles", map[string]string{"name": "Ada", "email": "ada@example.com"})
	ts.do(t, http.MethodPost, "/api/profiles", map[string]string{"name": "Grace", "email": "grace@navy.mil"})

	w := ts.do(t, http.MethodGet, "/api/profiles/search?q=navy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[[]entity.Profile](t, w).Data
	require.Len(t, out, 1)
	assert.Equal(t, "Grace", out[0].Name)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	env := decode[any](t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "/api/nope", env.Error["path"])
	assert.NotEmpty(t, env.RequestID)

	w = ts.do(t, http.MethodPatch, "/api/profiles", nil)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPatch, decode[any](t, w).Error["method"])
}
