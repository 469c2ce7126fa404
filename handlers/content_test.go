package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editfolio/editfolio-backend/internal/auth"
	"github.com/editfolio/editfolio-backend/internal/config"
	"github.com/editfolio/editfolio-backend/internal/content"
	"github.com/editfolio/editfolio-backend/internal/sessions"
	"github.com/editfolio/editfolio-backend/internal/store"
	"github.com/editfolio/editfolio-backend/internal/subscription"
	"github.com/editfolio/editfolio-backend/internal/users"
	"github.com/editfolio/editfolio-backend/pkg/middleware"
)

type testEnv struct {
	router     *gin.Engine
	store      *store.MemoryStore
	adminToken string
	authn      *auth.Authenticator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", SessionTokenTTL: time.Hour},
		Admin: config.AdminConfig{
			PermanentAdminUID: "admin-uid-1",
			InitialAuthToken:  "bootstrap-token",
		},
	}

	st := store.NewMemoryStore()
	gate := auth.NewGate(cfg)
	guarded := store.Guarded(st, gate.WriteRule())
	acc := content.NewAccessor(guarded)

	usersSvc := users.NewService(users.NewMemoryUserRepository())
	sessionsSvc := sessions.NewService(sessions.NewMemoryRepository())
	authn := auth.NewAuthenticator(cfg, usersSvc, sessionsSvc)

	g := gin.New()
	g.Use(middleware.Identity(authn))
	NewAuthHandler(authn, usersSvc, gate).Register(g)
	NewContentHandler(acc, gate).Register(g)
	NewLiveHandler(subscription.NewCoordinator(st)).Register(g)

	creds, err := authn.SignInWithToken(context.Background(), "bootstrap-token")
	require.NoError(t, err)

	return &testEnv{router: g, store: st, adminToken: creds.Token, authn: authn}
}

func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.router.ServeHTTP(w, req)
	return w
}

func TestAdminSaveAndQuery(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/collections/skills", `{"name":"Editing","level":"95"}`, env.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created["id"])

	w = env.do(http.MethodGet, "/api/collections/skills", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Documents []map[string]any `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "Editing", resp.Documents[0]["name"])
	assert.Equal(t, 95.0, resp.Documents[0]["level"])
	assert.NotEmpty(t, resp.Documents[0]["createdAt"])
}

func TestNonAdminWriteIsRefused(t *testing.T) {
	env := newTestEnv(t)

	// no session at all
	w := env.do(http.MethodPost, "/api/collections/skills", `{"name":"Sound","level":80}`, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// anonymous session
	creds, err := env.authn.SignInAnonymously(context.Background())
	require.NoError(t, err)
	w = env.do(http.MethodPost, "/api/collections/skills", `{"name":"Sound","level":80}`, creds.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the collection is untouched
	docs, err := env.store.List(context.Background(), content.CollectionSkills)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestReviewsArePubliclyWritable(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/collections/reviews", `{"name":"Dana","review":"Great work","rating":5}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	docs, err := env.store.List(context.Background(), content.CollectionReviews)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Dana", docs[0].Fields["name"])
}

func TestSaveValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/collections/skills", `{"name":"Editing","level":150}`, env.adminToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "level")

	w = env.do(http.MethodPost, "/api/collections/faqs", `{"question":"Only a question"}`, env.adminToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "answer")
}

func TestSaveMergesExistingDocument(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.store.Upsert(ctx, content.CollectionPortfolioItems, "", store.Fields{
		"title": "Reel", "videoUrl": "https://v/1", "sectionId": "s1", "client": "Acme",
	})
	require.NoError(t, err)

	body := fmt.Sprintf(`{"id":%q,"title":"Reel v2","videoUrl":"https://v/1","sectionId":"s1"}`, id)
	w := env.do(http.MethodPost, "/api/collections/portfolio_items", body, env.adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	rec, err := env.store.GetOnce(ctx, content.CollectionPortfolioItems, id)
	require.NoError(t, err)
	assert.Equal(t, "Reel v2", rec["title"])
	assert.Equal(t, "Acme", rec["client"])
}

func TestSavePartialBodyUpdatesExistingDocument(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.store.Upsert(ctx, content.CollectionPortfolioItems, "", store.Fields{
		"title": "Reel", "videoUrl": "https://v/1", "sectionId": "s1",
	})
	require.NoError(t, err)

	// an id plus one field is a valid update; required fields the body
	// omits already live on the document
	body := fmt.Sprintf(`{"id":%q,"client":"ACME"}`, id)
	w := env.do(http.MethodPost, "/api/collections/portfolio_items", body, env.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rec, err := env.store.GetOnce(ctx, content.CollectionPortfolioItems, id)
	require.NoError(t, err)
	assert.Equal(t, "ACME", rec["client"])
	assert.Equal(t, "Reel", rec["title"])
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.store.Upsert(ctx, content.CollectionSections, "", store.Fields{"name": "Weddings"})
	require.NoError(t, err)

	w := env.do(http.MethodDelete, "/api/collections/sections/"+id, "", env.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodDelete, "/api/collections/sections/"+id+"?confirm=true", "", env.adminToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	docs, err := env.store.List(ctx, content.CollectionSections)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.store.Upsert(ctx, content.CollectionReviews, "", store.Fields{
		"name": "Dana", "review": "great", "rating": 5.0,
	})
	require.NoError(t, err)

	w := env.do(http.MethodDelete, "/api/collections/reviews/"+id+"?confirm=true", "", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	docs, err := env.store.List(ctx, content.CollectionReviews)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestUnknownCollection(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/collections/nonsense", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/api/collections/nonsense", `{"x":1}`, env.adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	// defaults come back before anything is stored
	w := env.do(http.MethodGet, "/api/settings", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "What I Offer")

	// non-admin writes are refused
	w = env.do(http.MethodPut, "/api/settings", `{"heroTitle":"New Title"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPut, "/api/settings", `{"heroTitle":"New Title"}`, env.adminToken)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, "/api/settings", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var settings map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "New Title", settings["heroTitle"])
	assert.Equal(t, "What I Offer", settings["servicesTitle"], "unset keys keep their defaults")
}

func TestListCollections(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/collections", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	for _, name := range []string{"portfolio_items", "sections", "skills", "reviews", "faqs"} {
		assert.Contains(t, w.Body.String(), name)
	}
}
