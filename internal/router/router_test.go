package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/inkpress/blog-backend/internal/config"
	"github.com/inkpress/blog-backend/internal/errs"
	"github.com/inkpress/blog-backend/internal/handler"
	"github.com/inkpress/blog-backend/internal/lib/newsletter"
	"github.com/inkpress/blog-backend/internal/middleware"
	"github.com/inkpress/blog-backend/internal/server"
	"github.com/inkpress/blog-backend/internal/service"
	"github.com/inkpress/blog-backend/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI wires the full router against an in-memory store, so
// these tests exercise the real middleware chain, handlers, services,
// and error funnel over HTTP.
func newTestAPI(t *testing.T) (*echo.Echo, *store.MemoryStore) {
	t.Helper()

	nop := zerolog.Nop()
	mem := store.NewMemoryStore()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        30,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: config.DatabaseConfig{URI: "mongodb://localhost:27017", Name: "test"},
		Newsletter: config.NewsletterConfig{
			CredentialSource:      config.CredentialSourceStatic,
			APIKey:                "key",
			AudienceID:            "audience",
			CredentialWaitSeconds: 1,
		},
		Logging: config.DefaultLoggingConfig("test"),
	}

	srv := &server.Server{
		Config:          cfg,
		Logger:          &nop,
		Store:           mem,
		NewsletterCreds: newsletter.NewStaticProvider("key", "audience"),
	}

	services, err := service.NewServices(srv)
	require.NoError(t, err)

	return New(middleware.NewMiddlewares(srv), handler.NewHandlers(srv, services)), mem
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeDoc(t *testing.T, rec *httptest.ResponseRecorder) store.Document {
	t.Helper()
	var doc store.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return doc
}

func TestCreateBlog(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/blogs/createBlog", `{"title": "Hello", "author": "jo"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := decodeDoc(t, rec)
	assert.Equal(t, "Hello", doc["title"])
	assert.Equal(t, "jo", doc["author"])
	assert.NotEmpty(t, doc[store.FieldID])
	assert.Contains(t, doc, store.FieldTimestamp)
}

func TestGetAllBlogsNewestFirst(t *testing.T) {
	e, mem := newTestAPI(t)

	clock := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mem.SetClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	for _, title := range []string{"first", "second"} {
		rec := doJSON(e, http.MethodPost, "/api/blogs/createBlog", `{"title": "`+title+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/blogs/getAllBlogs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var docs []store.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "second", docs[0]["title"])
	assert.Equal(t, "first", docs[1]["title"])
}

func TestUpdateBlogMerges(t *testing.T) {
	e, _ := newTestAPI(t)

	created := decodeDoc(t, doJSON(e, http.MethodPost, "/api/blogs/createBlog", `{"title": "A", "author": "jo"}`))
	id := created[store.FieldID].(string)

	rec := doJSON(e, http.MethodPatch, "/api/blogs/updateBlog/"+id, `{"title": "B"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeDoc(t, rec)
	assert.Equal(t, "B", updated["title"])
	assert.Equal(t, id, updated[store.FieldID])
	assert.Contains(t, updated, store.FieldUpdatedTimestamp)

	// The update response echoes the merge payload only, not the
	// untouched fields.
	assert.NotContains(t, updated, "author")

	list := doJSON(e, http.MethodGet, "/api/blogs/getAllBlogs", "")
	var docs []store.Document
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "B", docs[0]["title"])
	assert.Equal(t, "jo", docs[0]["author"])
}

func TestUpdateBlogMissingIDFails(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPatch, "/api/blogs/updateBlog/000000000000000000000000", `{"title": "B"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "STORE_ERROR", httpErr.Code)
}

func TestDeleteBlog(t *testing.T) {
	e, _ := newTestAPI(t)

	created := decodeDoc(t, doJSON(e, http.MethodPost, "/api/blogs/createBlog", `{"title": "A"}`))
	id := created[store.FieldID].(string)

	rec := doJSON(e, http.MethodDelete, "/api/blogs/deleteBlog/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog with ID "+id+" deleted successfully", rec.Body.String())

	// Deleting the same id again still confirms.
	rec = doJSON(e, http.MethodDelete, "/api/blogs/deleteBlog/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := doJSON(e, http.MethodGet, "/api/blogs/getAllBlogs", "")
	var docs []store.Document
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	assert.Empty(t, docs)
}

func TestBlogDetailRoundTrip(t *testing.T) {
	e, _ := newTestAPI(t)

	created := decodeDoc(t, doJSON(e, http.MethodPost, "/api/blogs/createBlogDetail", `{"body": "long form", "tags": ["go"]}`))
	id := created[store.FieldID].(string)

	rec := doJSON(e, http.MethodGet, "/api/blogs/getBlogDetail/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeDoc(t, rec)
	assert.Equal(t, "long form", got["body"])

	rec = doJSON(e, http.MethodPut, "/api/blogs/updateBlogDetail/"+id, `{"body": "revised"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/blogs/getBlogDetail/"+id, "")
	got = decodeDoc(t, rec)
	assert.Equal(t, "revised", got["body"])

	rec = doJSON(e, http.MethodDelete, "/api/blogs/deleteBlogDetail/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog detail with ID "+id+" deleted successfully", rec.Body.String())
}

func TestGetBlogDetailAbsent(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/blogs/getBlogDetail/000000000000000000000000", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No such document!", rec.Body.String())
}

func TestSubscribeMissingEmail(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/blogs/newslettersubscribe", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/blogs/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	assert.Equal(t, "Route not found", httpErr.Message)
}

func TestRequestIDHeader(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/blogs/getAllBlogs", "")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	// A caller-supplied request id is kept.
	req := httptest.NewRequest(http.MethodGet, "/api/blogs/getAllBlogs", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}
