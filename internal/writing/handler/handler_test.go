package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/writingpad/writingpad/internal/writing"
	"github.com/writingpad/writingpad/internal/writing/service"
	"github.com/writingpad/writingpad/web"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(svc service.Service) *gin.Engine {
	g := gin.New()
	g.SetHTMLTemplate(web.MustTemplates())
	NewHandler(svc, time.UTC).Register(g)
	return g
}

func do(g *gin.Engine, method, target, contentType, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func form(title, contents string) string {
	return url.Values{"title": {title}, "contents": {contents}}.Encode()
}

const formType = "application/x-www-form-urlencoded"

// failingService fails every operation as if the store were down.
type failingService struct{}

var errDown = fmt.Errorf("%w: connection refused", service.ErrStoreUnavailable)

func (failingService) Create(context.Context, string, string) (*writing.Writing, error) {
	return nil, errDown
}
func (failingService) List(context.Context) ([]*writing.Writing, error) { return nil, errDown }
func (failingService) Get(context.Context, string) (*writing.Writing, error) {
	return nil, errDown
}
func (failingService) Update(context.Context, string, string, string) (*writing.Writing, error) {
	return nil, errDown
}
func (failingService) Delete(context.Context, string) error { return errDown }

func TestWriteThenList(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)

	w := do(g, http.MethodPost, "/write", formType, form("Hello", "World"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")
	assert.Contains(t, w.Body.String(), "World")

	w = do(g, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")
}

func TestWriteAcceptsJSON(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)

	w := do(g, http.MethodPost, "/write", "application/json", `{"title":"json title","contents":"json body"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "json title")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "json body", list[0].Contents)
}

func TestWriteWithMissingFieldsStoresEmptyValues(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)

	w := do(g, http.MethodPost, "/write", formType, "")
	require.Equal(t, http.StatusOK, w.Code)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "", list[0].Title)
	assert.Equal(t, "", list[0].Contents)
}

func TestWriteForm(t *testing.T) {
	g := newRouter(service.NewMemoryService())
	w := do(g, http.MethodGet, "/write", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/write"`)
}

func TestListEmpty(t *testing.T) {
	g := newRouter(service.NewMemoryService())
	w := do(g, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "작성된 글이 없습니다.")
}

func TestListNewestFirst(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)
	for _, title := range []string{"alpha", "bravo", "charlie"} {
		_, err := svc.Create(context.Background(), title, "")
		require.NoError(t, err)
	}

	w := do(g, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	a, b, c := strings.Index(body, "alpha"), strings.Index(body, "bravo"), strings.Index(body, "charlie")
	require.True(t, a > 0 && b > 0 && c > 0)
	assert.Less(t, c, b)
	assert.Less(t, b, a)
}

func TestDetail(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)
	created, err := svc.Create(context.Background(), "T", "C")
	require.NoError(t, err)

	w := do(g, http.MethodGet, "/detail/"+created.ID.Hex(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "T")
	assert.Contains(t, body, "C")
	assert.Contains(t, body, writing.FormatDateIn(created.Date, time.UTC))
	assert.Contains(t, body, "/edit/"+created.ID.Hex())
}

func TestNotFound(t *testing.T) {
	g := newRouter(service.NewMemoryService())
	unknown := primitive.NewObjectID().Hex()

	for _, id := range []string{unknown, "not-a-valid-id"} {
		w := do(g, http.MethodGet, "/detail/"+id, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, "detail %s", id)
		assert.Equal(t, msgNotFound, w.Body.String())

		w = do(g, http.MethodGet, "/edit/"+id, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, "edit form %s", id)

		w = do(g, http.MethodPost, "/edit/"+id, formType, form("x", "y"))
		assert.Equal(t, http.StatusNotFound, w.Code, "edit submit %s", id)
	}
}

func TestEditForm(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)
	created, err := svc.Create(context.Background(), "old title", "old body")
	require.NoError(t, err)

	w := do(g, http.MethodGet, "/edit/"+created.ID.Hex(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `action="/edit/`+created.ID.Hex()+`"`)
	assert.Contains(t, body, `value="old title"`)
	assert.Contains(t, body, "old body")
}

func TestEditKeepsDate(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)
	created, err := svc.Create(context.Background(), "T", "C")
	require.NoError(t, err)
	id := created.ID.Hex()

	w := do(g, http.MethodPost, "/edit/"+id, formType, form("T2", "C2"))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/detail/"+id, w.Header().Get("Location"))

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "C2", got.Contents)
	assert.True(t, got.Date.Equal(created.Date), "date changed: %v -> %v", created.Date, got.Date)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)
	created, err := svc.Create(context.Background(), "T", "C")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		w := do(g, http.MethodPost, "/delete/"+created.ID.Hex(), "", "")
		require.Equal(t, http.StatusFound, w.Code, "attempt %d", i+1)
		assert.Equal(t, "/", w.Header().Get("Location"))
	}

	w := do(g, http.MethodGet, "/detail/"+created.ID.Hex(), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(g, http.MethodPost, "/delete/garbage", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestStoreFailures(t *testing.T) {
	g := newRouter(failingService{})
	id := primitive.NewObjectID().Hex()

	w := do(g, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, msgInternal, w.Body.String())

	// failed create falls back to the form without a status change
	w = do(g, http.MethodPost, "/write", formType, form("Hello", "World"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/write"`)
	assert.NotContains(t, w.Body.String(), "World")

	w = do(g, http.MethodGet, "/detail/"+id, "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, msgInternal, w.Body.String())

	w = do(g, http.MethodGet, "/edit/"+id, "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(g, http.MethodPost, "/edit/"+id, formType, form("a", "b"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, msgEditFailed, w.Body.String())

	w = do(g, http.MethodPost, "/delete/"+id, "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, msgDeleteFailed, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")
}
