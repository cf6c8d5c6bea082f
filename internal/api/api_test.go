package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedPathariya/NoteNest/internal/api/respond"
	"github.com/MohammedPathariya/NoteNest/internal/classifier"
	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/services"
	"github.com/MohammedPathariya/NoteNest/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auto := classifier.NewAuto(classifier.NewKeyword(), time.Second, 1, zerolog.Nop())
	srv := httptest.NewServer(NewRouter(services.NewSet(sqlite.NewWithDB(db), auto)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createCategory(t *testing.T, srv *httptest.Server, userID, name string) model.Category {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/api/categories", map[string]string{"user_id": userID, "name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var c model.Category
	decodeInto(t, resp, &c)
	return c
}

func createNote(t *testing.T, srv *httptest.Server, userID, categoryID, content string) model.Note {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/api/notes", map[string]interface{}{
		"user_id": userID, "category_id": categoryID, "content": content,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var n model.Note
	decodeInto(t, resp, &n)
	return n
}

func TestCategories_CreateListDuplicate(t *testing.T) {
	srv := newTestServer(t)

	c := createCategory(t, srv, "u2", "Finance")
	assert.Equal(t, model.DefaultCategoryColor, c.ColorCode)
	assert.NotEmpty(t, c.ID)

	resp := do(t, srv, http.MethodPost, "/api/categories", map[string]string{"user_id": "u2", "name": "Finance"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var e respond.ErrorResponse
	decodeInto(t, resp, &e)
	assert.Equal(t, http.StatusConflict, e.Code)

	createCategory(t, srv, "u3", "Finance")

	resp = do(t, srv, http.MethodGet, "/api/categories/u2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats []model.Category
	decodeInto(t, resp, &cats)
	names := []string{}
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Finance", model.UncategorizedName}, names)
}

func TestCategories_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/categories", map[string]string{"user_id": "u1", "name": "Bad", "color_code": "blue"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/categories", map[string]string{"user_id": "u1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/categories", bytes.NewBufferString("{not json"))
	raw, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestCategories_UpdateAndDelete(t *testing.T) {
	srv := newTestServer(t)
	work := createCategory(t, srv, "u1", "Work")
	n := createNote(t, srv, "u1", work.ID, "Q3 plan")

	resp := do(t, srv, http.MethodPut, "/api/categories/"+work.ID, map[string]string{"color_code": "#000000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var upd model.Category
	decodeInto(t, resp, &upd)
	assert.Equal(t, "#000000", upd.ColorCode)
	assert.Equal(t, "Work", upd.Name)

	resp = do(t, srv, http.MethodPut, "/api/categories/"+work.ID, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/api/categories/"+work.ID+"?user_id=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Reassigned int64 `json:"reassigned"`
	}
	decodeInto(t, resp, &out)
	assert.EqualValues(t, 1, out.Reassigned)

	resp = do(t, srv, http.MethodGet, "/api/notes/u1/"+n.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var moved model.Note
	decodeInto(t, resp, &moved)
	assert.NotEqual(t, work.ID, moved.CategoryID)

	resp = do(t, srv, http.MethodDelete, "/api/categories/"+work.ID+"?user_id=u1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/api/categories/123?user_id=u1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCategories_UncategorizedIsProtected(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/categories/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats []model.Category
	decodeInto(t, resp, &cats)
	require.Len(t, cats, 1)

	resp = do(t, srv, http.MethodDelete, "/api/categories/"+cats[0].ID+"?user_id=u1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestNotes_CreateErrors(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/notes", map[string]string{"user_id": "u1", "category_id": "123", "content": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/notes", map[string]string{"user_id": "u1", "category_id": uuid.NewString(), "content": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/notes/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notes []model.Note
	decodeInto(t, resp, &notes)
	assert.Empty(t, notes)
}

func TestNotes_Lifecycle(t *testing.T) {
	srv := newTestServer(t)
	work := createCategory(t, srv, "u1", "Work")
	home := createCategory(t, srv, "u1", "Home")
	n := createNote(t, srv, "u1", work.ID, "Remind me to renew the lease")
	assert.True(t, n.IsReminder)
	assert.Equal(t, []string{}, n.Tags)

	resp := do(t, srv, http.MethodPut, "/api/notes/"+n.ID, map[string]interface{}{
		"category_id": home.ID, "tags": []string{"house"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var upd model.Note
	decodeInto(t, resp, &upd)
	assert.Equal(t, home.ID, upd.CategoryID)
	assert.Equal(t, []string{"house"}, upd.Tags)
	assert.Equal(t, n.Content, upd.Content)

	resp = do(t, srv, http.MethodPut, "/api/notes/"+n.ID+"/archive?user_id=u2", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/api/notes/"+n.ID+"/archive?user_id=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/notes/u1?archived=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var archived []model.Note
	decodeInto(t, resp, &archived)
	require.Len(t, archived, 1)
	assert.True(t, archived[0].Archived)

	resp = do(t, srv, http.MethodGet, "/api/notes/u1?archived=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/api/notes/"+n.ID+"/unarchive?user_id=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/notes/u2/"+n.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/api/notes/"+n.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodDelete, "/api/notes/"+n.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSmartNotes_AndAnalytics(t *testing.T) {
	srv := newTestServer(t)
	work := createCategory(t, srv, "u1", "Work")
	createCategory(t, srv, "u1", "Personal")

	resp := do(t, srv, http.MethodPost, "/api/smart-notes", map[string]string{"user_id": "u1", "content": "Team meeting at 3pm"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var n model.Note
	decodeInto(t, resp, &n)
	assert.Equal(t, work.ID, n.CategoryID)
	require.NotNil(t, n.LLMRef)
	assert.Equal(t, "keyword", *n.LLMRef)
	assert.Empty(t, n.Tags)

	resp = do(t, srv, http.MethodPost, "/api/smart-notes", map[string]string{"user_id": "u1", "content": "zzz qqq"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var fallback model.Note
	decodeInto(t, resp, &fallback)
	assert.Nil(t, fallback.LLMRef)

	resp = do(t, srv, http.MethodGet, "/api/analytics/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var counts []model.CategoryCount
	decodeInto(t, resp, &counts)
	require.Len(t, counts, 2)
	got := map[string]int64{}
	for _, c := range counts {
		got[c.CategoryName] = c.NoteCount
	}
	assert.Equal(t, map[string]int64{"Work": 1, model.UncategorizedName: 1}, got)

	resp = do(t, srv, http.MethodGet, "/api/analytics/nobody", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var empty []model.CategoryCount
	decodeInto(t, resp, &empty)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	BindServiceHealth(func() bool { return true }, func() map[string]bool { return map[string]bool{"store": true, "classifier": false} })
	t.Cleanup(func() { BindServiceHealth(func() bool { return false }, nil) })

	resp := do(t, srv, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	decodeInto(t, resp, &body)
	assert.Equal(t, "UP", body.Status)
	assert.Equal(t, map[string]string{"store": "UP", "classifier": "DOWN"}, body.Components)

	resp = do(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
