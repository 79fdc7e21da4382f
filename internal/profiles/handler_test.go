package profiles

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

func newProfilesRouter(repo Repository) *chi.Mux {
	h := NewHandler(repo, logging.New("error"))

	r := chi.NewRouter()
	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{profileID}", h.Get)
		r.Put("/{profileID}", h.Update)
		r.Delete("/{profileID}", h.Delete)
	})
	return r
}

func profilesRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProfilesHandler_CreateAndGet(t *testing.T) {
	router := newProfilesRouter(NewInMemoryRepository())

	rec := profilesRequest(t, router, http.MethodPost, "/profiles", `{"name": "Alex", "age": 52, "conditions": ["asthma"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	rec = profilesRequest(t, router, http.MethodGet, "/profiles/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Alex", got.Name)
}

func TestProfilesHandler_CreateInvalid(t *testing.T) {
	router := newProfilesRouter(NewInMemoryRepository())

	rec := profilesRequest(t, router, http.MethodPost, "/profiles", `{"age": 52}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = profilesRequest(t, router, http.MethodPost, "/profiles", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfilesHandler_GetNotFound(t *testing.T) {
	router := newProfilesRouter(NewInMemoryRepository())

	rec := profilesRequest(t, router, http.MethodGet, "/profiles/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "profile not found")
}

func TestProfilesHandler_Update(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newProfilesRouter(repo)

	rec := profilesRequest(t, router, http.MethodPost, "/profiles", `{"name": "Alex", "age": 52}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = profilesRequest(t, router, http.MethodPut, "/profiles/"+created.ID, `{"name": "Alex", "age": 53}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 53, updated.Age)
}

func TestProfilesHandler_Delete(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newProfilesRouter(repo)

	rec := profilesRequest(t, router, http.MethodPost, "/profiles", `{"name": "Alex", "age": 52}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = profilesRequest(t, router, http.MethodDelete, "/profiles/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = profilesRequest(t, router, http.MethodDelete, "/profiles/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfilesHandler_List(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newProfilesRouter(repo)

	for _, name := range []string{"Alex", "Sam"} {
		rec := profilesRequest(t, router, http.MethodPost, "/profiles", `{"name": "`+name+`", "age": 40}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := profilesRequest(t, router, http.MethodGet, "/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	assert.Len(t, list.Profiles, 2)
}
