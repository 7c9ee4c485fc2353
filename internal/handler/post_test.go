package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/storage"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/store/storetest"
)

func newPostHandler(t *testing.T, mem *storetest.Mem) *PostHandler {
	t.Helper()
	files, err := storage.New(t.TempDir())
	require.NoError(t, err)
	return NewPostHandler(repository.NewPostRepo(mem), files)
}

func seedFeed(mem *storetest.Mem, n int) {
	rows := make([]store.Record, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, store.Record{
			"id":          float64(i),
			"autor_email": "ana@x.com",
			"texto":       fmt.Sprintf("post %d", i),
			"created_at":  fmt.Sprintf("2025-01-%02dT10:00:00Z", i),
		})
	}
	mem.Seed("posts", rows...)
}

func TestFeedNewestFirstWithCounts(t *testing.T) {
	mem := storetest.NewMem()
	seedFeed(mem, 2)
	mem.Seed("curtidas",
		store.Record{"id": float64(10), "post_id": float64(2), "usuario_email": "bruno@x.com"},
		store.Record{"id": float64(11), "post_id": float64(2), "usuario_email": "carla@x.com"},
	)
	mem.Seed("comentarios",
		store.Record{"id": float64(20), "post_id": float64(2), "usuario_email": "bruno@x.com", "texto": "c1", "created_at": "2025-02-01T10:00:00Z"},
		store.Record{"id": float64(21), "post_id": float64(2), "usuario_email": "carla@x.com", "texto": "c2", "created_at": "2025-02-02T10:00:00Z"},
		store.Record{"id": float64(22), "post_id": float64(2), "usuario_email": "davi@x.com", "texto": "c3", "created_at": "2025-02-03T10:00:00Z"},
		store.Record{"id": float64(23), "post_id": float64(2), "usuario_email": "eva@x.com", "texto": "c4", "created_at": "2025-02-04T10:00:00Z"},
	)
	h := newPostHandler(t, mem)

	c, rec := newCtx(t, http.MethodGet, "/posts?usuario_email=bruno@x.com", nil)
	require.NoError(t, h.Feed(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var feed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 2)

	top := feed[0]
	assert.Equal(t, "post 2", top["texto"])
	assert.EqualValues(t, 2, top["likeCount"])
	assert.EqualValues(t, 4, top["commentCount"])
	assert.Equal(t, true, top["curtido"])

	// Preview keeps only the 3 most recent, presented oldest to newest.
	preview := top["commentPreview"].([]any)
	require.Len(t, preview, 3)
	assert.Equal(t, "c2", preview[0].(map[string]any)["texto"])
	assert.Equal(t, "c4", preview[2].(map[string]any)["texto"])

	bottom := feed[1]
	assert.EqualValues(t, 0, bottom["likeCount"])
	assert.Equal(t, false, bottom["curtido"])
	assert.Equal(t, []any{}, bottom["commentPreview"])
}

func TestFeedClampsPagination(t *testing.T) {
	mem := storetest.NewMem()
	seedFeed(mem, 5)
	h := newPostHandler(t, mem)

	cases := []struct {
		name   string
		query  string
		expect int
	}{
		{"limit above maximum is capped", "limit=150", 5},
		{"negative limit becomes zero", "limit=-3", 0},
		{"negative offset becomes zero", "limit=2&offset=-5", 2},
		{"offset past the end is empty", "limit=2&offset=50", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newCtx(t, http.MethodGet, "/posts?"+tc.query, nil)
			require.NoError(t, h.Feed(c))
			require.Equal(t, http.StatusOK, rec.Code)
			var feed []map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
			assert.Len(t, feed, tc.expect)
		})
	}
}

func TestPostCreateNeedsTextOrImage(t *testing.T) {
	h := newPostHandler(t, storetest.NewMem())
	c, rec := newCtx(t, http.MethodPost, "/posts", map[string]string{"autor_email": "ana@x.com"})
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "campo obrigatório ausente: texto ou imagem", decodeBody(t, rec)["error"])
}

func TestCurtirTogglesAcrossCalls(t *testing.T) {
	mem := storetest.NewMem()
	seedFeed(mem, 1)
	h := newPostHandler(t, mem)

	toggle := func() (bool, int) {
		c, rec := newCtx(t, http.MethodPost, "/posts/1/curtir", map[string]string{"usuario_email": "bruno@x.com"})
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.Curtir(c))
		require.Equal(t, http.StatusOK, rec.Code)
		curtido := decodeBody(t, rec)["curtido"].(bool)
		return curtido, len(mem.Rows("curtidas"))
	}

	curtido, likes := toggle()
	assert.True(t, curtido)
	assert.Equal(t, 1, likes)

	curtido, likes = toggle()
	assert.False(t, curtido)
	assert.Equal(t, 0, likes)
}

func TestCurtirUnknownPostIs404(t *testing.T) {
	h := newPostHandler(t, storetest.NewMem())
	c, rec := newCtx(t, http.MethodPost, "/posts/99/curtir", map[string]string{"usuario_email": "bruno@x.com"})
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Curtir(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostDeleteRequiresAuthor(t *testing.T) {
	mem := storetest.NewMem()
	seedFeed(mem, 1)
	h := newPostHandler(t, mem)

	c, rec := newCtx(t, http.MethodDelete, "/posts/1?usuario_email=bruno@x.com", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newCtx(t, http.MethodDelete, "/posts/1?usuario_email=ana@x.com", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, mem.Rows("posts"))
}

func TestComentarValidatesAndLists(t *testing.T) {
	mem := storetest.NewMem()
	seedFeed(mem, 1)
	h := newPostHandler(t, mem)

	c, rec := newCtx(t, http.MethodPost, "/posts/1/comentarios", map[string]string{"usuario_email": "bruno@x.com"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Comentar(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newCtx(t, http.MethodPost, "/posts/1/comentarios", map[string]string{
		"usuario_email": "bruno@x.com", "texto": "mandou bem",
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Comentar(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newCtx(t, http.MethodGet, "/posts/1/comentarios", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Comentarios(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var cs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cs))
	require.Len(t, cs, 1)
	assert.Equal(t, "mandou bem", cs[0]["texto"])
}
