package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meutreino/backend/internal/config"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/store/storetest"
)

func newProdutoHandler(mem *storetest.Mem) *ProdutoHandler {
	cfg := config.Config{SiteURL: "https://app.meutreino.com.br"}
	return NewProdutoHandler(&cfg, repository.NewProdutoRepo(mem))
}

func TestProdutoSoftDeleteHidesFromListing(t *testing.T) {
	mem := storetest.NewMem()
	h := newProdutoHandler(mem)

	c, rec := newCtx(t, http.MethodPost, "/produtos", map[string]any{
		"titulo": "Creatina", "link": "https://loja.exemplo.com/creatina", "ordem": 1,
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["ativo"])

	c, rec = newCtx(t, http.MethodDelete, "/produtos/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newCtx(t, http.MethodGet, "/produtos", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)

	// The row itself survives for already-shared links.
	assert.Len(t, mem.Rows("produtos"), 1)
}

func TestProdutoListOrdersByOrdem(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("produtos",
		store.Record{"id": float64(1), "titulo": "B", "ordem": float64(20), "ativo": true},
		store.Record{"id": float64(2), "titulo": "A", "ordem": float64(10), "ativo": true},
		store.Record{"id": float64(3), "titulo": "C", "ordem": float64(5), "ativo": false},
	)
	h := newProdutoHandler(mem)

	c, rec := newCtx(t, http.MethodGet, "/produtos", nil)
	require.NoError(t, h.List(c))
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0]["titulo"])
	assert.Equal(t, "B", list[1]["titulo"])
}

func TestProdutoOGPageRendersMetadata(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("produtos", store.Record{
		"id": float64(7), "titulo": "Whey <Premium>", "imagem_url": "/uploads/posts/whey.png",
		"link": "https://loja.exemplo.com/whey", "ativo": false,
	})
	h := newProdutoHandler(mem)

	c, rec := newCtx(t, http.MethodGet, "/produtos/7/og", nil)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.OG(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/html"))

	body := rec.Body.String()
	assert.Contains(t, body, `og:title`)
	assert.Contains(t, body, "Whey &lt;Premium&gt;")
	assert.Contains(t, body, `https://app.meutreino.com.br/produtos/7/og`)
	assert.Contains(t, body, `https://app.meutreino.com.br/uploads/posts/whey.png`)
	assert.Contains(t, body, `url=https://loja.exemplo.com/whey`)
}

func TestProdutoOGUnknownIs404(t *testing.T) {
	h := newProdutoHandler(storetest.NewMem())
	c, rec := newCtx(t, http.MethodGet, "/produtos/1/og", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.OG(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
