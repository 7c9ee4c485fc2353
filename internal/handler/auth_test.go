package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meutreino/backend/internal/config"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/store/storetest"
)

// newCtx builds an echo context around a JSON request body.
func newCtx(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, target, &payload)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "segredo-de-teste", TokenTTLHours: 1}
}

func newAuthHandler(mem *storetest.Mem) *AuthHandler {
	return NewAuthHandler(testConfig(),
		repository.NewUsuarioRepo(mem),
		repository.NewAlunoRepo(mem))
}

func TestLoginSuccessStripsSenhaAndIssuesToken(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{
		"id": float64(1), "email": "ana@x.com", "senha": "123", "nome": "Ana", "role": "aluno",
	})
	h := newAuthHandler(mem)

	c, rec := newCtx(t, http.MethodPost, "/login", map[string]string{"email": "ANA@X.com", "senha": "123"})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	usuario := body["usuario"].(map[string]any)
	assert.Equal(t, "ana@x.com", usuario["email"])
	assert.NotContains(t, usuario, "senha")

	// First login creates the profile row.
	assert.Len(t, mem.Rows("alunos"), 1)
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{
		"id": float64(1), "email": "ana@x.com", "senha": "123", "nome": "Ana", "role": "aluno",
	})
	h := newAuthHandler(mem)

	c, rec := newCtx(t, http.MethodPost, "/login", map[string]string{"email": "ana@x.com", "senha": "errada"})
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "credenciais inválidas", decodeBody(t, rec)["error"])
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	mem := storetest.NewMem()
	h := newAuthHandler(mem)

	c, rec := newCtx(t, http.MethodPost, "/login", map[string]string{"email": "ninguem@x.com", "senha": "123"})
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "credenciais inválidas", decodeBody(t, rec)["error"])
}

func TestLoginMissingFieldNamesIt(t *testing.T) {
	h := newAuthHandler(storetest.NewMem())

	c, rec := newCtx(t, http.MethodPost, "/login", map[string]string{"email": "ana@x.com"})
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "campo obrigatório ausente: senha", decodeBody(t, rec)["error"])
}

func TestLoginTimeoutIsDistinctFromBadCredentials(t *testing.T) {
	mem := storetest.NewMem()
	mem.Err = &store.Error{Kind: store.KindTimeout, Message: "store request timed out"}
	h := newAuthHandler(mem)

	c, rec := newCtx(t, http.MethodPost, "/login", map[string]string{"email": "ana@x.com", "senha": "123"})
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "tempo limite excedido ao consultar o banco", decodeBody(t, rec)["error"])
}

func TestLoginStoreNotConfigured(t *testing.T) {
	h := NewAuthHandler(testConfig(),
		repository.NewUsuarioRepo(store.NotConfigured()),
		repository.NewAlunoRepo(store.NotConfigured()))

	c, rec := newCtx(t, http.MethodPost, "/login", map[string]string{"email": "ana@x.com", "senha": "123"})
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "banco de dados não configurado", decodeBody(t, rec)["error"])
}
