package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meutreino/backend/internal/queue"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/service"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/store/storetest"
)

func newAlunoHandler(mem *storetest.Mem) (*AlunoHandler, *[]queue.DomainEvent) {
	events := &[]queue.DomainEvent{}
	notifier := service.NewNotifier(repository.NewMensagemRepo(mem), zerolog.Nop()).
		WithPublisher(func(ctx context.Context, ev queue.DomainEvent) error {
			*events = append(*events, ev)
			return nil
		})
	return NewAlunoHandler(repository.NewUsuarioRepo(mem), repository.NewAlunoRepo(mem), notifier), events
}

func TestAlunoCreateNormalizesEmails(t *testing.T) {
	mem := storetest.NewMem()
	h, _ := newAlunoHandler(mem)

	c, rec := newCtx(t, http.MethodPost, "/alunos", map[string]string{
		"nome":       "Ana",
		"email":      "  ANA@Exemplo.COM ",
		"senha":      "123",
		"criado_por": "PROF@Exemplo.com",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "ana@exemplo.com", body["email"])
	assert.Equal(t, "prof@exemplo.com", body["criado_por"])
	assert.Equal(t, "aluno", body["role"])
	assert.NotContains(t, body, "senha")

	// Profile row created alongside, keyed by the normalized email.
	perfis := mem.Rows("alunos")
	require.Len(t, perfis, 1)
	assert.Equal(t, "ana@exemplo.com", perfis[0].String("email"))
}

func TestAlunoCreateRequiresNome(t *testing.T) {
	h, _ := newAlunoHandler(storetest.NewMem())
	c, rec := newCtx(t, http.MethodPost, "/alunos", map[string]string{"email": "a@x.com", "senha": "1"})
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "campo obrigatório ausente: nome", decodeBody(t, rec)["error"])
}

func TestAlunoUpdateEmailFollowsProfileRow(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{
		"id": float64(1), "email": "ana@x.com", "nome": "Ana", "role": "aluno",
	})
	mem.Seed("alunos", store.Record{"id": float64(7), "email": "ana@x.com", "nome": "Ana"})
	h, _ := newAlunoHandler(mem)

	c, rec := newCtx(t, http.MethodPatch, "/alunos/1", map[string]string{"email": "Nova@X.com"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nova@x.com", decodeBody(t, rec)["email"])

	// The email-keyed profile row moves with the account, no orphan left
	// behind for a later lookup to miss.
	perfis := mem.Rows("alunos")
	require.Len(t, perfis, 1)
	assert.Equal(t, "nova@x.com", perfis[0].String("email"))
}

func TestUpdateContractPastDateBlocksAndNotifies(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{
		"id": float64(1), "email": "ana@x.com", "nome": "Ana", "role": "aluno",
		"criado_por": "prof@x.com",
	})
	h, events := newAlunoHandler(mem)

	c, rec := newCtx(t, http.MethodPatch, "/alunos/1/contract", map[string]string{"contract_end": "2024-01-01"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateContract(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["blocked"])
	assert.Equal(t, "2024-01-01T00:00:00Z", body["contract_end"])

	// Expiry notice to the student plus a copy to the professor.
	msgs := mem.Rows("mensagens")
	require.Len(t, msgs, 2)
	assert.Equal(t, "ana@x.com", msgs[0].String("para"))
	assert.Equal(t, "Seu contrato expirou em 01/01/2024.", msgs[0].String("texto"))
	assert.Equal(t, "prof@x.com", msgs[1].String("para"))

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, queue.EventContractUpdated, ev.Type)
	assert.True(t, ev.Blocked)
}

func TestUpdateContractFutureDateUnblocks(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{
		"id": float64(1), "email": "ana@x.com", "nome": "Ana", "role": "aluno",
		"criado_por": "prof@x.com", "blocked": true,
	})
	h, _ := newAlunoHandler(mem)

	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	c, rec := newCtx(t, http.MethodPatch, "/alunos/1/contract", map[string]string{"contract_end": future})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateContract(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["blocked"])
}

func TestUpdateContractSkipsProfessorCopyWhenSelfEnrolled(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{
		"id": float64(1), "email": "ana@x.com", "nome": "Ana", "role": "aluno",
		"criado_por": "ana@x.com",
	})
	h, _ := newAlunoHandler(mem)

	c, _ := newCtx(t, http.MethodPatch, "/alunos/1/contract", map[string]string{"contract_end": "2024-01-01"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateContract(c))

	// Only the primary notice lands; the duplicate recipient is skipped.
	assert.Len(t, mem.Rows("mensagens"), 1)
}

func TestUpdateContractRejectsUnparseableDate(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{"id": float64(1), "email": "ana@x.com", "role": "aluno"})
	h, _ := newAlunoHandler(mem)

	c, rec := newCtx(t, http.MethodPatch, "/alunos/1/contract", map[string]string{"contract_end": "daqui a pouco"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateContract(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlunoGetEmbedsProfile(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{"id": float64(1), "email": "ana@x.com", "nome": "Ana", "role": "aluno"})
	mem.Seed("alunos", store.Record{"id": float64(9), "email": "ana@x.com", "nome": "Ana", "bio": "corredora"})
	h, _ := newAlunoHandler(mem)

	c, rec := newCtx(t, http.MethodGet, "/alunos/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	perfil := body["perfil"].(map[string]any)
	assert.Equal(t, "corredora", perfil["bio"])
}

func TestAlunoGetRejectsNonStudent(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{"id": float64(1), "email": "p@x.com", "nome": "P", "role": "professor"})
	h, _ := newAlunoHandler(mem)

	c, rec := newCtx(t, http.MethodGet, "/alunos/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
