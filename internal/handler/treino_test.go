package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meutreino/backend/internal/queue"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/service"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/store/storetest"
)

func newTreinoHandler(mem *storetest.Mem) (*TreinoHandler, *[]queue.DomainEvent) {
	events := &[]queue.DomainEvent{}
	notifier := service.NewNotifier(repository.NewMensagemRepo(mem), zerolog.Nop()).
		WithPublisher(func(ctx context.Context, ev queue.DomainEvent) error {
			*events = append(*events, ev)
			return nil
		})
	return NewTreinoHandler(
		repository.NewTreinoRepo(mem),
		repository.NewProgressoRepo(mem),
		repository.NewUsuarioRepo(mem),
		notifier,
	), events
}

func TestConcluirAppendsProgressoAndNotifiesProfessor(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{
		"id": float64(1), "email": "ana@x.com", "nome": "Ana", "role": "aluno", "criado_por": "prof@x.com",
	})
	mem.Seed("treinos", store.Record{
		"id": float64(4), "aluno_email": "ana@x.com", "treino": map[string]any{"series": float64(3)},
	})
	h, events := newTreinoHandler(mem)

	c, rec := newCtx(t, http.MethodPost, "/treinos/4/concluir", map[string]any{
		"aluno_email": "ana@x.com", "peso_corporal": 62.5,
	})
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.Concluir(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rows := mem.Rows("progresso")
	require.Len(t, rows, 1)
	assert.EqualValues(t, 4, rows[0].Int64("treino_id"))

	msgs := mem.Rows("mensagens")
	require.Len(t, msgs, 1)
	assert.Equal(t, "prof@x.com", msgs[0].String("para"))
	assert.Equal(t, "Ana concluiu um treino.", msgs[0].String("texto"))

	require.Len(t, *events, 1)
	assert.Equal(t, queue.EventWorkoutCompleted, (*events)[0].Type)
}

func TestConcluirSkipsSelfEnrolledStudent(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("usuarios", store.Record{
		"id": float64(1), "email": "ana@x.com", "nome": "Ana", "role": "aluno", "criado_por": "ana@x.com",
	})
	mem.Seed("treinos", store.Record{"id": float64(4), "aluno_email": "ana@x.com", "treino": "A"})
	h, _ := newTreinoHandler(mem)

	c, _ := newCtx(t, http.MethodPost, "/treinos/4/concluir", map[string]any{"aluno_email": "ana@x.com"})
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.Concluir(c))

	assert.Empty(t, mem.Rows("mensagens"))
	assert.Len(t, mem.Rows("progresso"), 1)
}

func TestConcluirUnknownTreinoIs404(t *testing.T) {
	h, _ := newTreinoHandler(storetest.NewMem())
	c, rec := newCtx(t, http.MethodPost, "/treinos/9/concluir", map[string]any{"aluno_email": "ana@x.com"})
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.Concluir(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTreinoListRequiresAlunoEmail(t *testing.T) {
	h, _ := newTreinoHandler(storetest.NewMem())
	c, rec := newCtx(t, http.MethodGet, "/treinos", nil)
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "parâmetro obrigatório ausente: aluno_email", decodeBody(t, rec)["error"])
}

func TestProgressoTableMissingMeansEmptyList(t *testing.T) {
	mem := storetest.NewMem()
	mem.Missing["progresso"] = true
	h := NewProgressoHandler(repository.NewProgressoRepo(mem))

	c, rec := newCtx(t, http.MethodGet, "/progresso?aluno_email=ana@x.com", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
