package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/store/storetest"
)

func TestContratoConfigUpsertNativePath(t *testing.T) {
	mem := storetest.NewMem()
	repo := NewContratoConfigRepo(mem)
	ctx := context.Background()

	cfg, err := repo.Upsert(ctx, model.ContratoConfig{
		ProfessorEmail: "PROF@X.com",
		AlunoEmail:     "Aluno@X.com",
		Opcao1:         100,
	})
	require.NoError(t, err)
	assert.Equal(t, "prof@x.com", cfg.ProfessorEmail)
	assert.Equal(t, "aluno@x.com", cfg.AlunoEmail)
	assert.NotEmpty(t, cfg.UpdatedAt)

	// Same pair again merges into the existing row.
	cfg2, err := repo.Upsert(ctx, model.ContratoConfig{
		ProfessorEmail: "prof@x.com",
		AlunoEmail:     "aluno@x.com",
		Opcao1:         250,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 250, cfg2.Opcao1)
	assert.Len(t, mem.Rows("contrato_config"), 1)
}

func TestContratoConfigUpsertTableMissing(t *testing.T) {
	mem := storetest.NewMem()
	mem.Missing["contrato_config"] = true
	repo := NewContratoConfigRepo(mem)

	_, err := repo.Upsert(context.Background(), model.ContratoConfig{
		ProfessorEmail: "prof@x.com",
		AlunoEmail:     "aluno@x.com",
	})
	assert.ErrorIs(t, err, ErrConfigTableMissing)
}

func TestContratoConfigUpsertFallsBackWithoutConstraint(t *testing.T) {
	mem := storetest.NewMem()
	mem.NoConflictTarget["contrato_config"] = true
	repo := NewContratoConfigRepo(mem)
	ctx := context.Background()

	// First call finds nothing to update and inserts.
	first, err := repo.Upsert(ctx, model.ContratoConfig{
		ProfessorEmail: "prof@x.com",
		AlunoEmail:     "aluno@x.com",
		Opcao1:         100,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 100, first.Opcao1)
	require.Len(t, mem.Rows("contrato_config"), 1)

	// Second call updates the same logical row instead of duplicating it.
	second, err := repo.Upsert(ctx, model.ContratoConfig{
		ProfessorEmail: "prof@x.com",
		AlunoEmail:     "aluno@x.com",
		Opcao1:         300,
		Opcao2:         5,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 300, second.Opcao1)
	assert.EqualValues(t, 5, second.Opcao2)
	assert.Len(t, mem.Rows("contrato_config"), 1)
}

func TestContratoConfigUpsertPropagatesOtherErrors(t *testing.T) {
	mem := storetest.NewMem()
	mem.Err = &store.Error{Kind: store.KindUnknown, Message: "boom"}
	repo := NewContratoConfigRepo(mem)

	_, err := repo.Upsert(context.Background(), model.ContratoConfig{
		ProfessorEmail: "prof@x.com",
		AlunoEmail:     "aluno@x.com",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigTableMissing)
}

func TestContratoConfigGet(t *testing.T) {
	mem := storetest.NewMem()
	mem.Seed("contrato_config", store.Record{
		"id": float64(1), "professor_email": "prof@x.com", "aluno_email": "aluno@x.com", "opcao1": float64(80),
	})
	repo := NewContratoConfigRepo(mem)

	cfg, err := repo.Get(context.Background(), "PROF@x.com", "aluno@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 80, cfg.Opcao1)

	_, err = repo.Get(context.Background(), "outro@x.com", "aluno@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContratoConfigGetTableMissingIsNotFound(t *testing.T) {
	mem := storetest.NewMem()
	mem.Missing["contrato_config"] = true
	repo := NewContratoConfigRepo(mem)

	_, err := repo.Get(context.Background(), "prof@x.com", "aluno@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
