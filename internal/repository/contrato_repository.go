package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableContratos = "contratos"

// ContratoRepo persists signed contract documents. File bytes live on
// disk; the row only carries their relative paths.
type ContratoRepo struct{ S store.Store }

func NewContratoRepo(s store.Store) *ContratoRepo { return &ContratoRepo{S: s} }

// Create inserts a contract document row.
func (r *ContratoRepo) Create(ctx context.Context, c model.Contrato) (model.Contrato, error) {
	c.AlunoEmail = utils.NormalizeEmail(c.AlunoEmail)
	c.ProfessorEmail = utils.NormalizeEmail(c.ProfessorEmail)
	if c.AssinadoEm == "" {
		c.AssinadoEm = utils.NowISO()
	} else {
		c.AssinadoEm = utils.ToISO(c.AssinadoEm)
	}
	recs, err := r.S.Insert(ctx, tableContratos, c)
	if err != nil {
		return model.Contrato{}, err
	}
	return firstContrato(recs)
}

// GetByID fetches a contract document by id.
func (r *ContratoRepo) GetByID(ctx context.Context, id int64) (model.Contrato, error) {
	recs, err := r.S.Select(ctx, tableContratos, store.NewQuery().Eq("id", id).Limit(1))
	if err != nil {
		return model.Contrato{}, err
	}
	return firstContrato(recs)
}

// ListByAluno returns contract documents for a student, newest first.
func (r *ContratoRepo) ListByAluno(ctx context.Context, alunoEmail string) ([]model.Contrato, error) {
	q := store.NewQuery().
		Eq("aluno_email", utils.NormalizeEmail(alunoEmail)).
		OrderDesc("assinado_em")
	recs, err := r.S.Select(ctx, tableContratos, q)
	if err != nil {
		return nil, err
	}
	out := []model.Contrato{}
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteOwned removes a contract document after checking that actorEmail
// matches the owning professor, case-insensitively. This comparison is
// the entire authorization model on this route.
func (r *ContratoRepo) DeleteOwned(ctx context.Context, id int64, actorEmail string) (model.Contrato, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Contrato{}, err
	}
	if utils.NormalizeEmail(actorEmail) != utils.NormalizeEmail(c.ProfessorEmail) {
		return model.Contrato{}, ErrForbidden
	}
	if _, err := r.S.Delete(ctx, tableContratos, store.NewQuery().Eq("id", id)); err != nil {
		return model.Contrato{}, err
	}
	return c, nil
}

func firstContrato(recs []store.Record) (model.Contrato, error) {
	if len(recs) == 0 {
		return model.Contrato{}, ErrNotFound
	}
	var c model.Contrato
	if err := store.Decode(recs[0], &c); err != nil {
		return model.Contrato{}, err
	}
	return c, nil
}
