package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableContratosAdmin = "contratos_admin"

// ContratoAdminRepo persists professor/admin contract windows. The table
// is optional; reads downgrade a missing relation to an empty result and
// the parallel update performed on contract changes is best-effort.
type ContratoAdminRepo struct{ S store.Store }

func NewContratoAdminRepo(s store.Store) *ContratoAdminRepo { return &ContratoAdminRepo{S: s} }

// Create inserts an admin contract row.
func (r *ContratoAdminRepo) Create(ctx context.Context, c model.ContratoAdmin) (model.ContratoAdmin, error) {
	c.ProfessorEmail = utils.NormalizeEmail(c.ProfessorEmail)
	c.AdminEmail = utils.NormalizeEmail(c.AdminEmail)
	if c.ContractStart != "" {
		c.ContractStart = utils.ToISO(c.ContractStart)
	}
	if c.ContractEnd != "" {
		c.ContractEnd = utils.ToISO(c.ContractEnd)
	}
	recs, err := r.S.Insert(ctx, tableContratosAdmin, c)
	if err != nil {
		return model.ContratoAdmin{}, err
	}
	if len(recs) == 0 {
		return model.ContratoAdmin{}, ErrNotFound
	}
	var out model.ContratoAdmin
	if err := store.Decode(recs[0], &out); err != nil {
		return model.ContratoAdmin{}, err
	}
	return out, nil
}

// ListByProfessor returns admin contracts for a professor, newest first.
// A missing relation yields an empty slice.
func (r *ContratoAdminRepo) ListByProfessor(ctx context.Context, professorEmail string) ([]model.ContratoAdmin, error) {
	q := store.NewQuery().
		Eq("professor_email", utils.NormalizeEmail(professorEmail)).
		OrderDesc("contract_end")
	recs, err := r.S.Select(ctx, tableContratosAdmin, q)
	if err != nil {
		if store.KindOf(err) == store.KindRelationNotFound {
			return []model.ContratoAdmin{}, nil
		}
		return nil, err
	}
	out := []model.ContratoAdmin{}
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateWindow moves the contract window of a professor's rows. Returns
// the number of rows touched; a missing relation counts as zero, not an
// error, because the table is optional.
func (r *ContratoAdminRepo) UpdateWindow(ctx context.Context, professorEmail string, changes store.Record) (int, error) {
	q := store.NewQuery().Eq("professor_email", utils.NormalizeEmail(professorEmail))
	recs, err := r.S.Update(ctx, tableContratosAdmin, q, changes)
	if err != nil {
		if store.KindOf(err) == store.KindRelationNotFound {
			return 0, nil
		}
		return 0, err
	}
	return len(recs), nil
}
