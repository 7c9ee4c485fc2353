package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableConsultas = "consultas"

// ConsultaRepo persists consultations/assessments. The consultas table is
// optional; reads downgrade a missing relation to an empty list.
type ConsultaRepo struct{ S store.Store }

func NewConsultaRepo(s store.Store) *ConsultaRepo { return &ConsultaRepo{S: s} }

// Create inserts a consultation and returns the stored row.
func (r *ConsultaRepo) Create(ctx context.Context, c model.Consulta) (model.Consulta, error) {
	c.CriadoPor = utils.NormalizeEmail(c.CriadoPor)
	if c.Data == "" {
		c.Data = utils.NowISO()
	} else {
		c.Data = utils.ToISO(c.Data)
	}
	recs, err := r.S.Insert(ctx, tableConsultas, c)
	if err != nil {
		return model.Consulta{}, err
	}
	if len(recs) == 0 {
		return model.Consulta{}, ErrNotFound
	}
	var out model.Consulta
	if err := store.Decode(recs[0], &out); err != nil {
		return model.Consulta{}, err
	}
	return out, nil
}

// ListByCliente returns consultations for a client id, newest first. A
// missing consultas relation yields an empty slice.
func (r *ConsultaRepo) ListByCliente(ctx context.Context, clienteID int64) ([]model.Consulta, error) {
	q := store.NewQuery().Eq("cliente_id", clienteID).OrderDesc("data")
	recs, err := r.S.Select(ctx, tableConsultas, q)
	if err != nil {
		if store.KindOf(err) == store.KindRelationNotFound {
			return []model.Consulta{}, nil
		}
		return nil, err
	}
	out := []model.Consulta{}
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}
