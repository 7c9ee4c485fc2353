package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableProgresso = "progresso"

// ProgressoRepo persists the append-only progress log. The progresso
// table is optional: when the destination schema lacks it, reads report
// an empty log instead of failing, so its absence never breaks a primary
// flow.
type ProgressoRepo struct{ S store.Store }

func NewProgressoRepo(s store.Store) *ProgressoRepo { return &ProgressoRepo{S: s} }

// Append inserts one progress entry.
func (r *ProgressoRepo) Append(ctx context.Context, p model.Progresso) (model.Progresso, error) {
	p.AlunoEmail = utils.NormalizeEmail(p.AlunoEmail)
	if p.CreatedAt == "" {
		p.CreatedAt = utils.NowISO()
	}
	recs, err := r.S.Insert(ctx, tableProgresso, p)
	if err != nil {
		return model.Progresso{}, err
	}
	if len(recs) == 0 {
		return model.Progresso{}, ErrNotFound
	}
	var out model.Progresso
	if err := store.Decode(recs[0], &out); err != nil {
		return model.Progresso{}, err
	}
	return out, nil
}

// ListByAluno returns the progress entries for a student, newest first.
// A missing progresso relation yields an empty slice.
func (r *ProgressoRepo) ListByAluno(ctx context.Context, email string) ([]model.Progresso, error) {
	q := store.NewQuery().Eq("aluno_email", utils.NormalizeEmail(email)).OrderDesc("created_at")
	recs, err := r.S.Select(ctx, tableProgresso, q)
	if err != nil {
		if store.KindOf(err) == store.KindRelationNotFound {
			return []model.Progresso{}, nil
		}
		return nil, err
	}
	out := []model.Progresso{}
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}
