package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableTreinos = "treinos"

// TreinoRepo persists workout records. The workout payload is opaque
// JSON; it is stored and returned without server-side validation.
type TreinoRepo struct{ S store.Store }

func NewTreinoRepo(s store.Store) *TreinoRepo { return &TreinoRepo{S: s} }

// Create inserts a workout and returns the stored row.
func (r *TreinoRepo) Create(ctx context.Context, t model.Treino) (model.Treino, error) {
	t.AlunoEmail = utils.NormalizeEmail(t.AlunoEmail)
	if t.Data == "" {
		t.Data = utils.NowISO()
	} else {
		t.Data = utils.ToISO(t.Data)
	}
	recs, err := r.S.Insert(ctx, tableTreinos, t)
	if err != nil {
		return model.Treino{}, err
	}
	return firstTreino(recs)
}

// GetByID fetches a workout by id.
func (r *TreinoRepo) GetByID(ctx context.Context, id int64) (model.Treino, error) {
	recs, err := r.S.Select(ctx, tableTreinos, store.NewQuery().Eq("id", id).Limit(1))
	if err != nil {
		return model.Treino{}, err
	}
	return firstTreino(recs)
}

// ListByAluno returns workouts for a student, newest first.
func (r *TreinoRepo) ListByAluno(ctx context.Context, email string) ([]model.Treino, error) {
	q := store.NewQuery().Eq("aluno_email", utils.NormalizeEmail(email)).OrderDesc("data")
	recs, err := r.S.Select(ctx, tableTreinos, q)
	if err != nil {
		return nil, err
	}
	var out []model.Treino
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Replace overwrites the payload (and optionally the date) of a workout.
func (r *TreinoRepo) Replace(ctx context.Context, id int64, changes store.Record) (model.Treino, error) {
	if changes.Has("aluno_email") {
		changes["aluno_email"] = utils.NormalizeEmail(changes.String("aluno_email"))
	}
	if changes.Has("data") {
		changes["data"] = utils.ToISO(changes.String("data"))
	}
	recs, err := r.S.Update(ctx, tableTreinos, store.NewQuery().Eq("id", id), changes)
	if err != nil {
		return model.Treino{}, err
	}
	return firstTreino(recs)
}

// Delete removes a workout by id.
func (r *TreinoRepo) Delete(ctx context.Context, id int64) error {
	recs, err := r.S.Delete(ctx, tableTreinos, store.NewQuery().Eq("id", id))
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrNotFound
	}
	return nil
}

func firstTreino(recs []store.Record) (model.Treino, error) {
	if len(recs) == 0 {
		return model.Treino{}, ErrNotFound
	}
	var t model.Treino
	if err := store.Decode(recs[0], &t); err != nil {
		return model.Treino{}, err
	}
	return t, nil
}
