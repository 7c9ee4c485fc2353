package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableAlunos = "alunos"

// AlunoRepo persists student profiles, keyed by normalized email.
type AlunoRepo struct{ S store.Store }

func NewAlunoRepo(s store.Store) *AlunoRepo { return &AlunoRepo{S: s} }

// Create inserts a profile row and returns it.
func (r *AlunoRepo) Create(ctx context.Context, a model.Aluno) (model.Aluno, error) {
	a.Email = utils.NormalizeEmail(a.Email)
	if a.DataNascimento != "" {
		a.DataNascimento = utils.ToISO(a.DataNascimento)
	}
	recs, err := r.S.Insert(ctx, tableAlunos, a)
	if err != nil {
		return model.Aluno{}, err
	}
	return firstAluno(recs)
}

// EnsureProfile creates the profile row for email unless one already
// exists. Used on first login and on role=aluno user creation; failures
// other than store errors on the lookup are returned untouched.
func (r *AlunoRepo) EnsureProfile(ctx context.Context, email, nome string) (model.Aluno, error) {
	email = utils.NormalizeEmail(email)
	existing, err := r.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if err != ErrNotFound {
		return model.Aluno{}, err
	}
	return r.Create(ctx, model.Aluno{Email: email, Nome: nome})
}

// GetByID fetches a profile by id.
func (r *AlunoRepo) GetByID(ctx context.Context, id int64) (model.Aluno, error) {
	recs, err := r.S.Select(ctx, tableAlunos, store.NewQuery().Eq("id", id).Limit(1))
	if err != nil {
		return model.Aluno{}, err
	}
	return firstAluno(recs)
}

// GetByEmail fetches a profile by normalized email.
func (r *AlunoRepo) GetByEmail(ctx context.Context, email string) (model.Aluno, error) {
	q := store.NewQuery().Eq("email", utils.NormalizeEmail(email)).Limit(1)
	recs, err := r.S.Select(ctx, tableAlunos, q)
	if err != nil {
		return model.Aluno{}, err
	}
	return firstAluno(recs)
}

// List returns every profile ordered by name.
func (r *AlunoRepo) List(ctx context.Context) ([]model.Aluno, error) {
	recs, err := r.S.Select(ctx, tableAlunos, store.NewQuery().OrderAsc("nome"))
	if err != nil {
		return nil, err
	}
	var out []model.Aluno
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a sparse change set by id.
func (r *AlunoRepo) Update(ctx context.Context, id int64, changes store.Record) (model.Aluno, error) {
	if changes.Has("email") {
		changes["email"] = utils.NormalizeEmail(changes.String("email"))
	}
	if changes.Has("data_nascimento") {
		changes["data_nascimento"] = utils.ToISO(changes.String("data_nascimento"))
	}
	recs, err := r.S.Update(ctx, tableAlunos, store.NewQuery().Eq("id", id), changes)
	if err != nil {
		return model.Aluno{}, err
	}
	return firstAluno(recs)
}

// Delete removes a profile by id.
func (r *AlunoRepo) Delete(ctx context.Context, id int64) error {
	recs, err := r.S.Delete(ctx, tableAlunos, store.NewQuery().Eq("id", id))
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrNotFound
	}
	return nil
}

func firstAluno(recs []store.Record) (model.Aluno, error) {
	if len(recs) == 0 {
		return model.Aluno{}, ErrNotFound
	}
	var a model.Aluno
	if err := store.Decode(recs[0], &a); err != nil {
		return model.Aluno{}, err
	}
	return a, nil
}
