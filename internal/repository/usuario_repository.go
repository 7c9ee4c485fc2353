package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableUsuarios = "usuarios"

// UsuarioRepo persists application users. The usuarios table is primary:
// its absence is a hard failure, never downgraded to an empty result.
type UsuarioRepo struct{ S store.Store }

func NewUsuarioRepo(s store.Store) *UsuarioRepo { return &UsuarioRepo{S: s} }

// Create inserts a user and returns the stored row.
func (r *UsuarioRepo) Create(ctx context.Context, u model.Usuario) (model.Usuario, error) {
	u.Email = utils.NormalizeEmail(u.Email)
	u.CriadoPor = utils.NormalizeEmail(u.CriadoPor)
	recs, err := r.S.Insert(ctx, tableUsuarios, u)
	if err != nil {
		return model.Usuario{}, err
	}
	return firstUsuario(recs)
}

// GetByID fetches a user by id.
func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (model.Usuario, error) {
	recs, err := r.S.Select(ctx, tableUsuarios, store.NewQuery().Eq("id", id).Limit(1))
	if err != nil {
		return model.Usuario{}, err
	}
	return firstUsuario(recs)
}

// GetByEmail fetches a user by normalized email.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (model.Usuario, error) {
	q := store.NewQuery().Eq("email", utils.NormalizeEmail(email)).Limit(1)
	recs, err := r.S.Select(ctx, tableUsuarios, q)
	if err != nil {
		return model.Usuario{}, err
	}
	return firstUsuario(recs)
}

// FindByCredentials returns the first row matching email and senha. The
// match happens inside the store; missing rows surface as ErrNotFound so
// the login handler can answer with a single "invalid credentials" error
// that never reveals whether the email exists.
func (r *UsuarioRepo) FindByCredentials(ctx context.Context, email, senha string) (model.Usuario, error) {
	q := store.NewQuery().
		Eq("email", utils.NormalizeEmail(email)).
		Eq("senha", senha).
		Limit(1)
	recs, err := r.S.Select(ctx, tableUsuarios, q)
	if err != nil {
		return model.Usuario{}, err
	}
	return firstUsuario(recs)
}

// List returns users, optionally filtered by role.
func (r *UsuarioRepo) List(ctx context.Context, role string) ([]model.Usuario, error) {
	q := store.NewQuery().OrderAsc("nome")
	if role != "" {
		q = q.Eq("role", role)
	}
	recs, err := r.S.Select(ctx, tableUsuarios, q)
	if err != nil {
		return nil, err
	}
	var out []model.Usuario
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a sparse change set and returns the updated row.
func (r *UsuarioRepo) Update(ctx context.Context, id int64, changes store.Record) (model.Usuario, error) {
	if changes.Has("email") {
		changes["email"] = utils.NormalizeEmail(changes.String("email"))
	}
	if changes.Has("criado_por") {
		changes["criado_por"] = utils.NormalizeEmail(changes.String("criado_por"))
	}
	recs, err := r.S.Update(ctx, tableUsuarios, store.NewQuery().Eq("id", id), changes)
	if err != nil {
		return model.Usuario{}, err
	}
	return firstUsuario(recs)
}

// Delete removes a user by id.
func (r *UsuarioRepo) Delete(ctx context.Context, id int64) error {
	recs, err := r.S.Delete(ctx, tableUsuarios, store.NewQuery().Eq("id", id))
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrNotFound
	}
	return nil
}

func firstUsuario(recs []store.Record) (model.Usuario, error) {
	if len(recs) == 0 {
		return model.Usuario{}, ErrNotFound
	}
	var u model.Usuario
	if err := store.Decode(recs[0], &u); err != nil {
		return model.Usuario{}, err
	}
	return u, nil
}
