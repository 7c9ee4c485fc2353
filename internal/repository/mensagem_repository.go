package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableMensagens = "mensagens"

// MensagemRepo persists messages, both user-sent ones and the rows
// produced as side effects of contract and workout mutations.
type MensagemRepo struct{ S store.Store }

func NewMensagemRepo(s store.Store) *MensagemRepo { return &MensagemRepo{S: s} }

// Create inserts a message.
func (r *MensagemRepo) Create(ctx context.Context, m model.Mensagem) (model.Mensagem, error) {
	m.De = utils.NormalizeEmail(m.De)
	m.Para = utils.NormalizeEmail(m.Para)
	if m.CreatedAt == "" {
		m.CreatedAt = utils.NowISO()
	}
	recs, err := r.S.Insert(ctx, tableMensagens, m)
	if err != nil {
		return model.Mensagem{}, err
	}
	if len(recs) == 0 {
		return model.Mensagem{}, ErrNotFound
	}
	var out model.Mensagem
	if err := store.Decode(recs[0], &out); err != nil {
		return model.Mensagem{}, err
	}
	return out, nil
}

// ListForUser returns messages a user sent or received, newest first.
func (r *MensagemRepo) ListForUser(ctx context.Context, email string) ([]model.Mensagem, error) {
	e := utils.NormalizeEmail(email)
	q := store.NewQuery().Or("de", e, "para", e).OrderDesc("created_at")
	recs, err := r.S.Select(ctx, tableMensagens, q)
	if err != nil {
		return nil, err
	}
	out := []model.Mensagem{}
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}
