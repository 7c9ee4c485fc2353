package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableConfiguracoes = "configuracoes"

// ConfiguracaoRepo persists the generic key/value settings table used for
// feature flags.
type ConfiguracaoRepo struct{ S store.Store }

func NewConfiguracaoRepo(s store.Store) *ConfiguracaoRepo { return &ConfiguracaoRepo{S: s} }

// Get fetches a setting by key.
func (r *ConfiguracaoRepo) Get(ctx context.Context, chave string) (model.Configuracao, error) {
	recs, err := r.S.Select(ctx, tableConfiguracoes, store.NewQuery().Eq("chave", chave).Limit(1))
	if err != nil {
		if store.KindOf(err) == store.KindRelationNotFound {
			return model.Configuracao{}, ErrNotFound
		}
		return model.Configuracao{}, err
	}
	if len(recs) == 0 {
		return model.Configuracao{}, ErrNotFound
	}
	var out model.Configuracao
	if err := store.Decode(recs[0], &out); err != nil {
		return model.Configuracao{}, err
	}
	return out, nil
}

// Set upserts a setting by its unique key.
func (r *ConfiguracaoRepo) Set(ctx context.Context, chave, valor string) (model.Configuracao, error) {
	row := model.Configuracao{Chave: chave, Valor: valor, UpdatedAt: utils.NowISO()}
	recs, err := r.S.Upsert(ctx, tableConfiguracoes, "chave", row)
	if err != nil {
		return model.Configuracao{}, err
	}
	if len(recs) == 0 {
		return row, nil
	}
	var out model.Configuracao
	if err := store.Decode(recs[0], &out); err != nil {
		return model.Configuracao{}, err
	}
	return out, nil
}
