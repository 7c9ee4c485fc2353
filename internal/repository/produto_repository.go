package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
)

const tableProdutos = "produtos"

// ProdutoRepo persists store products. Deletion is soft: rows get
// ativo=false and stop appearing in listings.
type ProdutoRepo struct{ S store.Store }

func NewProdutoRepo(s store.Store) *ProdutoRepo { return &ProdutoRepo{S: s} }

// Create inserts a product.
func (r *ProdutoRepo) Create(ctx context.Context, p model.Produto) (model.Produto, error) {
	p.Ativo = true
	recs, err := r.S.Insert(ctx, tableProdutos, p)
	if err != nil {
		return model.Produto{}, err
	}
	return firstProduto(recs)
}

// GetByID fetches a product by id, active or not; the Open-Graph page
// must keep resolving products that were soft-deleted after being shared.
func (r *ProdutoRepo) GetByID(ctx context.Context, id int64) (model.Produto, error) {
	recs, err := r.S.Select(ctx, tableProdutos, store.NewQuery().Eq("id", id).Limit(1))
	if err != nil {
		return model.Produto{}, err
	}
	return firstProduto(recs)
}

// ListActive returns active products sorted by their ordem value.
func (r *ProdutoRepo) ListActive(ctx context.Context) ([]model.Produto, error) {
	q := store.NewQuery().Eq("ativo", true).OrderAsc("ordem")
	recs, err := r.S.Select(ctx, tableProdutos, q)
	if err != nil {
		return nil, err
	}
	out := []model.Produto{}
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a sparse change set by id.
func (r *ProdutoRepo) Update(ctx context.Context, id int64, changes store.Record) (model.Produto, error) {
	recs, err := r.S.Update(ctx, tableProdutos, store.NewQuery().Eq("id", id), changes)
	if err != nil {
		return model.Produto{}, err
	}
	return firstProduto(recs)
}

// SoftDelete marks a product inactive.
func (r *ProdutoRepo) SoftDelete(ctx context.Context, id int64) error {
	recs, err := r.S.Update(ctx, tableProdutos, store.NewQuery().Eq("id", id), store.Record{"ativo": false})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrNotFound
	}
	return nil
}

func firstProduto(recs []store.Record) (model.Produto, error) {
	if len(recs) == 0 {
		return model.Produto{}, ErrNotFound
	}
	var p model.Produto
	if err := store.Decode(recs[0], &p); err != nil {
		return model.Produto{}, err
	}
	return p, nil
}
