package repository

import (
	"context"
	"errors"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const tableContratoConfig = "contrato_config"

// ErrConfigTableMissing signals that the contrato_config table does not
// exist in the destination schema. The handler turns this into an
// actionable message naming the migration to run.
var ErrConfigTableMissing = errors.New("tabela contrato_config ausente")

// ContratoConfigRepo persists per-(professor, aluno) contract settings.
//
// The destination schema is not guaranteed to carry the composite unique
// constraint the native upsert needs, so Upsert runs a short sequence of
// attempts, each terminal on success:
//
//  1. native conditional upsert on (professor_email, aluno_email);
//  2. table missing -> ErrConfigTableMissing;
//  3. constraint missing -> explicit update-then-insert emulation;
//  4. anything else propagates.
//
// The emulation leaves a window between the UPDATE and the INSERT: two
// concurrent first-time calls for the same pair can both insert. The
// store exposes no transaction boundary to close it.
type ContratoConfigRepo struct{ S store.Store }

func NewContratoConfigRepo(s store.Store) *ContratoConfigRepo { return &ContratoConfigRepo{S: s} }

// Upsert stores the settings for the pair, idempotently: calling twice
// with the same pair yields one logical row carrying the second call's
// values, whichever path runs.
func (r *ContratoConfigRepo) Upsert(ctx context.Context, cfg model.ContratoConfig) (model.ContratoConfig, error) {
	cfg.ProfessorEmail = utils.NormalizeEmail(cfg.ProfessorEmail)
	cfg.AlunoEmail = utils.NormalizeEmail(cfg.AlunoEmail)
	cfg.UpdatedAt = utils.NowISO()

	recs, err := r.S.Upsert(ctx, tableContratoConfig, "professor_email,aluno_email", cfg)
	if err == nil {
		return firstContratoConfig(recs)
	}

	switch store.KindOf(err) {
	case store.KindRelationNotFound:
		return model.ContratoConfig{}, ErrConfigTableMissing
	case store.KindNoMatchingConstraint:
		return r.manualUpsert(ctx, cfg)
	default:
		return model.ContratoConfig{}, err
	}
}

// manualUpsert emulates the upsert with an UPDATE filtered by the
// composite key, falling back to an INSERT when no row matched.
func (r *ContratoConfigRepo) manualUpsert(ctx context.Context, cfg model.ContratoConfig) (model.ContratoConfig, error) {
	var changes store.Record
	if err := store.Decode(cfg, &changes); err != nil {
		return model.ContratoConfig{}, err
	}
	delete(changes, "id")

	key := store.NewQuery().
		Eq("professor_email", cfg.ProfessorEmail).
		Eq("aluno_email", cfg.AlunoEmail)
	updated, err := r.S.Update(ctx, tableContratoConfig, key, changes)
	if err != nil {
		return model.ContratoConfig{}, err
	}
	if len(updated) > 0 {
		return firstContratoConfig(updated)
	}

	inserted, err := r.S.Insert(ctx, tableContratoConfig, cfg)
	if err != nil {
		return model.ContratoConfig{}, err
	}
	return firstContratoConfig(inserted)
}

// Get fetches the settings row for a pair.
func (r *ContratoConfigRepo) Get(ctx context.Context, professorEmail, alunoEmail string) (model.ContratoConfig, error) {
	q := store.NewQuery().
		Eq("professor_email", utils.NormalizeEmail(professorEmail)).
		Eq("aluno_email", utils.NormalizeEmail(alunoEmail)).
		Limit(1)
	recs, err := r.S.Select(ctx, tableContratoConfig, q)
	if err != nil {
		if store.KindOf(err) == store.KindRelationNotFound {
			return model.ContratoConfig{}, ErrNotFound
		}
		return model.ContratoConfig{}, err
	}
	return firstContratoConfig(recs)
}

func firstContratoConfig(recs []store.Record) (model.ContratoConfig, error) {
	if len(recs) == 0 {
		return model.ContratoConfig{}, ErrNotFound
	}
	var out model.ContratoConfig
	if err := store.Decode(recs[0], &out); err != nil {
		return model.ContratoConfig{}, err
	}
	return out, nil
}
