package repository

import (
	"context"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

const (
	tablePosts       = "posts"
	tableCurtidas    = "curtidas"
	tableComentarios = "comentarios"
)

// PostRepo persists social posts, likes and comments.
type PostRepo struct{ S store.Store }

func NewPostRepo(s store.Store) *PostRepo { return &PostRepo{S: s} }

// Create inserts a post.
func (r *PostRepo) Create(ctx context.Context, p model.Post) (model.Post, error) {
	p.AutorEmail = utils.NormalizeEmail(p.AutorEmail)
	if p.CreatedAt == "" {
		p.CreatedAt = utils.NowISO()
	}
	recs, err := r.S.Insert(ctx, tablePosts, p)
	if err != nil {
		return model.Post{}, err
	}
	return firstPost(recs)
}

// GetByID fetches a post by id.
func (r *PostRepo) GetByID(ctx context.Context, id int64) (model.Post, error) {
	recs, err := r.S.Select(ctx, tablePosts, store.NewQuery().Eq("id", id).Limit(1))
	if err != nil {
		return model.Post{}, err
	}
	return firstPost(recs)
}

// ListPage returns one page of posts, newest first. Clamping of limit and
// offset is the handler's responsibility.
func (r *PostRepo) ListPage(ctx context.Context, limit, offset int) ([]model.Post, error) {
	q := store.NewQuery().OrderDesc("created_at").Limit(limit).Offset(offset)
	recs, err := r.S.Select(ctx, tablePosts, q)
	if err != nil {
		return nil, err
	}
	out := []model.Post{}
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteOwned removes a post after checking the actor is its author.
// Likes and comments for the post are removed alongside.
func (r *PostRepo) DeleteOwned(ctx context.Context, id int64, actorEmail string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if utils.NormalizeEmail(actorEmail) != utils.NormalizeEmail(p.AutorEmail) {
		return ErrForbidden
	}
	if _, err := r.S.Delete(ctx, tableCurtidas, store.NewQuery().Eq("post_id", id)); err != nil {
		return err
	}
	if _, err := r.S.Delete(ctx, tableComentarios, store.NewQuery().Eq("post_id", id)); err != nil {
		return err
	}
	_, err = r.S.Delete(ctx, tablePosts, store.NewQuery().Eq("id", id))
	return err
}

// ToggleLike flips the like state of (postID, email): present becomes
// absent and vice versa, returning the resulting state. This is a
// read-then-write pair with no lock; concurrent toggles for the same key
// are resolved by whichever write lands last.
func (r *PostRepo) ToggleLike(ctx context.Context, postID int64, email string) (bool, error) {
	email = utils.NormalizeEmail(email)
	key := store.NewQuery().Eq("post_id", postID).Eq("usuario_email", email)
	existing, err := r.S.Select(ctx, tableCurtidas, key.Limit(1))
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		if _, err := r.S.Delete(ctx, tableCurtidas, key); err != nil {
			return false, err
		}
		return false, nil
	}
	like := store.Record{
		"post_id":       postID,
		"usuario_email": email,
		"created_at":    utils.NowISO(),
	}
	if _, err := r.S.Insert(ctx, tableCurtidas, like); err != nil {
		// A concurrent toggle may have inserted first; the unique pair
		// constraint reports that as a conflict, which still means "liked".
		if store.KindOf(err) == store.KindUniqueViolation {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// LikeCount returns the number of likes on a post.
func (r *PostRepo) LikeCount(ctx context.Context, postID int64) (int, error) {
	recs, err := r.S.Select(ctx, tableCurtidas, store.NewQuery().Eq("post_id", postID))
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

// HasLike reports whether email liked the post.
func (r *PostRepo) HasLike(ctx context.Context, postID int64, email string) (bool, error) {
	q := store.NewQuery().
		Eq("post_id", postID).
		Eq("usuario_email", utils.NormalizeEmail(email)).
		Limit(1)
	recs, err := r.S.Select(ctx, tableCurtidas, q)
	if err != nil {
		return false, err
	}
	return len(recs) > 0, nil
}

// AddComment inserts a comment on a post.
func (r *PostRepo) AddComment(ctx context.Context, cm model.Comentario) (model.Comentario, error) {
	cm.UsuarioEmail = utils.NormalizeEmail(cm.UsuarioEmail)
	if cm.CreatedAt == "" {
		cm.CreatedAt = utils.NowISO()
	}
	recs, err := r.S.Insert(ctx, tableComentarios, cm)
	if err != nil {
		return model.Comentario{}, err
	}
	if len(recs) == 0 {
		return model.Comentario{}, ErrNotFound
	}
	var out model.Comentario
	if err := store.Decode(recs[0], &out); err != nil {
		return model.Comentario{}, err
	}
	return out, nil
}

// Comments returns every comment on a post, newest first.
func (r *PostRepo) Comments(ctx context.Context, postID int64) ([]model.Comentario, error) {
	q := store.NewQuery().Eq("post_id", postID).OrderDesc("created_at")
	recs, err := r.S.Select(ctx, tableComentarios, q)
	if err != nil {
		return nil, err
	}
	out := []model.Comentario{}
	if err := store.Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func firstPost(recs []store.Record) (model.Post, error) {
	if len(recs) == 0 {
		return model.Post{}, ErrNotFound
	}
	var p model.Post
	if err := store.Decode(recs[0], &p); err != nil {
		return model.Post{}, err
	}
	return p, nil
}
