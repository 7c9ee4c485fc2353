package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/storage"
)

// Feed pagination bounds.
const (
	feedDefaultLimit = 20
	feedMaxLimit     = 100
)

// PostHandler exposes the social feed: posts, likes and comments.
type PostHandler struct {
	Posts *repository.PostRepo
	Files *storage.Files
}

func NewPostHandler(r *repository.PostRepo, f *storage.Files) *PostHandler {
	return &PostHandler{Posts: r, Files: f}
}

type postReq struct {
	AutorEmail string `json:"autor_email"`
	AutorNome  string `json:"autor_nome"`
	Texto      string `json:"texto"`
	Imagem     string `json:"imagem"` // base64 data URI
}

// Create publishes a post. The image arrives either as a multipart file
// under "imagem" or as a base64 data URI in the JSON body; both land in
// uploads/posts with the relative path stored on the row.
func (h *PostHandler) Create(c echo.Context) error {
	var req postReq
	imagemURL := ""

	if fh, err := c.FormFile("imagem"); err == nil && fh != nil {
		req.AutorEmail = c.FormValue("autor_email")
		req.AutorNome = c.FormValue("autor_nome")
		req.Texto = c.FormValue("texto")
		rel, err := h.Files.SaveUpload(storage.DirPosts, "post", fh)
		if err != nil {
			return badRequest(c, "campo inválido: imagem")
		}
		imagemURL = "/uploads/" + rel
	} else {
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "corpo da requisição inválido")
		}
		if req.Imagem != "" {
			rel, err := h.Files.SaveBase64(storage.DirPosts, "post", req.Imagem)
			if err != nil {
				return badRequest(c, "campo inválido: imagem")
			}
			imagemURL = "/uploads/" + rel
		}
	}

	if req.AutorEmail == "" {
		return badRequest(c, "campo obrigatório ausente: autor_email")
	}
	if req.Texto == "" && imagemURL == "" {
		return badRequest(c, "campo obrigatório ausente: texto ou imagem")
	}

	p, err := h.Posts.Create(c.Request().Context(), model.Post{
		AutorEmail: req.AutorEmail,
		AutorNome:  req.AutorNome,
		Texto:      req.Texto,
		ImagemURL:  imagemURL,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Feed returns one reverse-chronological page of posts enriched with
// likeCount, commentCount and a preview of the 3 most recent comments.
// limit is clamped to [0,100] and offset to >= 0; paging past the end is
// an empty list, never an error. The per-post lookups are deliberate:
// the dataset is small and the contract only fixes the response shape.
func (h *PostHandler) Feed(c echo.Context) error {
	limit := feedDefaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > feedMaxLimit {
		limit = feedMaxLimit
	}
	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	viewer := c.QueryParam("usuario_email")

	ctx := c.Request().Context()
	posts, err := h.Posts.ListPage(ctx, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	out := make([]model.FeedPost, 0, len(posts))
	for _, p := range posts {
		item := model.FeedPost{Post: p, CommentPreview: []model.Comentario{}}
		if item.LikeCount, err = h.Posts.LikeCount(ctx, p.ID); err != nil {
			return fail(c, err)
		}
		comments, err := h.Posts.Comments(ctx, p.ID)
		if err != nil {
			return fail(c, err)
		}
		item.CommentCount = len(comments)
		preview := comments
		if len(preview) > 3 {
			preview = preview[:3]
		}
		// newest-first from the store; present the preview chronologically
		for i := len(preview) - 1; i >= 0; i-- {
			item.CommentPreview = append(item.CommentPreview, preview[i])
		}
		if viewer != "" {
			if item.Curtido, err = h.Posts.HasLike(ctx, p.ID, viewer); err != nil {
				return fail(c, err)
			}
		}
		out = append(out, item)
	}
	return c.JSON(http.StatusOK, out)
}

type curtirReq struct {
	UsuarioEmail string `json:"usuario_email"`
}

// Curtir toggles the caller's like on a post and returns the resulting
// state as {curtido}.
func (h *PostHandler) Curtir(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req curtirReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if req.UsuarioEmail == "" {
		return badRequest(c, "campo obrigatório ausente: usuario_email")
	}

	ctx := c.Request().Context()
	if _, err := h.Posts.GetByID(ctx, id); err != nil {
		return fail(c, err)
	}
	curtido, err := h.Posts.ToggleLike(ctx, id, req.UsuarioEmail)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"curtido": curtido})
}

type comentarioReq struct {
	UsuarioEmail string `json:"usuario_email"`
	UsuarioNome  string `json:"usuario_nome"`
	Texto        string `json:"texto"`
}

// Comentar adds a comment to a post.
func (h *PostHandler) Comentar(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req comentarioReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if missing := firstMissing(
		[2]string{"usuario_email", req.UsuarioEmail},
		[2]string{"texto", req.Texto},
	); missing != "" {
		return badRequest(c, "campo obrigatório ausente: "+missing)
	}

	ctx := c.Request().Context()
	if _, err := h.Posts.GetByID(ctx, id); err != nil {
		return fail(c, err)
	}
	cm, err := h.Posts.AddComment(ctx, model.Comentario{
		PostID:       id,
		UsuarioEmail: req.UsuarioEmail,
		UsuarioNome:  req.UsuarioNome,
		Texto:        req.Texto,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, cm)
}

// Comentarios lists every comment on a post, newest first.
func (h *PostHandler) Comentarios(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	cs, err := h.Posts.Comments(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cs)
}

// Delete removes a post owned by ?usuario_email=.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	actor := c.QueryParam("usuario_email")
	if actor == "" {
		return badRequest(c, "parâmetro obrigatório ausente: usuario_email")
	}
	if err := h.Posts.DeleteOwned(c.Request().Context(), id, actor); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
