package handler

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/config"
	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
)

// ProdutoHandler manages the product showcase and its share pages.
type ProdutoHandler struct {
	Cfg      *config.Config
	Produtos *repository.ProdutoRepo
}

func NewProdutoHandler(cfg *config.Config, r *repository.ProdutoRepo) *ProdutoHandler {
	return &ProdutoHandler{Cfg: cfg, Produtos: r}
}

type produtoReq struct {
	Titulo    string `json:"titulo"`
	ImagemURL string `json:"imagem_url"`
	Link      string `json:"link"`
	Ordem     int64  `json:"ordem"`
}

func (h *ProdutoHandler) Create(c echo.Context) error {
	var req produtoReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if req.Titulo == "" {
		return badRequest(c, "campo obrigatório ausente: titulo")
	}
	p, err := h.Produtos.Create(c.Request().Context(), model.Produto{
		Titulo:    req.Titulo,
		ImagemURL: req.ImagemURL,
		Link:      req.Link,
		Ordem:     req.Ordem,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// List returns active products ordered by ordem.
func (h *ProdutoHandler) List(c echo.Context) error {
	ps, err := h.Produtos.ListActive(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *ProdutoHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	body := map[string]any{}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	changes := pick(body, "titulo", "imagem_url", "link", "ordem", "ativo")
	if len(changes) == 0 {
		return badRequest(c, "nenhum campo para atualizar")
	}
	p, err := h.Produtos.Update(c.Request().Context(), id, changes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete marks the product inactive; the row stays so links keep resolving.
func (h *ProdutoHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Produtos.SoftDelete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// OG renders a minimal share page with Open-Graph metadata so messaging
// apps unfurl product links. The page redirects browsers to the product
// link when there is one; soft-deleted products still render.
func (h *ProdutoHandler) OG(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	p, err := h.Produtos.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}

	pageURL := fmt.Sprintf("%s/produtos/%d/og", strings.TrimRight(h.Cfg.SiteURL, "/"), p.ID)
	imagem := p.ImagemURL
	if imagem != "" && strings.HasPrefix(imagem, "/") {
		imagem = strings.TrimRight(h.Cfg.SiteURL, "/") + imagem
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(p.Titulo))
	fmt.Fprintf(&b, "<meta property=\"og:title\" content=\"%s\">\n", html.EscapeString(p.Titulo))
	b.WriteString("<meta property=\"og:type\" content=\"product\">\n")
	fmt.Fprintf(&b, "<meta property=\"og:url\" content=\"%s\">\n", html.EscapeString(pageURL))
	if imagem != "" {
		fmt.Fprintf(&b, "<meta property=\"og:image\" content=\"%s\">\n", html.EscapeString(imagem))
	}
	if p.Link != "" {
		fmt.Fprintf(&b, "<meta http-equiv=\"refresh\" content=\"0;url=%s\">\n", html.EscapeString(p.Link))
	}
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(p.Titulo))
	if p.Link != "" {
		fmt.Fprintf(&b, "<p><a href=\"%s\">Ver produto</a></p>\n", html.EscapeString(p.Link))
	}
	b.WriteString("</body>\n</html>\n")

	return c.HTML(http.StatusOK, b.String())
}
