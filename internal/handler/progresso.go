package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
)

// ProgressoHandler exposes the append-only progress log.
type ProgressoHandler struct {
	Progresso *repository.ProgressoRepo
}

func NewProgressoHandler(p *repository.ProgressoRepo) *ProgressoHandler {
	return &ProgressoHandler{Progresso: p}
}

type progressoReq struct {
	AlunoEmail   string  `json:"aluno_email"`
	TreinoID     int64   `json:"treino_id"`
	PesoCorporal float64 `json:"peso_corporal"`
	Cargas       any     `json:"cargas"`
	Dados        any     `json:"dados"`
}

// Create appends one progress entry.
func (h *ProgressoHandler) Create(c echo.Context) error {
	var req progressoReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if req.AlunoEmail == "" {
		return badRequest(c, "campo obrigatório ausente: aluno_email")
	}
	p, err := h.Progresso.Append(c.Request().Context(), model.Progresso{
		AlunoEmail:   req.AlunoEmail,
		TreinoID:     req.TreinoID,
		PesoCorporal: req.PesoCorporal,
		Cargas:       req.Cargas,
		Dados:        req.Dados,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// List returns a student's progress entries. A schema without the
// progresso table yields an empty list so optional features never break
// primary flows.
func (h *ProgressoHandler) List(c echo.Context) error {
	email := c.QueryParam("aluno_email")
	if email == "" {
		return badRequest(c, "parâmetro obrigatório ausente: aluno_email")
	}
	ps, err := h.Progresso.ListByAluno(c.Request().Context(), email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ps)
}
