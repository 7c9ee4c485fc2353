package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
)

// ContratoConfigHandler exposes the contract-settings upsert. Its
// external behavior is an idempotent upsert by (professor_email,
// aluno_email) regardless of whether the destination schema carries the
// composite unique constraint; the repository handles the fallback.
type ContratoConfigHandler struct {
	Configs *repository.ContratoConfigRepo
}

func NewContratoConfigHandler(r *repository.ContratoConfigRepo) *ContratoConfigHandler {
	return &ContratoConfigHandler{Configs: r}
}

type contratoConfigReq struct {
	ProfessorEmail string `json:"professor_email"`
	AlunoEmail     string `json:"aluno_email"`
	ProfessorNome  string `json:"professor_nome"`
	ProfessorCref  string `json:"professor_cref"`
	Opcao1         int64  `json:"opcao1"`
	Opcao2         int64  `json:"opcao2"`
}

// Upsert stores the settings for the pair.
func (h *ContratoConfigHandler) Upsert(c echo.Context) error {
	var req contratoConfigReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if missing := firstMissing(
		[2]string{"professor_email", req.ProfessorEmail},
		[2]string{"aluno_email", req.AlunoEmail},
	); missing != "" {
		return badRequest(c, "campo obrigatório ausente: "+missing)
	}

	out, err := h.Configs.Upsert(c.Request().Context(), model.ContratoConfig{
		ProfessorEmail: req.ProfessorEmail,
		AlunoEmail:     req.AlunoEmail,
		ProfessorNome:  req.ProfessorNome,
		ProfessorCref:  req.ProfessorCref,
		Opcao1:         req.Opcao1,
		Opcao2:         req.Opcao2,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConfigTableMissing) {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":   "tabela contrato_config não existe",
				"details": "execute a migração create_contrato_config.sql no banco de destino",
			})
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns the settings for ?professor_email=&aluno_email=.
func (h *ContratoConfigHandler) Get(c echo.Context) error {
	professor := c.QueryParam("professor_email")
	aluno := c.QueryParam("aluno_email")
	if missing := firstMissing(
		[2]string{"professor_email", professor},
		[2]string{"aluno_email", aluno},
	); missing != "" {
		return badRequest(c, "parâmetro obrigatório ausente: "+missing)
	}
	out, err := h.Configs.Get(c.Request().Context(), professor, aluno)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
