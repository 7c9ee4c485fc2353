package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
)

// MensagemHandler exposes user-to-user messages.
type MensagemHandler struct {
	Mensagens *repository.MensagemRepo
}

func NewMensagemHandler(r *repository.MensagemRepo) *MensagemHandler {
	return &MensagemHandler{Mensagens: r}
}

type mensagemReq struct {
	De    string `json:"de"`
	Para  string `json:"para"`
	Texto string `json:"texto"`
}

// Create inserts a message.
func (h *MensagemHandler) Create(c echo.Context) error {
	var req mensagemReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if missing := firstMissing(
		[2]string{"de", req.De},
		[2]string{"para", req.Para},
		[2]string{"texto", req.Texto},
	); missing != "" {
		return badRequest(c, "campo obrigatório ausente: "+missing)
	}
	m, err := h.Mensagens.Create(c.Request().Context(), model.Mensagem{
		De:    req.De,
		Para:  req.Para,
		Texto: req.Texto,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// List returns messages sent or received by ?usuario_email=.
func (h *MensagemHandler) List(c echo.Context) error {
	email := c.QueryParam("usuario_email")
	if email == "" {
		return badRequest(c, "parâmetro obrigatório ausente: usuario_email")
	}
	ms, err := h.Mensagens.ListForUser(c.Request().Context(), email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ms)
}
