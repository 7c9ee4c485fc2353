package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/repository"
)

// ConfiguracaoHandler reads and writes key/value settings.
type ConfiguracaoHandler struct {
	Configuracoes *repository.ConfiguracaoRepo
}

func NewConfiguracaoHandler(r *repository.ConfiguracaoRepo) *ConfiguracaoHandler {
	return &ConfiguracaoHandler{Configuracoes: r}
}

func (h *ConfiguracaoHandler) Get(c echo.Context) error {
	chave := c.Param("chave")
	if chave == "" {
		return badRequest(c, "parâmetro obrigatório ausente: chave")
	}
	cfg, err := h.Configuracoes.Get(c.Request().Context(), chave)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

type configuracaoReq struct {
	Valor string `json:"valor"`
}

// Set upserts a setting by key.
func (h *ConfiguracaoHandler) Set(c echo.Context) error {
	chave := c.Param("chave")
	if chave == "" {
		return badRequest(c, "parâmetro obrigatório ausente: chave")
	}
	var req configuracaoReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	cfg, err := h.Configuracoes.Set(c.Request().Context(), chave, req.Valor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}
