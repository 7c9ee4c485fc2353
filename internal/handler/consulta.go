package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
)

// ConsultaHandler exposes consultations/assessments. Clients address them
// either by the numeric usuarios id or by student email, which is
// resolved to an id first.
type ConsultaHandler struct {
	Consultas *repository.ConsultaRepo
	Usuarios  *repository.UsuarioRepo
}

func NewConsultaHandler(co *repository.ConsultaRepo, u *repository.UsuarioRepo) *ConsultaHandler {
	return &ConsultaHandler{Consultas: co, Usuarios: u}
}

type consultaReq struct {
	ClienteID int64  `json:"cliente_id"`
	Tipo      string `json:"tipo"`
	Dados     any    `json:"dados"`
	CriadoPor string `json:"criado_por"`
	Data      string `json:"data"`
}

// Create inserts a consultation.
func (h *ConsultaHandler) Create(c echo.Context) error {
	var req consultaReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if req.ClienteID <= 0 {
		return badRequest(c, "campo obrigatório ausente: cliente_id")
	}
	if req.Tipo == "" {
		return badRequest(c, "campo obrigatório ausente: tipo")
	}
	out, err := h.Consultas.Create(c.Request().Context(), model.Consulta{
		ClienteID: req.ClienteID,
		Tipo:      req.Tipo,
		Dados:     req.Dados,
		CriadoPor: req.CriadoPor,
		Data:      req.Data,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// List returns consultations for ?cliente_id= or ?aluno_email=. A schema
// without the consultas table yields an empty list.
func (h *ConsultaHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var clienteID int64
	if raw := c.QueryParam("cliente_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return badRequest(c, "parâmetro inválido: cliente_id")
		}
		clienteID = id
	} else if email := c.QueryParam("aluno_email"); email != "" {
		u, err := h.Usuarios.GetByEmail(ctx, email)
		if err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusOK, []model.Consulta{})
			}
			return fail(c, err)
		}
		clienteID = u.ID
	} else {
		return badRequest(c, "parâmetro obrigatório ausente: cliente_id ou aluno_email")
	}

	cs, err := h.Consultas.ListByCliente(ctx, clienteID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cs)
}
