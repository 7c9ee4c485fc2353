package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
)

// ContratoAdminHandler exposes the professor/admin contract windows.
type ContratoAdminHandler struct {
	ContratosAdmin *repository.ContratoAdminRepo
}

func NewContratoAdminHandler(r *repository.ContratoAdminRepo) *ContratoAdminHandler {
	return &ContratoAdminHandler{ContratosAdmin: r}
}

type contratoAdminReq struct {
	ProfessorEmail string `json:"professor_email"`
	AdminEmail     string `json:"admin_email"`
	ContractStart  string `json:"contract_start"`
	ContractEnd    string `json:"contract_end"`
	Status         string `json:"status"`
}

// Create inserts an admin contract row.
func (h *ContratoAdminHandler) Create(c echo.Context) error {
	var req contratoAdminReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if req.ProfessorEmail == "" {
		return badRequest(c, "campo obrigatório ausente: professor_email")
	}
	out, err := h.ContratosAdmin.Create(c.Request().Context(), model.ContratoAdmin{
		ProfessorEmail: req.ProfessorEmail,
		AdminEmail:     req.AdminEmail,
		ContractStart:  req.ContractStart,
		ContractEnd:    req.ContractEnd,
		Status:         req.Status,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// List returns admin contracts for ?professor_email=. A schema without
// the contratos_admin table yields an empty list.
func (h *ContratoAdminHandler) List(c echo.Context) error {
	email := c.QueryParam("professor_email")
	if email == "" {
		return badRequest(c, "parâmetro obrigatório ausente: professor_email")
	}
	cs, err := h.ContratosAdmin.ListByProfessor(c.Request().Context(), email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cs)
}
