package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/queue"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/service"
	"github.com/meutreino/backend/internal/utils"
)

// ProfessorHandler exposes trainer management over usuarios rows with
// role=professor.
type ProfessorHandler struct {
	Usuarios       *repository.UsuarioRepo
	ContratosAdmin *repository.ContratoAdminRepo
	Notifier       *service.Notifier
}

func NewProfessorHandler(u *repository.UsuarioRepo, ca *repository.ContratoAdminRepo, n *service.Notifier) *ProfessorHandler {
	return &ProfessorHandler{Usuarios: u, ContratosAdmin: ca, Notifier: n}
}

type professorReq struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Senha       string `json:"senha"`
	CriadoPor   string `json:"criado_por"`
	ContractEnd string `json:"contract_end"`
}

// Create registers a trainer.
func (h *ProfessorHandler) Create(c echo.Context) error {
	var req professorReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if missing := firstMissing(
		[2]string{"nome", req.Nome},
		[2]string{"email", req.Email},
		[2]string{"senha", req.Senha},
	); missing != "" {
		return badRequest(c, "campo obrigatório ausente: "+missing)
	}
	u, err := h.Usuarios.Create(c.Request().Context(), model.Usuario{
		Nome:        req.Nome,
		Email:       req.Email,
		Senha:       req.Senha,
		Role:        model.RoleProfessor,
		CriadoPor:   req.CriadoPor,
		ContractEnd: utils.ToISO(req.ContractEnd),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, u.Sanitized())
}

// List returns every trainer.
func (h *ProfessorHandler) List(c echo.Context) error {
	us, err := h.Usuarios.List(c.Request().Context(), model.RoleProfessor)
	if err != nil {
		return fail(c, err)
	}
	out := make([]model.Usuario, 0, len(us))
	for _, u := range us {
		out = append(out, u.Sanitized())
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one trainer by id.
func (h *ProfessorHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	u, err := h.Usuarios.GetByID(c.Request().Context(), id)
	if err != nil || u.Role != model.RoleProfessor {
		if err == nil {
			err = repository.ErrNotFound
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u.Sanitized())
}

// Update applies the provided fields only.
func (h *ProfessorHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	changes := pick(body, "nome", "email", "senha", "criado_por")
	if len(changes) == 0 {
		return badRequest(c, "nenhum campo para atualizar")
	}
	u, err := h.Usuarios.Update(c.Request().Context(), id, changes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u.Sanitized())
}

// Delete removes a trainer by id.
func (h *ProfessorHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Usuarios.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateContract moves a trainer's contract end. The usuarios row and the
// contratos_admin window are updated in parallel for compatibility with
// older admin clients; the contratos_admin table being absent is not an
// error. The trainer receives a best-effort notice.
func (h *ProfessorHandler) UpdateContract(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req contractReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if req.ContractEnd == "" {
		return badRequest(c, "campo obrigatório ausente: contract_end")
	}
	end, ok := utils.ParseTimestamp(req.ContractEnd)
	if !ok {
		return badRequest(c, "campo inválido: contract_end")
	}

	ctx := c.Request().Context()
	u, err := h.Usuarios.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}

	blocked := !end.After(time.Now())
	endISO := end.UTC().Format(time.RFC3339)
	u, err = h.Usuarios.Update(ctx, id, map[string]any{
		"contract_end": endISO,
		"blocked":      blocked,
	})
	if err != nil {
		return fail(c, err)
	}

	status := "ativo"
	if blocked {
		status = "expirado"
	}
	if _, err := h.ContratosAdmin.UpdateWindow(ctx, u.Email, map[string]any{
		"contract_end": endISO,
		"status":       status,
	}); err != nil {
		c.Logger().Warnf("contratos_admin não atualizado: %v", err)
	}

	texto := fmt.Sprintf("Seu contrato foi renovado até %s.", end.Format("02/01/2006"))
	if blocked {
		texto = fmt.Sprintf("Seu contrato expirou em %s.", end.Format("02/01/2006"))
	}
	h.Notifier.Send(ctx, u.CriadoPor, u.Email, texto, "")
	h.Notifier.Publish(ctx, queue.DomainEvent{
		Type:           queue.EventContractUpdated,
		ProfessorEmail: u.Email,
		ContractEnd:    u.ContractEnd,
		Blocked:        blocked,
	})

	return c.JSON(http.StatusOK, u.Sanitized())
}
