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

// AlunoHandler exposes student management. Students live in two tables:
// the usuarios row (credentials, role, contract) addressed by these
// routes, and the alunos profile row (birth date, bio, photo) kept in
// sync opportunistically.
type AlunoHandler struct {
	Usuarios *repository.UsuarioRepo
	Alunos   *repository.AlunoRepo
	Notifier *service.Notifier
}

func NewAlunoHandler(u *repository.UsuarioRepo, a *repository.AlunoRepo, n *service.Notifier) *AlunoHandler {
	return &AlunoHandler{Usuarios: u, Alunos: a, Notifier: n}
}

type alunoReq struct {
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Senha     string `json:"senha"`
	CriadoPor string `json:"criado_por"`
}

// Create registers a student: a usuarios row with role=aluno plus the
// profile row.
func (h *AlunoHandler) Create(c echo.Context) error {
	var req alunoReq
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

	ctx := c.Request().Context()
	u, err := h.Usuarios.Create(ctx, model.Usuario{
		Nome:      req.Nome,
		Email:     req.Email,
		Senha:     req.Senha,
		Role:      model.RoleAluno,
		CriadoPor: req.CriadoPor,
	})
	if err != nil {
		return fail(c, err)
	}
	if _, err := h.Alunos.EnsureProfile(ctx, u.Email, u.Nome); err != nil {
		c.Logger().Warnf("perfil do aluno não criado: %v", err)
	}
	return c.JSON(http.StatusCreated, u.Sanitized())
}

// List returns every student.
func (h *AlunoHandler) List(c echo.Context) error {
	us, err := h.Usuarios.List(c.Request().Context(), model.RoleAluno)
	if err != nil {
		return fail(c, err)
	}
	out := make([]model.Usuario, 0, len(us))
	for _, u := range us {
		out = append(out, u.Sanitized())
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one student, with the profile row embedded when present.
func (h *AlunoHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx := c.Request().Context()
	u, err := h.Usuarios.GetByID(ctx, id)
	if err != nil || u.Role != model.RoleAluno {
		if err == nil {
			err = repository.ErrNotFound
		}
		return fail(c, err)
	}
	resp := echo.Map{"usuario": u.Sanitized()}
	if perfil, err := h.Alunos.GetByEmail(ctx, u.Email); err == nil {
		resp["perfil"] = perfil
	}
	return c.JSON(http.StatusOK, resp)
}

// Update applies sparse changes, routing account fields to usuarios and
// profile fields to alunos.
func (h *AlunoHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	userChanges := pick(body, "nome", "email", "senha", "criado_por")
	profileChanges := pick(body, "data_nascimento", "bio", "foto_url")
	if len(userChanges) == 0 && len(profileChanges) == 0 {
		return badRequest(c, "nenhum campo para atualizar")
	}

	ctx := c.Request().Context()
	u, err := h.Usuarios.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	oldEmail := u.Email
	if len(userChanges) > 0 {
		if u, err = h.Usuarios.Update(ctx, id, userChanges); err != nil {
			return fail(c, err)
		}
		// The profile row is keyed by email; follow an address change so
		// the two tables keep pointing at the same student.
		if u.Email != oldEmail {
			if perfil, err := h.Alunos.GetByEmail(ctx, oldEmail); err == nil {
				if _, err := h.Alunos.Update(ctx, perfil.ID, map[string]any{"email": u.Email}); err != nil {
					c.Logger().Warnf("email do perfil não atualizado: %v", err)
				}
			}
		}
	}
	if len(profileChanges) > 0 {
		perfil, err := h.Alunos.EnsureProfile(ctx, u.Email, u.Nome)
		if err != nil {
			return fail(c, err)
		}
		if _, err := h.Alunos.Update(ctx, perfil.ID, profileChanges); err != nil {
			return fail(c, err)
		}
	}
	return c.JSON(http.StatusOK, u.Sanitized())
}

// Delete removes the student account and, best-effort, its profile row.
func (h *AlunoHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx := c.Request().Context()
	u, err := h.Usuarios.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if err := h.Usuarios.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	if perfil, err := h.Alunos.GetByEmail(ctx, u.Email); err == nil {
		if err := h.Alunos.Delete(ctx, perfil.ID); err != nil {
			c.Logger().Warnf("perfil do aluno não removido: %v", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

type contractReq struct {
	ContractEnd string `json:"contract_end"`
}

// UpdateContract moves a student's contract end. blocked is derived here,
// at write time, from contract_end <= now; reads never re-evaluate it.
// The student receives an expiry or renewal notice and the enrolling
// professor a secondary one, both best-effort.
func (h *AlunoHandler) UpdateContract(c echo.Context) error {
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
	u, err = h.Usuarios.Update(ctx, id, map[string]any{
		"contract_end": end.UTC().Format(time.RFC3339),
		"blocked":      blocked,
	})
	if err != nil {
		return fail(c, err)
	}

	texto := fmt.Sprintf("Seu contrato foi renovado até %s.", end.Format("02/01/2006"))
	if blocked {
		texto = fmt.Sprintf("Seu contrato expirou em %s.", end.Format("02/01/2006"))
	}
	h.Notifier.Send(ctx, u.CriadoPor, u.Email, texto, "")
	h.Notifier.Send(ctx, u.Email, u.CriadoPor,
		fmt.Sprintf("Contrato de %s atualizado até %s.", u.Nome, end.Format("02/01/2006")),
		u.Email) // skip when the professor email equals the student's
	h.Notifier.Publish(ctx, queue.DomainEvent{
		Type:           queue.EventContractUpdated,
		AlunoEmail:     u.Email,
		ProfessorEmail: u.CriadoPor,
		ContractEnd:    u.ContractEnd,
		Blocked:        blocked,
	})

	return c.JSON(http.StatusOK, u.Sanitized())
}
