package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/utils"
)

// UsuarioHandler exposes CRUD over application users.
type UsuarioHandler struct {
	Usuarios *repository.UsuarioRepo
	Alunos   *repository.AlunoRepo
}

func NewUsuarioHandler(u *repository.UsuarioRepo, a *repository.AlunoRepo) *UsuarioHandler {
	return &UsuarioHandler{Usuarios: u, Alunos: a}
}

type usuarioReq struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Senha       string `json:"senha"`
	Role        string `json:"role"`
	CriadoPor   string `json:"criado_por"`
	ContractEnd string `json:"contract_end"`
}

// Create inserts a user. role=aluno also creates the student profile row.
func (h *UsuarioHandler) Create(c echo.Context) error {
	var req usuarioReq
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
	role := req.Role
	if role == "" {
		role = model.RoleAluno
	}
	if role != model.RoleAdmin && role != model.RoleProfessor && role != model.RoleAluno {
		return badRequest(c, "campo inválido: role")
	}

	ctx := c.Request().Context()
	u, err := h.Usuarios.Create(ctx, model.Usuario{
		Nome:        req.Nome,
		Email:       req.Email,
		Senha:       req.Senha,
		Role:        role,
		CriadoPor:   req.CriadoPor,
		ContractEnd: utils.ToISO(req.ContractEnd),
	})
	if err != nil {
		return fail(c, err)
	}
	if role == model.RoleAluno {
		if _, err := h.Alunos.EnsureProfile(ctx, u.Email, u.Nome); err != nil {
			c.Logger().Warnf("perfil do aluno não criado: %v", err)
		}
	}
	return c.JSON(http.StatusCreated, u.Sanitized())
}

// List returns users, optionally filtered by ?role=.
func (h *UsuarioHandler) List(c echo.Context) error {
	us, err := h.Usuarios.List(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return fail(c, err)
	}
	out := make([]model.Usuario, 0, len(us))
	for _, u := range us {
		out = append(out, u.Sanitized())
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a user by id.
func (h *UsuarioHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	u, err := h.Usuarios.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u.Sanitized())
}

// Update applies the provided fields only.
func (h *UsuarioHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	changes := pick(body, "nome", "email", "senha", "role", "criado_por", "contract_end", "blocked")
	if len(changes) == 0 {
		return badRequest(c, "nenhum campo para atualizar")
	}
	if changes.Has("contract_end") {
		changes["contract_end"] = utils.ToISO(changes.String("contract_end"))
	}
	u, err := h.Usuarios.Update(c.Request().Context(), id, changes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u.Sanitized())
}

// Delete removes a user by id.
func (h *UsuarioHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Usuarios.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
