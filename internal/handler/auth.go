package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/config"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/store"
	"github.com/meutreino/backend/internal/utils"
)

// loginTimeout bounds the credential lookup. Exceeding it yields a server
// error distinguishable from invalid credentials; this is the only
// explicit timeout in the service.
const loginTimeout = 10 * time.Second

// AuthHandler bundles dependencies for the login endpoint.
type AuthHandler struct {
	Cfg      config.Config
	Usuarios *repository.UsuarioRepo
	Alunos   *repository.AlunoRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UsuarioRepo, a *repository.AlunoRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Usuarios: u, Alunos: a}
}

type loginReq struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Login matches email and senha against the store and returns the user
// plus a signed session token. Absent and mismatched credentials are
// indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	req.Email = utils.NormalizeEmail(req.Email)
	if missing := firstMissing([2]string{"email", req.Email}, [2]string{"senha", req.Senha}); missing != "" {
		return badRequest(c, "campo obrigatório ausente: "+missing)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), loginTimeout)
	defer cancel()

	u, err := h.Usuarios.FindByCredentials(ctx, req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "credenciais inválidas"})
		}
		if store.KindOf(err) == store.KindTimeout {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tempo limite excedido ao consultar o banco"})
		}
		return fail(c, err)
	}

	// Students get their profile row created on first login.
	if u.Role == "aluno" {
		if _, err := h.Alunos.EnsureProfile(ctx, u.Email, u.Nome); err != nil {
			c.Logger().Warnf("perfil do aluno não criado no login: %v", err)
		}
	}

	token, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.Email, u.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao emitir token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"usuario": u.Sanitized(),
		"token":   token.Token,
		"expira":  token.Exp,
	})
}
