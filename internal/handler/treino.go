package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/queue"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/service"
	"github.com/meutreino/backend/internal/utils"
)

// TreinoHandler exposes workout records. The workout payload is opaque to
// the server: it is stored and echoed back without inspection.
type TreinoHandler struct {
	Treinos   *repository.TreinoRepo
	Progresso *repository.ProgressoRepo
	Usuarios  *repository.UsuarioRepo
	Notifier  *service.Notifier
}

func NewTreinoHandler(t *repository.TreinoRepo, p *repository.ProgressoRepo, u *repository.UsuarioRepo, n *service.Notifier) *TreinoHandler {
	return &TreinoHandler{Treinos: t, Progresso: p, Usuarios: u, Notifier: n}
}

type treinoReq struct {
	AlunoEmail string `json:"aluno_email"`
	Treino     any    `json:"treino"`
	Data       string `json:"data"`
}

// Create stores a workout for a student.
func (h *TreinoHandler) Create(c echo.Context) error {
	var req treinoReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if req.AlunoEmail == "" {
		return badRequest(c, "campo obrigatório ausente: aluno_email")
	}
	if req.Treino == nil {
		return badRequest(c, "campo obrigatório ausente: treino")
	}
	t, err := h.Treinos.Create(c.Request().Context(), model.Treino{
		AlunoEmail: req.AlunoEmail,
		Treino:     req.Treino,
		Data:       req.Data,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// List returns the workouts of ?aluno_email=, newest first.
func (h *TreinoHandler) List(c echo.Context) error {
	email := c.QueryParam("aluno_email")
	if email == "" {
		return badRequest(c, "parâmetro obrigatório ausente: aluno_email")
	}
	ts, err := h.Treinos.ListByAluno(c.Request().Context(), email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// Get returns one workout by id.
func (h *TreinoHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	t, err := h.Treinos.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Replace overwrites the workout payload (PUT).
func (h *TreinoHandler) Replace(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	changes := pick(body, "aluno_email", "treino", "data")
	if !changes.Has("treino") {
		return badRequest(c, "campo obrigatório ausente: treino")
	}
	t, err := h.Treinos.Replace(c.Request().Context(), id, changes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a workout by id.
func (h *TreinoHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Treinos.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type concluirReq struct {
	AlunoEmail   string  `json:"aluno_email"`
	PesoCorporal float64 `json:"peso_corporal"`
	Cargas       any     `json:"cargas"`
	Dados        any     `json:"dados"`
}

// Concluir records a workout completion: a progress entry is appended and
// the student's enrolling professor gets a best-effort message. The
// professor is resolved through usuarios.criado_por; when that resolves
// back to the student the duplicate is skipped.
func (h *TreinoHandler) Concluir(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req concluirReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if req.AlunoEmail == "" {
		return badRequest(c, "campo obrigatório ausente: aluno_email")
	}

	ctx := c.Request().Context()
	t, err := h.Treinos.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}

	p, err := h.Progresso.Append(ctx, model.Progresso{
		AlunoEmail:   req.AlunoEmail,
		TreinoID:     t.ID,
		PesoCorporal: req.PesoCorporal,
		Cargas:       req.Cargas,
		Dados:        req.Dados,
	})
	if err != nil {
		return fail(c, err)
	}

	alunoEmail := utils.NormalizeEmail(req.AlunoEmail)
	if aluno, err := h.Usuarios.GetByEmail(ctx, alunoEmail); err == nil && aluno.CriadoPor != "" {
		h.Notifier.Send(ctx, alunoEmail, aluno.CriadoPor,
			fmt.Sprintf("%s concluiu um treino.", aluno.Nome), alunoEmail)
	}
	h.Notifier.Publish(ctx, queue.DomainEvent{
		Type:       queue.EventWorkoutCompleted,
		AlunoEmail: alunoEmail,
		TreinoID:   t.ID,
	})

	return c.JSON(http.StatusCreated, p)
}
