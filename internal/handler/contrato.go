package handler

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/model"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/storage"
)

// ContratoHandler exposes signed contract documents. Request bodies carry
// the PDF and the signature image as base64 data URIs; bytes land on
// disk, rows carry only relative paths.
type ContratoHandler struct {
	Contratos *repository.ContratoRepo
	Files     *storage.Files
}

func NewContratoHandler(r *repository.ContratoRepo, f *storage.Files) *ContratoHandler {
	return &ContratoHandler{Contratos: r, Files: f}
}

type contratoReq struct {
	AlunoEmail     string `json:"aluno_email"`
	ProfessorEmail string `json:"professor_email"`
	Arquivo        string `json:"arquivo"`    // base64 data URI, PDF
	Assinatura     string `json:"assinatura"` // base64 data URI, image
	Dados          any    `json:"dados"`
	AssinadoEm     string `json:"assinado_em"`
}

// Create stores a contract document and its signature.
func (h *ContratoHandler) Create(c echo.Context) error {
	var req contratoReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if missing := firstMissing(
		[2]string{"aluno_email", req.AlunoEmail},
		[2]string{"professor_email", req.ProfessorEmail},
	); missing != "" {
		return badRequest(c, "campo obrigatório ausente: "+missing)
	}

	row := model.Contrato{
		AlunoEmail:     req.AlunoEmail,
		ProfessorEmail: req.ProfessorEmail,
		Dados:          req.Dados,
		AssinadoEm:     req.AssinadoEm,
	}
	if req.Arquivo != "" {
		rel, err := h.Files.SaveBase64(storage.DirContracts, "contrato", req.Arquivo)
		if err != nil {
			return badRequest(c, "campo inválido: arquivo")
		}
		row.ArquivoPath = rel
	}
	if req.Assinatura != "" {
		rel, err := h.Files.SaveBase64(storage.DirContracts, "assinatura", req.Assinatura)
		if err != nil {
			return badRequest(c, "campo inválido: assinatura")
		}
		row.AssinaturaPath = rel
	}

	out, err := h.Contratos.Create(c.Request().Context(), row)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// List returns contract documents for ?aluno_email=.
func (h *ContratoHandler) List(c echo.Context) error {
	email := c.QueryParam("aluno_email")
	if email == "" {
		return badRequest(c, "parâmetro obrigatório ausente: aluno_email")
	}
	cs, err := h.Contratos.ListByAluno(c.Request().Context(), email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cs)
}

// Arquivo streams the stored PDF. A row without a path, or a path whose
// file vanished from disk, is a not-found condition rather than a server
// error.
func (h *ContratoHandler) Arquivo(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ct, err := h.Contratos.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if ct.ArquivoPath == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contrato sem arquivo"})
	}
	abs, err := h.Files.Abs(ct.ArquivoPath)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "arquivo não encontrado"})
	}
	if _, err := os.Stat(abs); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "arquivo não encontrado"})
	}
	return c.File(abs)
}

// Delete removes a contract document. The acting professor is identified
// by the professor_email query parameter and must match the record's
// owning professor; this comparison is the entire authorization model.
func (h *ContratoHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	actor := c.QueryParam("professor_email")
	if actor == "" {
		return badRequest(c, "parâmetro obrigatório ausente: professor_email")
	}
	ct, err := h.Contratos.DeleteOwned(c.Request().Context(), id, actor)
	if err != nil {
		return fail(c, err)
	}
	for _, rel := range []string{ct.ArquivoPath, ct.AssinaturaPath} {
		if rel == "" {
			continue
		}
		if err := h.Files.Remove(rel); err != nil {
			c.Logger().Warnf("arquivo do contrato não removido: %v", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
