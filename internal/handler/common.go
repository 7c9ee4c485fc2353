package handler // handler defines the HTTP handlers of the API

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/store"
)

// fail translates an error from the lower layers into the JSON error
// body of this API: {error, details?, code?}. Store errors were already
// classified at the client boundary, so this is a plain switch, never a
// string match.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "registro não encontrado"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "operação não autorizada"})
	}

	code, msg := store.Diagnostic(err)
	switch store.KindOf(err) {
	case store.KindNotConfigured:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "banco de dados não configurado",
		})
	case store.KindTimeout:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "tempo limite excedido ao consultar o banco",
		})
	case store.KindUniqueViolation:
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   "registro duplicado",
			"details": msg,
			"code":    code,
		})
	case store.KindRelationNotFound:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "tabela ausente no banco; execute as migrações do schema",
			"details": msg,
			"code":    code,
		})
	}
	if msg == "" {
		msg = err.Error()
	}
	resp := echo.Map{"error": "erro no banco de dados", "details": msg}
	if code != "" {
		resp["code"] = code
	}
	return c.JSON(http.StatusInternalServerError, resp)
}

// badRequest answers a validation failure naming the offending field.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// paramID parses the numeric :id route parameter.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id inválido")
	}
	return id, nil
}

// pick builds a sparse change set containing only the allowed keys that
// the client actually sent; absent fields stay untouched in the store.
func pick(body map[string]any, keys ...string) store.Record {
	changes := store.Record{}
	for _, k := range keys {
		if v, ok := body[k]; ok {
			changes[k] = v
		}
	}
	return changes
}

// firstMissing returns the name of the first empty required field, or "".
func firstMissing(fields ...[2]string) string {
	for _, f := range fields {
		if f[1] == "" {
			return f[0]
		}
	}
	return ""
}
