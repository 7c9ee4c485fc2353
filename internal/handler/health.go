package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/config"
)

// Health reports liveness. The store field tells deploy checks whether
// Supabase credentials were supplied without probing the store itself.
func Health(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		store := "configurado"
		if !cfg.StoreConfigured() {
			store = "não configurado"
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "store": store})
	}
}
