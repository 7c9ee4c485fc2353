package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/meutreino/backend/internal/config"
	"github.com/meutreino/backend/internal/handler"
)

// Handlers bundles every handler the API mounts. main builds one of
// these after wiring repositories and passes it to Register.
type Handlers struct {
	Auth           *handler.AuthHandler
	Usuarios       *handler.UsuarioHandler
	Alunos         *handler.AlunoHandler
	Professores    *handler.ProfessorHandler
	Treinos        *handler.TreinoHandler
	Progresso      *handler.ProgressoHandler
	Consultas      *handler.ConsultaHandler
	ContratoConfig *handler.ContratoConfigHandler
	ContratosAdmin *handler.ContratoAdminHandler
	Contratos      *handler.ContratoHandler
	Mensagens      *handler.MensagemHandler
	Posts          *handler.PostHandler
	Produtos       *handler.ProdutoHandler
	Configuracoes  *handler.ConfiguracaoHandler
}

// Register mounts the whole HTTP surface on the provided Echo instance.
func Register(e *echo.Echo, cfg *config.Config, h Handlers) {
	e.GET("/healthz", handler.Health(cfg))

	e.POST("/login", h.Auth.Login)

	e.POST("/usuarios", h.Usuarios.Create)
	e.GET("/usuarios", h.Usuarios.List)
	e.GET("/usuarios/:id", h.Usuarios.Get)
	e.PATCH("/usuarios/:id", h.Usuarios.Update)
	e.DELETE("/usuarios/:id", h.Usuarios.Delete)

	e.POST("/alunos", h.Alunos.Create)
	e.GET("/alunos", h.Alunos.List)
	e.GET("/alunos/:id", h.Alunos.Get)
	e.PATCH("/alunos/:id", h.Alunos.Update)
	e.DELETE("/alunos/:id", h.Alunos.Delete)
	e.PATCH("/alunos/:id/contract", h.Alunos.UpdateContract)
	e.PUT("/alunos/:id/contract", h.Alunos.UpdateContract)

	e.POST("/professores", h.Professores.Create)
	e.GET("/professores", h.Professores.List)
	e.GET("/professores/:id", h.Professores.Get)
	e.PATCH("/professores/:id", h.Professores.Update)
	e.DELETE("/professores/:id", h.Professores.Delete)
	e.PATCH("/professores/:id/contract", h.Professores.UpdateContract)
	e.PUT("/professores/:id/contract", h.Professores.UpdateContract)

	e.POST("/treinos", h.Treinos.Create)
	e.GET("/treinos", h.Treinos.List)
	e.GET("/treinos/:id", h.Treinos.Get)
	e.PUT("/treinos/:id", h.Treinos.Replace)
	e.DELETE("/treinos/:id", h.Treinos.Delete)
	e.POST("/treinos/:id/concluir", h.Treinos.Concluir)

	e.POST("/progresso", h.Progresso.Create)
	e.GET("/progresso", h.Progresso.List)

	e.POST("/consultas", h.Consultas.Create)
	e.GET("/consultas", h.Consultas.List)

	e.POST("/contrato-config", h.ContratoConfig.Upsert)
	e.GET("/contrato-config", h.ContratoConfig.Get)

	e.POST("/contratos-admin", h.ContratosAdmin.Create)
	e.GET("/contratos-admin", h.ContratosAdmin.List)

	e.POST("/contratos", h.Contratos.Create)
	e.GET("/contratos", h.Contratos.List)
	e.GET("/contratos/:id/arquivo", h.Contratos.Arquivo)
	e.DELETE("/contratos/:id", h.Contratos.Delete)

	e.POST("/mensagens", h.Mensagens.Create)
	e.GET("/mensagens", h.Mensagens.List)

	e.GET("/posts", h.Posts.Feed)
	e.POST("/posts", h.Posts.Create)
	e.DELETE("/posts/:id", h.Posts.Delete)
	e.POST("/posts/:id/curtir", h.Posts.Curtir)
	e.POST("/posts/:id/comentarios", h.Posts.Comentar)
	e.GET("/posts/:id/comentarios", h.Posts.Comentarios)

	e.POST("/produtos", h.Produtos.Create)
	e.GET("/produtos", h.Produtos.List)
	e.PATCH("/produtos/:id", h.Produtos.Update)
	e.DELETE("/produtos/:id", h.Produtos.Delete)
	e.GET("/produtos/:id/og", h.Produtos.OG)

	e.GET("/configuracoes/:chave", h.Configuracoes.Get)
	e.PUT("/configuracoes/:chave", h.Configuracoes.Set)

	// Contract PDFs, signatures and post images are served straight from
	// disk under the same paths the records store.
	e.Static("/uploads", cfg.UploadDir)
}
