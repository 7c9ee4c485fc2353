package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/meutreino/backend/internal/config"
	"github.com/meutreino/backend/internal/handler"
	"github.com/meutreino/backend/internal/logger"
	"github.com/meutreino/backend/internal/middleware"
	"github.com/meutreino/backend/internal/queue"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/router"
	"github.com/meutreino/backend/internal/service"
	"github.com/meutreino/backend/internal/storage"
	"github.com/meutreino/backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env)

	var st store.Store
	if cfg.StoreConfigured() {
		client, err := store.New(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente do banco inválido")
		}
		st = client
	} else {
		log.Warn().Msg("credenciais do Supabase ausentes; chamadas ao banco retornarão erro de configuração")
		st = store.NotConfigured()
	}

	files, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("não foi possível preparar o diretório de uploads")
	}

	usuarios := repository.NewUsuarioRepo(st)
	alunos := repository.NewAlunoRepo(st)
	treinos := repository.NewTreinoRepo(st)
	progresso := repository.NewProgressoRepo(st)
	consultas := repository.NewConsultaRepo(st)
	contratoConfig := repository.NewContratoConfigRepo(st)
	contratosAdmin := repository.NewContratoAdminRepo(st)
	contratos := repository.NewContratoRepo(st)
	mensagens := repository.NewMensagemRepo(st)
	posts := repository.NewPostRepo(st)
	produtos := repository.NewProdutoRepo(st)
	configuracoes := repository.NewConfiguracaoRepo(st)

	notifier := service.NewNotifier(mensagens, log)

	h := router.Handlers{
		Auth:           handler.NewAuthHandler(cfg, usuarios, alunos),
		Usuarios:       handler.NewUsuarioHandler(usuarios, alunos),
		Alunos:         handler.NewAlunoHandler(usuarios, alunos, notifier),
		Professores:    handler.NewProfessorHandler(usuarios, contratosAdmin, notifier),
		Treinos:        handler.NewTreinoHandler(treinos, progresso, usuarios, notifier),
		Progresso:      handler.NewProgressoHandler(progresso),
		Consultas:      handler.NewConsultaHandler(consultas, usuarios),
		ContratoConfig: handler.NewContratoConfigHandler(contratoConfig),
		ContratosAdmin: handler.NewContratoAdminHandler(contratosAdmin),
		Contratos:      handler.NewContratoHandler(contratos, files),
		Mensagens:      handler.NewMensagemHandler(mensagens),
		Posts:          handler.NewPostHandler(posts, files),
		Produtos:       handler.NewProdutoHandler(&cfg, produtos),
		Configuracoes:  handler.NewConfiguracaoHandler(configuracoes),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("25M"))
	e.Use(middleware.RequestLogger(log))

	rl := config.LoadRateLimitConfig()
	if rl.Enabled {
		if rdb := config.NewRedisClient(); rdb != nil {
			e.Use(middleware.NewTokenBucket(rl, rdb))
		} else {
			log.Warn().Msg("Redis indisponível; limite de requisições desativado")
		}
	}

	router.Register(e, &cfg, h)

	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Warn().Err(err).Msg("consumidor de eventos encerrado")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("servidor iniciado")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("servidor encerrado")
	}
}
