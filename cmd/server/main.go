package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/forinda/contentapi/file"
	"github.com/forinda/contentapi/modules/articles"
	"github.com/forinda/contentapi/modules/auth"
	"github.com/forinda/contentapi/modules/categories"
	"github.com/forinda/contentapi/modules/collections"
	"github.com/forinda/contentapi/modules/files"
	"github.com/forinda/contentapi/modules/health"
	"github.com/forinda/contentapi/pkg/clientip"
	"github.com/forinda/contentapi/pkg/config"
	"github.com/forinda/contentapi/pkg/httpserver"
	"github.com/forinda/contentapi/pkg/jwt"
	"github.com/forinda/contentapi/pkg/logger"
	"github.com/forinda/contentapi/pkg/mongo"
	"github.com/forinda/contentapi/pkg/ratelimit"
	"github.com/forinda/contentapi/pkg/requestid"
)

type appConfig struct {
	LogLevel   slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  logger.Format `env:"LOG_FORMAT" envDefault:"json"`
	Storage    string        `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadsDir string        `env:"UPLOADS_DIR" envDefault:"./uploads"`
	UploadsURL string        `env:"UPLOADS_URL" envDefault:"/uploads"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		appCfg    appConfig
		mongoCfg  mongo.Config
		jwtCfg    jwt.Config
		serverCfg httpserver.Config
		s3Cfg     file.S3Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&jwtCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&s3Cfg)

	log := logger.New(
		logger.WithLevel(appCfg.LogLevel),
		logger.WithFormat(appCfg.LogFormat),
		logger.WithAttrs(slog.String("service", "contentapi")),
		logger.WithContextExtractors(requestid.LogAttr),
	)

	if err := run(ctx, appCfg, mongoCfg, jwtCfg, serverCfg, s3Cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	appCfg appConfig,
	mongoCfg mongo.Config,
	jwtCfg jwt.Config,
	serverCfg httpserver.Config,
	s3Cfg file.S3Config,
	log *slog.Logger,
) error {
	client, err := mongo.Connect(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(mongoCfg.Database)

	jwtService, err := jwt.New(jwtCfg)
	if err != nil {
		return err
	}

	storage, err := newStorage(ctx, appCfg, s3Cfg)
	if err != nil {
		return err
	}

	// Login and register share one per-address bucket.
	authLimiter, err := ratelimit.New(ratelimit.Config{Capacity: 10, Refill: 10, Interval: time.Minute})
	if err != nil {
		return err
	}
	defer authLimiter.Close()

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(chimiddleware.Recoverer)

	r.Mount("/health", health.Router(map[string]health.Check{
		"mongodb": mongo.Healthcheck(client),
	}))

	r.Route("/api", func(r chi.Router) {
		r.With(ratelimit.Middleware(authLimiter, ratelimit.ByClientIP)).
			Mount("/auth", auth.Router(auth.NewRepository(db), jwtService, log))
		r.Mount("/articles", articles.Router(articles.NewRepository(db), jwtService, log))
		r.Mount("/categories", categories.Router(categories.NewRepository(db), jwtService, log))
		r.Mount("/collections", collections.Router(collections.NewRepository(db), jwtService, log))
		r.Mount("/files", files.Router(files.NewRepository(db), storage, jwtService, log))
	})

	if appCfg.Storage == "local" {
		fs := http.StripPrefix(appCfg.UploadsURL, http.FileServer(http.Dir(appCfg.UploadsDir)))
		r.Get(appCfg.UploadsURL+"/*", fs.ServeHTTP)
	}

	log.InfoContext(ctx, "starting server", "addr", serverCfg.Addr, "storage", appCfg.Storage)
	return httpserver.Run(ctx, serverCfg, r, log)
}

func newStorage(ctx context.Context, appCfg appConfig, s3Cfg file.S3Config) (file.Storage, error) {
	if appCfg.Storage == "s3" {
		return file.NewS3Storage(ctx, s3Cfg)
	}
	return file.NewLocalStorage(appCfg.UploadsDir, appCfg.UploadsURL)
}
