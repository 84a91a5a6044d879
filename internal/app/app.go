package app

import (
	"net/http"

	"gorm.io/gorm"

	"listings-api/internal/config"
	"listings-api/internal/db"
	proposaldomain "listings-api/internal/domain/proposal"
	relationdomain "listings-api/internal/domain/relation"
	visitdomain "listings-api/internal/domain/visit"
	"listings-api/internal/identity"
	propertyrepo "listings-api/internal/repository/postgres/property"
	proposalrepo "listings-api/internal/repository/postgres/proposal"
	relationrepo "listings-api/internal/repository/postgres/relation"
	visitrepo "listings-api/internal/repository/postgres/visit"
	"listings-api/internal/transport/httpserver"
	"listings-api/internal/transport/httpserver/handler"
	"listings-api/internal/transport/httpserver/middleware"
	"listings-api/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	properties := propertyrepo.NewPostgres(dbConn)
	visits := visitdomain.NewService(visitrepo.NewPostgres(dbConn), properties)
	proposals := proposaldomain.NewService(proposalrepo.NewPostgres(dbConn), properties)
	relations := relationdomain.NewService(relationrepo.NewPostgres(dbConn))

	log.Info("app: initializing identity client", "base_url", cfg.Identity.BaseURL)
	identityClient := identity.NewClient(cfg.Identity, log)

	handlers := handler.New(visits, proposals, relations, properties, identityClient, log)
	auth := middleware.NewAuth(identityClient, log)

	log.Info("app: initializing http server")
	router := httpserver.NewRouter(cfg, handlers, auth, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
