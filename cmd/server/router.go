package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/config"
	docs "github.com/snnyvrz/shelfshare/apps/authors-api/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/mapper"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/repository"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type routerDeps struct {
	DB        *gorm.DB
	Log       zerolog.Logger
	Config    *config.Config
	StartTime time.Time
	Version   string
}

func newRouter(d routerDeps) *gin.Engine {
	e := gin.New()

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	e.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Log),
		middleware.Recovery(d.Log),
	)
	if d.Config.RateLimitRPS > 0 {
		e.Use(middleware.NewRateLimiter(d.Config.RateLimitRPS, d.Config.RateLimitBurst).Middleware())
	}

	docs.SwaggerInfo.BasePath = "/api"

	healthHandler := handler.NewHealthHandler(d.DB, d.Log, d.StartTime, d.Version)
	healthHandler.RegisterRoutes(e)

	api := e.Group("/api")
	{
		authorHandler := handler.NewAuthorHandler(
			repository.NewAuthorRepository(d.DB),
			logger.NewService(d.Log.With().Str("component", "authors").Logger()),
			mapper.New(),
		)
		authorHandler.RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e
}
