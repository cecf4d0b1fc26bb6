package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/database"
	"github.com/iliyamo/user-account-service/internal/handler"
	"github.com/iliyamo/user-account-service/internal/metrics"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/router"
	"github.com/iliyamo/user-account-service/internal/service"
)

func main() {
	cfg := config.Load() // load environment config once; immutable afterwards

	log.Println("connecting to document store...")
	db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("document store connect failed: %v", err)
	}
	if err := database.EnsureIndexes(db); err != nil {
		log.Fatalf("index creation failed: %v", err)
	}

	// Optional collaborators: a missing Redis disables the response cache,
	// a missing broker leaves events unpublished.  Neither stops startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}
	go queue.StartAccountConsumer()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	issuer := auth.NewIssuer(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	users := repository.NewUserRepo(db)
	svc := service.NewUserService(users, hasher, issuer, queue.PublishAccountEvent)
	h := handler.NewUserHandler(cfg, svc, collector)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	router.RegisterRoutes(e, h, issuer, config.LoadCacheConfig(), rdb, reg)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
