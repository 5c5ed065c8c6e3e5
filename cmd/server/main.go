package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/feierapp/feierapp-api/internal/config"
	"github.com/feierapp/feierapp-api/internal/database"
	"github.com/feierapp/feierapp-api/internal/handler"
	"github.com/feierapp/feierapp-api/internal/logger"
	"github.com/feierapp/feierapp-api/internal/middleware"
	"github.com/feierapp/feierapp-api/internal/queue"
	"github.com/feierapp/feierapp-api/internal/repository"
	"github.com/feierapp/feierapp-api/internal/router"
	"github.com/feierapp/feierapp-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env, "server")

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	eventRepo := repository.NewEventRepo(db)
	guestRepo := repository.NewGuestRepo(db)
	invitationRepo := repository.NewInvitationRepo(db)
	contributionRepo := repository.NewContributionRepo(db)
	offerRepo := repository.NewRideOfferRepo(db)
	requestRepo := repository.NewRideRequestRepo(db)
	matchRepo := repository.NewRideMatchRepo(db)

	publisher := service.NewRabbitPublisher(queue.BrokerURL(), logger.New(cfg.Env, "publisher"))

	eventSvc := service.NewEventService(eventRepo, guestRepo)
	guestSvc := service.NewGuestService(guestRepo, eventRepo, invitationRepo, contributionRepo, logger.New(cfg.Env, "guests"))
	contributionSvc := service.NewContributionService(contributionRepo, guestRepo)
	rideSvc := service.NewRideService(db, eventRepo, guestRepo, offerRepo, requestRepo, matchRepo)
	matchSvc := service.NewMatchService(db, eventRepo, guestRepo, offerRepo, requestRepo, matchRepo, publisher, logger.New(cfg.Env, "matches"))

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	hlog := logger.New(cfg.Env, "http")
	router.RegisterRoutes(e)
	router.RegisterDirectory(e,
		handler.NewEventHandler(eventSvc, hlog),
		handler.NewGuestHandler(guestSvc, hlog),
		handler.NewContributionHandler(contributionSvc, hlog),
		cacheMW, limitMW,
	)
	router.RegisterRides(e,
		handler.NewRideHandler(rideSvc, hlog),
		handler.NewMatchHandler(matchSvc, hlog),
		cacheMW, limitMW,
	)

	// Background consumer appending confirmed matches to logs/rides.log.
	go func() {
		if err := queue.StartMatchConsumer(); err != nil {
			log.Error().Err(err).Msg("match consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
