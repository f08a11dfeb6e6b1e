// README: Entry point; loads config, wires services, starts the HTTP server
// and the live update hub.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antar/internal/config"
	httptransport "antar/internal/http"
	"antar/internal/infra"
	"antar/internal/logging"
	"antar/internal/maps"
	"antar/internal/modules/auth"
	"antar/internal/modules/chat"
	"antar/internal/modules/location"
	"antar/internal/modules/match"
	"antar/internal/modules/notification"
	"antar/internal/modules/pricing"
	"antar/internal/modules/trip"
	"antar/internal/modules/user"
	"antar/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	userStore := user.NewStore(dbPool)
	userSvc := user.NewService(userStore)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	otps := auth.NewRedisOTPCache(redisClient)
	authSvc := auth.NewService(userStore, tokens, otps, cfg.Auth.OTPExpiry, logger)

	notificationStore := notification.NewStore(dbPool)
	notificationSvc := notification.NewService(notificationStore)

	tripStore := trip.NewStore(dbPool)
	matchStore := match.NewStore(dbPool)

	engine := match.NewEngine(tripStore, userSvc, matchStore, notificationSvc, cfg.Matching, logger)
	tripSvc := trip.NewService(tripStore, engine, logger)
	matchSvc := match.NewService(matchStore, tripStore)

	chatStore := chat.NewStore(dbPool)
	chatSvc := chat.NewService(chatStore)

	hub := ws.NewHub(logger)
	go hub.Run()

	locationStore := location.NewStore(dbPool)
	geoIndex := location.NewRedisGeoIndex(redisClient)
	locationSvc := location.NewService(locationStore, userStore, geoIndex, hub, logger)

	pricingSvc := pricing.NewService(pricing.NewStore(dbPool))

	var geocoding *maps.GeocodingService
	var routes *maps.RouteService
	if cfg.Maps.APIKey != "" {
		geocoding, err = maps.NewGeocodingService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		routes, err = maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	}

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Auth:          authSvc,
		Users:         userSvc,
		Trips:         tripSvc,
		Matches:       matchSvc,
		Matcher:       engine,
		Chat:          chatSvc,
		Notifications: notificationSvc,
		Locations:     locationSvc,
		Pricing:       pricingSvc,
		Geocoding:     geocoding,
		Routes:        routes,
		Hub:           hub,
		Logger:        logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("server starting", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
