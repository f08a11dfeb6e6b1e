// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"antar/internal/http/handlers"
	"antar/internal/http/middleware"
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

type RouterDeps struct {
	Auth          *auth.Service
	Users         *user.Service
	Trips         *trip.Service
	Matches       *match.Service
	Matcher       handlers.MatchRunner
	Chat          *chat.Service
	Notifications *notification.Service
	Locations     *location.Service
	Pricing       *pricing.Service
	Geocoding     *maps.GeocodingService
	Routes        *maps.RouteService
	Hub           *ws.Hub
	Logger        *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger), middleware.Logging(deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.Auth)
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/otp/request", authHandler.RequestOTP)
	r.POST("/api/auth/otp/verify", authHandler.VerifyOTP)

	api := r.Group("/api", middleware.Auth(deps.Auth))

	userHandler := handlers.NewUserHandler(deps.Users)
	api.GET("/users/me", userHandler.Me)
	api.PATCH("/users/me", userHandler.UpdateMe)

	tripHandler := handlers.NewTripHandler(deps.Trips, deps.Pricing)
	api.POST("/trips", tripHandler.Create)
	api.GET("/trips", tripHandler.List)
	api.GET("/trips/:id", tripHandler.Get)
	api.PATCH("/trips/:id", tripHandler.Update)
	api.DELETE("/trips/:id", tripHandler.Cancel)
	api.GET("/trips/:id/fare", tripHandler.SuggestFare)

	matchHandler := handlers.NewMatchHandler(deps.Matches, deps.Matcher)
	api.GET("/trips/:id/matches", matchHandler.ListForTrip)
	api.POST("/trips/:id/rematch", matchHandler.Rematch)
	api.PATCH("/matches/:id", matchHandler.SetStatus)

	chatHandler := handlers.NewChatHandler(deps.Chat)
	api.POST("/trips/:id/messages", chatHandler.Send)
	api.GET("/trips/:id/messages", chatHandler.History)

	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)
	api.GET("/notifications", notificationHandler.List)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead)
	api.POST("/notifications/read_all", notificationHandler.MarkAllRead)

	locationHandler := handlers.NewLocationHandler(deps.Locations)
	api.PUT("/location", locationHandler.Update)
	api.GET("/location/history", locationHandler.History)
	api.GET("/location/nearby", locationHandler.Nearby)

	geoHandler := handlers.NewGeoHandler(deps.Geocoding, deps.Routes)
	api.GET("/geocode", geoHandler.Geocode)
	api.POST("/geocode/reverse", geoHandler.ReverseGeocode)
	api.POST("/geocode/route", geoHandler.RouteEstimate)

	if deps.Hub != nil {
		r.GET("/ws/location/:user_id", func(c *gin.Context) {
			if err := deps.Hub.Serve(c.Writer, c.Request, c.Param("user_id")); err != nil {
				deps.Logger.Warn("ws upgrade failed", "error", err)
			}
		})
	}

	return r
}
