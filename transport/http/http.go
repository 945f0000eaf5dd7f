package http

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minihotel/config"
	"minihotel/infras/postgres"
	"minihotel/shared/constant"
	"minihotel/transport/http/middleware"
	"minihotel/transport/http/response"
	"minihotel/transport/http/router"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config *config.Config
	Router router.Router
	App    middleware.AppMiddleware
	DB     *postgres.Connection
	State  ServerState

	mux *chi.Mux
}

func New(cfg *config.Config, r router.Router, app middleware.AppMiddleware, db *postgres.Connection) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
		App:    app,
		DB:     db,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	address := net.JoinHostPort("0.0.0.0", h.Config.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           h.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	h.setupGracefulShutdown(server)

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func (h *HTTP) setup() {
	h.mux = chi.NewRouter()
	h.mux.Use(chiMiddleware.Recoverer)
	h.mux.Use(h.App.Tracing)
	h.mux.Use(h.App.RateLimit)

	if h.Config.App.CORS.Enable {
		h.setupCORS()
	}

	h.mux.Get("/health", h.HealthCheck)
	h.Router.SetupRoutes(h.mux)

	h.State = ServerStateReady
}

func (h *HTTP) setupCORS() {
	corsConfig := h.Config.App.CORS

	h.mux.Use(cors.Handler(cors.Options{
		AllowCredentials: corsConfig.AllowCredentials,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedOrigins:   corsConfig.AllowedOrigins,
		MaxAge:           corsConfig.MaxAgeSeconds,
	}))
}

// HealthCheck pings the write database. During the shutdown grace period it
// reports unavailable so load balancers drain the instance.
func (h *HTTP) HealthCheck(writer http.ResponseWriter, request *http.Request) {
	if h.State > ServerStateReady {
		response.WithPreparingShutdown(writer)

		return
	}

	if err := h.DB.Write.PingContext(request.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		response.WithUnhealthy(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}

func (h *HTTP) setupGracefulShutdown(server *http.Server) {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh, server)
}

func (h *HTTP) respondToSigterm(done chan os.Signal, server *http.Server) {
	<-done

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env != constant.ServerEnvDevelopment {
		log.Info().Msg("Received SIGTERM.")
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

		h.State = ServerStateInGracePeriod

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

		log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

		h.State = ServerStateInCleanupPeriod
	} else {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
