package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/api/handler"
	"github.com/vfg2006/benefits-club-api/internal/api/handler/router"
	"github.com/vfg2006/benefits-club-api/internal/config"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authorizing"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
	"github.com/vfg2006/benefits-club-api/internal/usecases/managing"
	"github.com/vfg2006/benefits-club-api/internal/usecases/requesting"
	"github.com/vfg2006/benefits-club-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Services reúne os casos de uso expostos pela API
type Services struct {
	Catalog       cataloging.CatalogService
	Leads         requesting.LeadSink
	Contact       requesting.Contacter
	Authenticator authenticating.Authenticator
	Gate          authorizing.Gate
	Manager       managing.Manager
	Snapshots     handler.SnapshotRunner
}

// NewHandler monta o roteador com a cadeia global de middlewares
func NewHandler(cfg *config.Config, services Services) http.Handler {
	requestServices := handler.RequestServices{
		Catalog: services.Catalog,
		Leads:   services.Leads,
		Config: requesting.Config{
			LeadCapture:       cfg.Catalog.LeadCapture,
			RedirectDelay:     cfg.Catalog.RedirectDelay,
			CouponAckDuration: cfg.Catalog.CouponAckDuration,
		},
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Catalog(services.Catalog)...),
		router.WithRoutes(handler.Requests(requestServices, services.Contact)...),
		router.WithRoutes(handler.Authentication(services.Authenticator, services.Gate)...),
		router.WithRoutes(handler.AdminBenefits(services.Manager, services.Snapshots, services.Gate)...),
	)

	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(),
		middleware.LogPanicMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
