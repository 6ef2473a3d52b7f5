package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/infrastructure/cache"
	"github.com/vfg2006/benefits-club-api/infrastructure/database/postgres"
	"github.com/vfg2006/benefits-club-api/infrastructure/mailer"
	"github.com/vfg2006/benefits-club-api/infrastructure/repository"
	"github.com/vfg2006/benefits-club-api/infrastructure/storage"
	"github.com/vfg2006/benefits-club-api/internal/api"
	"github.com/vfg2006/benefits-club-api/internal/catalogdata"
	"github.com/vfg2006/benefits-club-api/internal/config"
	"github.com/vfg2006/benefits-club-api/internal/scheduler"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authorizing"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
	"github.com/vfg2006/benefits-club-api/internal/usecases/managing"
	"github.com/vfg2006/benefits-club-api/internal/usecases/requesting"
	"github.com/vfg2006/benefits-club-api/pkg/log"
)

// stores agrupa os armazenamentos efêmeros: redis quando habilitado, memória caso contrário
type stores struct {
	catalog       cache.CatalogCache
	confirmations cache.ConfirmationStore
	revocations   cache.RevocationStore
	close         func()
}

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	log.SetEnvironment(cfg.App.Env)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	data, err := catalogdata.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar catálogo estático")
	}

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	st := newStores(ctx, cfg)
	defer st.close()

	benefitRepo := repository.NewBenefitRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	roleRepo := repository.NewRoleRepository(pgConn)

	// O catálogo público começa com os dados embutidos
	snapshot := cataloging.NewSnapshot(data.Benefits)

	catalogService, err := cataloging.NewService(snapshot, data, cfg.Catalog.FeaturedPageSize)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar o catálogo")
	}

	leads := mailer.NewLeadNotifier(newMailSender(cfg.Mailer), cfg.Mailer.LeadRecipients, true)

	authenticator := authenticating.NewService(userRepo, roleRepo, st.revocations, cfg.Auth)
	gate := authorizing.NewGate(authenticator, st.revocations, cfg.Auth)

	manager := managing.NewService(
		benefitRepo,
		newUploader(cfg.Cloudinary),
		st.confirmations,
		st.catalog,
		managing.Config{DeleteConfirmTTL: cfg.Catalog.DeleteConfirmTTL},
	)

	snapshotService := scheduler.NewCatalogSnapshotService(benefitRepo, st.catalog, snapshot, cfg.Catalog)
	if err := snapshotService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de regeneração do catálogo")
	} else {
		logrus.Info("Agendador de regeneração do catálogo iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Catalog:       catalogService,
		Leads:         leads,
		Contact:       requesting.NewContactService(leads),
		Authenticator: authenticator,
		Gate:          gate,
		Manager:       manager,
		Snapshots:     snapshotService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

func newStores(ctx context.Context, cfg *config.Config) stores {
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err == nil {
			logrus.WithField("addr", cfg.Redis.Addr).Info("Conexão com Redis estabelecida com sucesso")
			return stores{
				catalog:       cache.NewRedisCatalogCache(client, cfg.Catalog.CacheTTL),
				confirmations: cache.NewRedisConfirmationStore(client),
				revocations:   cache.NewRedisRevocationStore(client),
				close:         func() { _ = client.Close() },
			}
		}
		logrus.WithError(err).Warn("Redis indisponível, usando armazenamento em memória")
	}

	return stores{
		catalog:       cache.NewMemoryCatalogCache(cfg.Catalog.CacheTTL),
		confirmations: cache.NewMemoryConfirmationStore(),
		revocations:   cache.NewMemoryRevocationStore(),
		close:         func() {},
	}
}

func newUploader(cfg config.Cloudinary) storage.Uploader {
	if !cfg.Enabled() {
		logrus.Warn("Cloudinary não configurado, upload de logos desabilitado")
		return storage.NewDisabledUploader()
	}

	uploader, err := storage.NewCloudinaryUploader(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao iniciar Cloudinary, upload de logos desabilitado")
		return storage.NewDisabledUploader()
	}

	return uploader
}

func newMailSender(cfg config.Mailer) mailer.Sender {
	if cfg.ResendAPIKey == "" {
		logrus.Warn("RESEND_API_KEY não configurada, solicitações serão apenas registradas no log")
		return mailer.LogSender{}
	}
	return mailer.NewResendSender(cfg.ResendAPIKey, cfg.From)
}
