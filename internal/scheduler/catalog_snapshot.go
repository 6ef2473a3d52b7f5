package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/infrastructure/cache"
	"github.com/vfg2006/benefits-club-api/infrastructure/repository"
	"github.com/vfg2006/benefits-club-api/internal/config"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
)

const regenerateTimeout = time.Minute

// CatalogSnapshotConfig representa a configuração da regeneração do catálogo público
type CatalogSnapshotConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// CatalogSnapshotService regenera periodicamente o catálogo público a partir
// dos benefícios ativos do banco
type CatalogSnapshotService struct {
	scheduler           *gocron.Scheduler
	config              CatalogSnapshotConfig
	benefitRepo         repository.BenefitRepository
	catalogCache        cache.CatalogCache
	snapshot            *cataloging.Snapshot
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewCatalogSnapshotService(
	benefitRepo repository.BenefitRepository,
	catalogCache cache.CatalogCache,
	snapshot *cataloging.Snapshot,
	appConfig config.Catalog,
) *CatalogSnapshotService {
	snapshotConfig := CatalogSnapshotConfig{
		CronSchedule: appConfig.SnapshotCron,
		SyncEnabled:  appConfig.SnapshotEnabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": snapshotConfig.CronSchedule,
		"sync_enabled":  snapshotConfig.SyncEnabled,
	}).Info("Configuração da regeneração do catálogo carregada")

	return &CatalogSnapshotService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       snapshotConfig,
		benefitRepo:  benefitRepo,
		catalogCache: catalogCache,
		snapshot:     snapshot,
		now:          time.Now,
	}
}

// Start agenda a regeneração e roda uma primeira vez
func (s *CatalogSnapshotService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Regeneração do catálogo desabilitada por configuração, usando dados estáticos")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de regeneração do catálogo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.regenerate(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar regeneração do catálogo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		s.regenerate(ctx)
	}()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de regeneração do catálogo")
		s.scheduler.Stop()
	}()

	return nil
}

// regenerate ignora a chamada quando já existe uma regeneração em andamento
func (s *CatalogSnapshotService) regenerate(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Regeneração do catálogo já em andamento, ignorando")
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	err := s.Regenerate(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	if err != nil {
		s.lastSyncError = err.Error()
	} else {
		s.lastSyncError = ""
		s.lastSyncCompletedAt = s.now()
	}
	s.syncMutex.Unlock()

	return err == nil
}

// Regenerate publica os benefícios ativos. Em caso de falha o catálogo
// publicado anteriormente continua valendo.
func (s *CatalogSnapshotService) Regenerate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, regenerateTimeout)
	defer cancel()

	startTime := s.now()

	records, err := s.activeRecords(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao regenerar catálogo, mantendo versão anterior")
		return err
	}

	benefits := make([]domain.Benefit, 0, len(records))
	for _, r := range records {
		if r == nil || !r.IsActive {
			continue
		}
		benefits = append(benefits, r.ToCatalogBenefit())
	}

	s.snapshot.Replace(benefits, s.now())

	logrus.WithFields(logrus.Fields{
		"benefits": len(benefits),
		"duration": s.now().Sub(startTime).String(),
	}).Info("Catálogo regenerado")

	return nil
}

func (s *CatalogSnapshotService) activeRecords(ctx context.Context) ([]*domain.AdminBenefit, error) {
	if s.catalogCache != nil {
		cached, ok, err := s.catalogCache.Get(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao ler cache do catálogo, consultando o banco")
		} else if ok {
			return cached, nil
		}
	}

	records, err := s.benefitRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.catalogCache != nil {
		if err := s.catalogCache.Set(ctx, records); err != nil {
			logrus.WithError(err).Warn("Erro ao gravar cache do catálogo")
		}
	}

	return records, nil
}

// TriggerManualSync inicia manualmente uma regeneração do catálogo.
// Retorna false quando já existe uma em andamento.
func (s *CatalogSnapshotService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Regeneração do catálogo já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando regeneração manual do catálogo")
	go s.regenerate(context.Background())
	return true
}

// GetStatus retorna o status atual da regeneração
func (s *CatalogSnapshotService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"published_benefits":     s.snapshot.Len(),
		"published_at":           s.snapshot.GeneratedAt(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
