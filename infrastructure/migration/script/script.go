// Script de migração: cria o schema e faz a carga inicial do clube de benefícios.
//
// Uso: ADMIN_EMAIL=... ADMIN_PASSWORD=... go run ./infrastructure/migration/script
package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/benefits-club-api/infrastructure/database/postgres"
	"github.com/vfg2006/benefits-club-api/infrastructure/repository"
	"github.com/vfg2006/benefits-club-api/internal/catalogdata"
	"github.com/vfg2006/benefits-club-api/internal/config"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating"
	"github.com/vfg2006/benefits-club-api/pkg/utils"
)

const migrationTimeout = 2 * time.Minute

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS benefits (
		id                      TEXT PRIMARY KEY,
		name                    VARCHAR(255) NOT NULL,
		company_name            VARCHAR(255) NOT NULL,
		company_website         TEXT,
		company_contact         VARCHAR(255),
		company_summary         TEXT,
		logo_url                TEXT,
		description             TEXT NOT NULL,
		category                VARCHAR(32) NOT NULL DEFAULT 'outro',
		benefit_type            VARCHAR(32) NOT NULL DEFAULT 'outro',
		redemption_link         TEXT,
		additional_info         TEXT,
		eligible_tiers          TEXT[] NOT NULL DEFAULT '{}',
		coupon_code             VARCHAR(64),
		validity                TEXT,
		redemption_instructions TEXT,
		is_active               BOOLEAN NOT NULL DEFAULT TRUE,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_benefits_active_created ON benefits (is_active, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		role       VARCHAR(32) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, role)
	)`,
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	data, err := catalogdata.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar catálogo estático")
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()

	err = conn.RunInTransaction(ctx, func(tx postgres.Queryer) error {
		if err := createSchema(ctx, tx); err != nil {
			return err
		}
		if err := seedBenefits(ctx, tx, data.Benefits); err != nil {
			return err
		}
		return seedAdmin(ctx, tx, viper.GetString("ADMIN_NAME"), viper.GetString("ADMIN_EMAIL"), viper.GetString("ADMIN_PASSWORD"))
	})
	if err != nil {
		logrus.WithError(err).Fatal("Migração falhou, nenhuma alteração foi aplicada")
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Migração concluída com sucesso")
}

func createSchema(ctx context.Context, tx postgres.Queryer) error {
	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "erro ao criar schema")
		}
	}
	logrus.Infof("Schema criado (%d comandos)", len(schema))
	return nil
}

// seedBenefits insere os benefícios estáticos que ainda não existem no banco
func seedBenefits(ctx context.Context, tx postgres.Queryer, benefits []domain.Benefit) error {
	repo := repository.NewBenefitRepository(tx)

	inserted, skipped := 0, 0
	for _, b := range benefits {
		existing, err := repo.GetByID(ctx, b.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			skipped++
			continue
		}

		record := b.ToAdminBenefit()
		if _, err := repo.Create(ctx, &record); err != nil {
			return errors.Wrapf(err, "erro ao inserir benefício %s", b.ID)
		}
		inserted++
	}

	logrus.WithFields(logrus.Fields{
		"inserted": inserted,
		"skipped":  skipped,
	}).Info("Carga de benefícios concluída")
	return nil
}

// seedAdmin cria (ou reaproveita) o usuário administrador inicial
func seedAdmin(ctx context.Context, tx postgres.Queryer, name, email, password string) error {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		logrus.Warn("ADMIN_EMAIL ou ADMIN_PASSWORD não informados, administrador não criado")
		return nil
	}
	if name == "" {
		name = "Administrador"
	}

	hash, err := authenticating.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "erro ao gerar hash da senha")
	}

	user, err := repository.NewUserRepository(tx).CreateUser(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	})
	if err != nil {
		return err
	}

	if err := repository.NewRoleRepository(tx).GrantRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		return err
	}

	logrus.WithField("user_id", user.ID).Info("Administrador inicial configurado")
	return nil
}
