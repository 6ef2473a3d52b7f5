package repository

//go:generate mockgen -source=benefit.go -destination=mocks/benefit.go -package=mocks

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/infrastructure/database/postgres"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

const benefitsTable = "benefits"

var ErrInvalidRecord = errors.New("registro de benefício inválido")

var benefitColumns = []string{
	"id",
	"name",
	"company_name",
	"company_website",
	"company_contact",
	"company_summary",
	"logo_url",
	"description",
	"category",
	"benefit_type",
	"redemption_link",
	"additional_info",
	"eligible_tiers",
	"coupon_code",
	"validity",
	"redemption_instructions",
	"is_active",
	"created_at",
	"updated_at",
}

type BenefitRepository interface {
	List(ctx context.Context) ([]*domain.AdminBenefit, error)
	ListActive(ctx context.Context) ([]*domain.AdminBenefit, error)
	GetByID(ctx context.Context, id string) (*domain.AdminBenefit, error)
	Create(ctx context.Context, benefit *domain.AdminBenefit) (*domain.AdminBenefit, error)
	Update(ctx context.Context, benefit *domain.AdminBenefit) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}

type benefitRepository struct {
	conn postgres.Queryer
}

func NewBenefitRepository(conn postgres.Queryer) BenefitRepository {
	return &benefitRepository{
		conn: conn,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBenefit(row rowScanner) (*domain.AdminBenefit, error) {
	var (
		b     domain.AdminBenefit
		tiers []string
	)

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.CompanyName,
		&b.CompanyWebsite,
		&b.CompanyContact,
		&b.CompanySummary,
		&b.LogoURL,
		&b.Description,
		&b.Category,
		&b.BenefitType,
		&b.RedemptionLink,
		&b.AdditionalInfo,
		pq.Array(&tiers),
		&b.CouponCode,
		&b.Validity,
		&b.RedemptionInstructions,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.EligibleTiers = make([]domain.TierCode, 0, len(tiers))
	for _, t := range tiers {
		b.EligibleTiers = append(b.EligibleTiers, domain.TierCode(t))
	}

	return &b, nil
}

func tierStrings(tiers []domain.TierCode) []string {
	out := make([]string, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, string(t))
	}
	return out
}

func validateRecord(b *domain.AdminBenefit) error {
	if fields := domain.Validate(b); !fields.Empty() {
		return errors.Wrapf(ErrInvalidRecord, "benefício %s: %v", b.ID, fields)
	}
	return nil
}

func listQuery(onlyActive bool) squirrel.SelectBuilder {
	query := squirrel.
		Select(benefitColumns...).
		From(benefitsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if onlyActive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	return query
}

func (r *benefitRepository) List(ctx context.Context) ([]*domain.AdminBenefit, error) {
	return r.list(ctx, listQuery(false))
}

func (r *benefitRepository) ListActive(ctx context.Context) ([]*domain.AdminBenefit, error) {
	return r.list(ctx, listQuery(true))
}

func (r *benefitRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*domain.AdminBenefit, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar benefícios")
	}
	defer rows.Close()

	benefits := []*domain.AdminBenefit{}
	for rows.Next() {
		b, err := scanBenefit(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler benefício")
		}

		if err := validateRecord(b); err != nil {
			logrus.WithError(err).WithField("benefit_id", b.ID).Warn("Benefício inválido ignorado na listagem")
			continue
		}

		benefits = append(benefits, b)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar benefícios")
	}

	return benefits, nil
}

// GetByID retorna nil, nil quando o benefício não existe
func (r *benefitRepository) GetByID(ctx context.Context, id string) (*domain.AdminBenefit, error) {
	sqlQuery, args, err := squirrel.
		Select(benefitColumns...).
		From(benefitsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	b, err := scanBenefit(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar benefício %s", id)
	}

	if err := validateRecord(b); err != nil {
		return nil, err
	}

	return b, nil
}

func (r *benefitRepository) Create(ctx context.Context, benefit *domain.AdminBenefit) (*domain.AdminBenefit, error) {
	if err := validateRecord(benefit); err != nil {
		return nil, err
	}

	sqlQuery, args, err := squirrel.
		Insert(benefitsTable).
		Columns(benefitColumns[:17]...).
		Values(
			benefit.ID,
			benefit.Name,
			benefit.CompanyName,
			benefit.CompanyWebsite,
			benefit.CompanyContact,
			benefit.CompanySummary,
			benefit.LogoURL,
			benefit.Description,
			benefit.Category,
			benefit.BenefitType,
			benefit.RedemptionLink,
			benefit.AdditionalInfo,
			pq.Array(tierStrings(benefit.EligibleTiers)),
			benefit.CouponCode,
			benefit.Validity,
			benefit.RedemptionInstructions,
			benefit.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	created := *benefit
	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao inserir benefício")
	}

	return &created, nil
}

// Update reescreve todas as colunas editáveis. created_at nunca é alterado.
func (r *benefitRepository) Update(ctx context.Context, benefit *domain.AdminBenefit) error {
	if err := validateRecord(benefit); err != nil {
		return err
	}

	sqlQuery, args, err := squirrel.
		Update(benefitsTable).
		SetMap(map[string]interface{}{
			"name":                    benefit.Name,
			"company_name":            benefit.CompanyName,
			"company_website":         benefit.CompanyWebsite,
			"company_contact":         benefit.CompanyContact,
			"company_summary":         benefit.CompanySummary,
			"logo_url":                benefit.LogoURL,
			"description":             benefit.Description,
			"category":                benefit.Category,
			"benefit_type":            benefit.BenefitType,
			"redemption_link":         benefit.RedemptionLink,
			"additional_info":         benefit.AdditionalInfo,
			"eligible_tiers":          pq.Array(tierStrings(benefit.EligibleTiers)),
			"coupon_code":             benefit.CouponCode,
			"validity":                benefit.Validity,
			"redemption_instructions": benefit.RedemptionInstructions,
			"is_active":               benefit.IsActive,
			"updated_at":              squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": benefit.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	return r.execAffectingOne(ctx, sqlQuery, args, "atualizar", benefit.ID)
}

func (r *benefitRepository) Delete(ctx context.Context, id string) error {
	sqlQuery, args, err := squirrel.
		Delete(benefitsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	return r.execAffectingOne(ctx, sqlQuery, args, "excluir", id)
}

func (r *benefitRepository) SetActive(ctx context.Context, id string, active bool) error {
	sqlQuery, args, err := squirrel.
		Update(benefitsTable).
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	return r.execAffectingOne(ctx, sqlQuery, args, "alterar status do", id)
}

func (r *benefitRepository) execAffectingOne(ctx context.Context, sqlQuery string, args []interface{}, action, id string) error {
	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return errors.Wrapf(err, "erro ao %s benefício %s", action, id)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "erro ao %s benefício %s", action, id)
	}
	if affected == 0 {
		return errors.Wrapf(sql.ErrNoRows, "erro ao %s benefício %s", action, id)
	}

	return nil
}
