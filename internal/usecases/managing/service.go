// Package managing concentra as mutações da área administrativa sobre o
// cadastro de benefícios.
//
// Toda mutação termina com exatamente uma notificação de sucesso ou de falha,
// além de no máximo um aviso de falha no upload do logo. O erro do banco é
// registrado no log e nunca mostrado ao usuário.
package managing

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/infrastructure/cache"
	"github.com/vfg2006/benefits-club-api/infrastructure/repository"
	"github.com/vfg2006/benefits-club-api/infrastructure/storage"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
	"github.com/vfg2006/benefits-club-api/pkg/apiErrors"
	"github.com/vfg2006/benefits-club-api/pkg/utils"
)

const (
	titleSuccess = "Sucesso"
	titleError   = "Erro"

	defaultConfirmTTL = 5 * time.Minute
)

const (
	msgCreated      = "Benefício cadastrado com sucesso!"
	msgUpdated      = "Benefício atualizado com sucesso!"
	msgSaveFailed   = "Não foi possível salvar o benefício."
	msgDeleted      = "Benefício excluído com sucesso!"
	msgDeleteFailed = "Não foi possível excluir o benefício."
	msgActivated    = "Benefício ativado com sucesso!"
	msgDeactivated  = "Benefício desativado com sucesso!"
	msgToggleFailed = "Não foi possível alterar o status do benefício."
	msgListFailed   = "Não foi possível carregar os benefícios."
	msgLoadFailed   = "Não foi possível carregar o benefício."
	msgUploadFailed = "Não foi possível fazer upload do logo."
	confirmTitle    = "Confirmar exclusão"
	confirmMessage  = "Tem certeza que deseja excluir este benefício? Esta ação não pode ser desfeita."
)

// LogoFile é o arquivo de logo enviado junto com o formulário
type LogoFile struct {
	Filename string
	Content  io.Reader
}

// Outcome é o resultado de uma mutação bem sucedida
type Outcome struct {
	Benefit       *domain.AdminBenefit   `json:"benefit,omitempty"`
	Benefits      []*domain.AdminBenefit `json:"benefits,omitempty"`
	Notifications []domain.Notification  `json:"notifications"`
}

// DeleteConfirmation é o passo bloqueante antes da exclusão
type DeleteConfirmation struct {
	Token       string    `json:"token"`
	BenefitID   string    `json:"benefit_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Config struct {
	DeleteConfirmTTL time.Duration
}

type Manager interface {
	List(ctx context.Context, filter cataloging.AdminFilter) ([]*domain.AdminBenefit, error)
	Get(ctx context.Context, id string) (*domain.AdminBenefit, error)
	Create(ctx context.Context, input domain.BenefitInput, logo *LogoFile) (*Outcome, error)
	Update(ctx context.Context, id string, input domain.BenefitInput, logo *LogoFile) (*Outcome, error)
	RequestDelete(ctx context.Context, id string) (*DeleteConfirmation, error)
	Delete(ctx context.Context, id, confirmToken string) (*Outcome, error)
	ToggleActive(ctx context.Context, id string) (*Outcome, error)
}

type Service struct {
	repo          repository.BenefitRepository
	uploader      storage.Uploader
	confirmations cache.ConfirmationStore
	catalogCache  cache.CatalogCache
	cfg           Config
	now           func() time.Time
	newID         func() string
}

func NewService(
	repo repository.BenefitRepository,
	uploader storage.Uploader,
	confirmations cache.ConfirmationStore,
	catalogCache cache.CatalogCache,
	cfg Config,
) Manager {
	if cfg.DeleteConfirmTTL <= 0 {
		cfg.DeleteConfirmTTL = defaultConfirmTTL
	}
	if uploader == nil {
		uploader = storage.NewDisabledUploader()
	}

	return &Service{
		repo:          repo,
		uploader:      uploader,
		confirmations: confirmations,
		catalogCache:  catalogCache,
		cfg:           cfg,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// List devolve todos os registros do mais novo para o mais antigo, filtrados.
// A lista devolvida é sempre uma fatia nova.
func (s *Service) List(ctx context.Context, filter cataloging.AdminFilter) ([]*domain.AdminBenefit, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar benefícios")
		return nil, newBenefitError(ErrStore, apiErrors.ErrDatabaseOperation, "", domain.Failure(titleError, msgListFailed))
	}

	return cataloging.FilterAdmin(records, filter), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.AdminBenefit, error) {
	if id == "" {
		return nil, newBenefitError(ErrMissingID, apiErrors.ErrMissingRequiredData, "")
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Error("Erro ao carregar benefício")
		return nil, newBenefitError(ErrStore, apiErrors.ErrDatabaseOperation, "", domain.Failure(titleError, msgLoadFailed))
	}
	if record == nil {
		return nil, newBenefitError(ErrBenefitNotFound, apiErrors.ErrBenefitNotFound, id, domain.Failure(titleError, msgLoadFailed))
	}

	return record, nil
}

func validateInput(input domain.BenefitInput) (domain.BenefitInput, error) {
	input = input.Normalize()
	if fields := domain.Validate(input); !fields.Empty() {
		return input, &BenefitError{
			Err:    ErrValidation,
			Code:   apiErrors.ErrFieldValidation,
			Fields: fields,
		}
	}
	return input, nil
}

// uploadLogo nunca impede a gravação: em caso de falha devolve nil e o aviso
func (s *Service) uploadLogo(ctx context.Context, logo *LogoFile) (*string, *domain.Notification) {
	if logo == nil || logo.Content == nil {
		return nil, nil
	}

	url, err := s.uploader.Upload(ctx, logo.Filename, logo.Content)
	if err != nil {
		logrus.WithError(err).WithField("file_name", logo.Filename).Warn("Erro ao fazer upload do logo")
		warning := domain.Warning(titleError, msgUploadFailed)
		return nil, &warning
	}

	return &url, nil
}

func (s *Service) Create(ctx context.Context, input domain.BenefitInput, logo *LogoFile) (*Outcome, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	var notifications []domain.Notification

	logoURL, warning := s.uploadLogo(ctx, logo)
	if warning != nil {
		notifications = append(notifications, *warning)
	}

	record := &domain.AdminBenefit{ID: s.newID(), LogoURL: logoURL}
	input.ApplyTo(record)

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		logrus.WithError(err).WithField("company_name", record.CompanyName).Error("Erro ao cadastrar benefício")
		notifications = append(notifications, domain.Failure(titleError, msgSaveFailed))
		return nil, newBenefitError(ErrStore, apiErrors.ErrDatabaseOperation, "", notifications...)
	}

	s.invalidateCatalog(ctx)
	logrus.WithField("benefit_id", created.ID).Info("Benefício cadastrado")

	return &Outcome{
		Benefit:       created,
		Notifications: append(notifications, domain.Success(titleSuccess, msgCreated)),
	}, nil
}

// Update reescreve o registro inteiro. Sem um novo arquivo o logo atual é mantido.
func (s *Service) Update(ctx context.Context, id string, input domain.BenefitInput, logo *LogoFile) (*Outcome, error) {
	if id == "" {
		return nil, newBenefitError(ErrMissingID, apiErrors.ErrMissingRequiredData, "")
	}

	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Error("Erro ao carregar benefício para edição")
		return nil, newBenefitError(ErrStore, apiErrors.ErrDatabaseOperation, "", domain.Failure(titleError, msgSaveFailed))
	}
	if existing == nil {
		return nil, newBenefitError(ErrBenefitNotFound, apiErrors.ErrBenefitNotFound, id, domain.Failure(titleError, msgSaveFailed))
	}

	var notifications []domain.Notification

	logoURL, warning := s.uploadLogo(ctx, logo)
	if warning != nil {
		notifications = append(notifications, *warning)
	}

	record := *existing
	input.ApplyTo(&record)
	if logoURL != nil {
		record.LogoURL = logoURL
	}

	if err := s.repo.Update(ctx, &record); err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Error("Erro ao atualizar benefício")
		notifications = append(notifications, domain.Failure(titleError, msgSaveFailed))
		return nil, newBenefitError(ErrStore, apiErrors.ErrDatabaseOperation, "", notifications...)
	}

	s.invalidateCatalog(ctx)
	logrus.WithField("benefit_id", id).Info("Benefício atualizado")

	return &Outcome{
		Benefit:       &record,
		Notifications: append(notifications, domain.Success(titleSuccess, msgUpdated)),
	}, nil
}

// RequestDelete emite o token exigido por Delete
func (s *Service) RequestDelete(ctx context.Context, id string) (*DeleteConfirmation, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken()
	if err != nil {
		return nil, newBenefitError(err, apiErrors.ErrInternalServer, "", domain.Failure(titleError, msgDeleteFailed))
	}

	if err := s.confirmations.Save(ctx, token, record.ID, s.cfg.DeleteConfirmTTL); err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Error("Erro ao registrar confirmação de exclusão")
		return nil, newBenefitError(err, apiErrors.ErrCommunication, "", domain.Failure(titleError, msgDeleteFailed))
	}

	return &DeleteConfirmation{
		Token:       token,
		BenefitID:   record.ID,
		Title:       confirmTitle,
		Description: confirmMessage,
		ExpiresAt:   s.now().Add(s.cfg.DeleteConfirmTTL),
	}, nil
}

// Delete só exclui com um token de confirmação válido emitido para o mesmo id
func (s *Service) Delete(ctx context.Context, id, confirmToken string) (*Outcome, error) {
	if id == "" {
		return nil, newBenefitError(ErrMissingID, apiErrors.ErrMissingRequiredData, "")
	}
	if confirmToken == "" {
		return nil, newBenefitError(ErrDeleteNotConfirmed, apiErrors.ErrNotConfirmed, "")
	}

	ok, err := s.confirmations.Consume(ctx, confirmToken, id)
	if err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Error("Erro ao consultar confirmação de exclusão")
		return nil, newBenefitError(err, apiErrors.ErrCommunication, "", domain.Failure(titleError, msgDeleteFailed))
	}
	if !ok {
		return nil, newBenefitError(ErrDeleteNotConfirmed, apiErrors.ErrNotConfirmed, "token expirado ou de outro benefício")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Error("Erro ao excluir benefício")
		return nil, newBenefitError(ErrStore, apiErrors.ErrDatabaseOperation, "", domain.Failure(titleError, msgDeleteFailed))
	}

	s.invalidateCatalog(ctx)
	logrus.WithField("benefit_id", id).Info("Benefício excluído")

	return &Outcome{
		Notifications: []domain.Notification{domain.Success(titleSuccess, msgDeleted)},
	}, nil
}

// ToggleActive inverte is_active e relê a lista do banco
func (s *Service) ToggleActive(ctx context.Context, id string) (*Outcome, error) {
	if id == "" {
		return nil, newBenefitError(ErrMissingID, apiErrors.ErrMissingRequiredData, "")
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Error("Erro ao carregar benefício")
		return nil, newBenefitError(ErrStore, apiErrors.ErrDatabaseOperation, "", domain.Failure(titleError, msgToggleFailed))
	}
	if record == nil {
		return nil, newBenefitError(ErrBenefitNotFound, apiErrors.ErrBenefitNotFound, id, domain.Failure(titleError, msgToggleFailed))
	}

	active := !record.IsActive
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Error("Erro ao alterar status do benefício")
		return nil, newBenefitError(ErrStore, apiErrors.ErrDatabaseOperation, "", domain.Failure(titleError, msgToggleFailed))
	}

	s.invalidateCatalog(ctx)

	message := msgDeactivated
	if active {
		message = msgActivated
	}
	outcome := &Outcome{
		Notifications: []domain.Notification{domain.Success(titleSuccess, message)},
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		// A mutação já foi feita, o painel recarrega a lista depois
		logrus.WithError(err).Warn("Erro ao recarregar benefícios após alteração de status")
		return outcome, nil
	}
	outcome.Benefits = records

	return outcome, nil
}

func (s *Service) invalidateCatalog(ctx context.Context) {
	if s.catalogCache == nil {
		return
	}
	if err := s.catalogCache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		logrus.WithError(err).Warn("Erro ao invalidar cache do catálogo")
	}
}
