package handler

import (
	"errors"
	"mime"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
	"github.com/vfg2006/benefits-club-api/internal/usecases/managing"
	"github.com/vfg2006/benefits-club-api/pkg/apiErrors"
)

const (
	HeaderConfirmToken = "X-Confirm-Token"

	// limite do logo mais folga para o payload e os cabeçalhos do multipart
	maxLogoSize     = 5 << 20
	maxFormSize     = maxLogoSize + 1<<20
	multipartMemory = 1 << 20
)

// SnapshotRunner é a regeneração do catálogo público acionada pelo painel
type SnapshotRunner interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

func ListAdminBenefits(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListAdminBenefits")

		values := r.URL.Query()
		filter := cataloging.AdminFilter{
			Text:     values.Get("q"),
			Category: values.Get("category"),
			Status:   cataloging.StatusFilter(values.Get("status")),
		}

		benefits, err := service.List(r.Context(), filter)
		if err != nil {
			handleError(w, r, err, "Erro ao listar benefícios")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"benefits": benefits,
			"total":    len(benefits),
		})
	}
}

func GetAdminBenefit(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetAdminBenefit")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		benefit, err := service.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err, "Erro ao carregar benefício")
			return
		}

		writeJSON(w, r, http.StatusOK, benefit)
	}
}

// decodeBenefitForm aceita JSON puro ou multipart com o campo "payload" e o arquivo "logo".
// O fechamento devolvido deve ser chamado ao fim da requisição.
func decodeBenefitForm(w http.ResponseWriter, r *http.Request) (domain.BenefitInput, *managing.LogoFile, func(), error) {
	var input domain.BenefitInput
	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return input, nil, noop, err
		}
		return input, nil, noop, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return input, nil, noop, err
	}

	if err := json.UnmarshalFromString(r.FormValue("payload"), &input); err != nil {
		return input, nil, noop, err
	}

	file, header, err := r.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) {
		return input, nil, noop, nil
	}
	if err != nil {
		return input, nil, noop, err
	}
	if header.Size > maxLogoSize {
		_ = file.Close()
		return input, nil, noop, &http.MaxBytesError{Limit: maxLogoSize}
	}

	logo := &managing.LogoFile{Filename: header.Filename, Content: file}
	return input, logo, func() { _ = file.Close() }, nil
}

func writeFormError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logrus.WithField("limit", tooLarge.Limit).Warn("Formulário de benefício acima do limite")
		apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "O logo deve ter no máximo 5 MB", nil)
		return
	}
	logrus.WithError(err).Warn("Formulário de benefício inválido")
	writeInvalidRequest(w)
}

func CreateAdminBenefit(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateAdminBenefit")

		input, logo, closeLogo, err := decodeBenefitForm(w, r)
		defer closeLogo()
		if err != nil {
			writeFormError(w, err)
			return
		}

		outcome, err := service.Create(r.Context(), input, logo)
		if err != nil {
			handleError(w, r, err, "Erro ao cadastrar benefício")
			return
		}

		writeJSON(w, r, http.StatusCreated, outcome)
	}
}

func UpdateAdminBenefit(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateAdminBenefit")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		input, logo, closeLogo, err := decodeBenefitForm(w, r)
		defer closeLogo()
		if err != nil {
			writeFormError(w, err)
			return
		}

		outcome, err := service.Update(r.Context(), id, input, logo)
		if err != nil {
			handleError(w, r, err, "Erro ao atualizar benefício")
			return
		}

		writeJSON(w, r, http.StatusOK, outcome)
	}
}

func RequestBenefitDeletion(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RequestBenefitDeletion")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		confirmation, err := service.RequestDelete(r.Context(), id)
		if err != nil {
			handleError(w, r, err, "Erro ao preparar exclusão")
			return
		}

		writeJSON(w, r, http.StatusOK, confirmation)
	}
}

// DeleteAdminBenefit exige o token de confirmação no header X-Confirm-Token
func DeleteAdminBenefit(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteAdminBenefit")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		outcome, err := service.Delete(r.Context(), id, r.Header.Get(HeaderConfirmToken))
		if err != nil {
			handleError(w, r, err, "Erro ao excluir benefício")
			return
		}

		writeJSON(w, r, http.StatusOK, outcome)
	}
}

func ToggleAdminBenefit(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ToggleAdminBenefit")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		outcome, err := service.ToggleActive(r.Context(), id)
		if err != nil {
			handleError(w, r, err, "Erro ao alterar status do benefício")
			return
		}

		writeJSON(w, r, http.StatusOK, outcome)
	}
}

func RunCatalogSnapshot(runner SnapshotRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCatalogSnapshot")

		if runner == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Regeneração do catálogo não disponível", nil)
			return
		}

		if !runner.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidState, "Regeneração do catálogo já em andamento", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Regeneração do catálogo iniciada com sucesso",
		})
	}
}

func GetCatalogSnapshotStatus(runner SnapshotRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if runner == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Regeneração do catálogo não disponível", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, runner.GetStatus())
	}
}
