package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
)

// ListBenefits aplica busca textual, segmento e tier sobre o catálogo público
func ListBenefits(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListBenefits")

		values := r.URL.Query()
		query := cataloging.Query{
			Text:    values.Get("q"),
			Segment: values.Get("segment"),
			Tier:    values.Get("tier"),
		}

		result, err := service.ListBenefits(r.Context(), query)
		if err != nil {
			handleError(w, r, err, "Erro ao listar benefícios")
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func ListSegments(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListSegments")

		segments, err := service.Segments(r.Context())
		if err != nil {
			handleError(w, r, err, "Erro ao listar segmentos")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"segments": segments,
		})
	}
}

func GetBenefit(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetBenefit")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		detail, err := service.GetBenefit(r.Context(), id)
		if err != nil {
			handleError(w, r, err, "Erro ao carregar benefício")
			return
		}

		writeJSON(w, r, http.StatusOK, detail)
	}
}

func ListTiers(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"tiers": service.Tiers(),
		})
	}
}

// FeaturedCompanies devolve a página do carrossel; páginas fora do intervalo dão a volta
func FeaturedCompanies(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 0
		if raw := r.URL.Query().Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeInvalidFormat(w, "Página inválida")
				return
			}
			page = parsed
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"tiers": service.FeaturedCompanies(page),
		})
	}
}

func ListFAQs(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"faqs": service.FAQs(),
		})
	}
}

func ListSessions(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"sessions": service.ExecutiveSessions(),
		})
	}
}

func GetSession(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		session, err := service.GetExecutiveSession(id)
		if err != nil {
			handleError(w, r, err, "Erro ao carregar sessão executiva")
			return
		}

		writeJSON(w, r, http.StatusOK, session)
	}
}
