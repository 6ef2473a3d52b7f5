package handler

import (
	"net/http"

	"github.com/vfg2006/benefits-club-api/internal/api/handler/router"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authorizing"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
	"github.com/vfg2006/benefits-club-api/internal/usecases/managing"
	"github.com/vfg2006/benefits-club-api/internal/usecases/requesting"
	"github.com/vfg2006/benefits-club-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Catalog(service cataloging.CatalogService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/catalog/benefits",
			Method:  http.MethodGet,
			Handler: ListBenefits(service),
		},
		{
			Path:    "/v1/catalog/segments",
			Method:  http.MethodGet,
			Handler: ListSegments(service),
		},
		{
			Path:    "/v1/catalog/benefits/:id",
			Method:  http.MethodGet,
			Handler: GetBenefit(service),
		},
		{
			Path:    "/v1/tiers",
			Method:  http.MethodGet,
			Handler: ListTiers(service),
		},
		{
			Path:    "/v1/tiers/featured",
			Method:  http.MethodGet,
			Handler: FeaturedCompanies(service),
		},
		{
			Path:    "/v1/faqs",
			Method:  http.MethodGet,
			Handler: ListFAQs(service),
		},
		{
			Path:    "/v1/sessions",
			Method:  http.MethodGet,
			Handler: ListSessions(service),
		},
		{
			Path:    "/v1/sessions/:id",
			Method:  http.MethodGet,
			Handler: GetSession(service),
		},
	}
}

func Requests(services RequestServices, contact requesting.Contacter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/catalog/benefits/:id/request",
			Method:  http.MethodPost,
			Handler: RequestBenefit(services),
		},
		{
			Path:    "/v1/catalog/benefits/:id/coupon",
			Method:  http.MethodPost,
			Handler: CopyCoupon(services),
		},
		{
			Path:    "/v1/sessions/:id/request",
			Method:  http.MethodPost,
			Handler: RequestSession(services),
		},
		{
			Path:    "/v1/contact",
			Method:  http.MethodPost,
			Handler: SubmitContact(contact),
		},
	}
}

func Authentication(service authenticating.Authenticator, gate authorizing.Gate) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/logout",
			Method:  http.MethodPost,
			Handler: Logout(service),
		},
		{
			Path:    "/v1/admin/session",
			Method:  http.MethodPost,
			Handler: AdminSession(gate),
		},
	}
}

// AdminBenefits exige o token emitido por /v1/admin/session em todas as rotas
func AdminBenefits(service managing.Manager, snapshots SnapshotRunner, gate authorizing.Gate) []router.Route {
	adminOnly := []func(http.Handler) http.Handler{middleware.AdminView(gate), middleware.AdminOnly()}

	return []router.Route{
		{
			Path:        "/v1/admin/benefits",
			Method:      http.MethodGet,
			Handler:     ListAdminBenefits(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/admin/benefits",
			Method:      http.MethodPost,
			Handler:     CreateAdminBenefit(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/admin/benefits/:id",
			Method:      http.MethodGet,
			Handler:     GetAdminBenefit(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/admin/benefits/:id",
			Method:      http.MethodPut,
			Handler:     UpdateAdminBenefit(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/admin/benefits/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAdminBenefit(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/admin/benefits/:id/delete-confirmation",
			Method:      http.MethodPost,
			Handler:     RequestBenefitDeletion(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/admin/benefits/:id/active",
			Method:      http.MethodPatch,
			Handler:     ToggleAdminBenefit(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/admin/catalog/snapshot",
			Method:      http.MethodPost,
			Handler:     RunCatalogSnapshot(snapshots),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/admin/catalog/snapshot",
			Method:      http.MethodGet,
			Handler:     GetCatalogSnapshotStatus(snapshots),
			Middlewares: adminOnly,
		},
	}
}
