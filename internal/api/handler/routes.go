package handler

import (
	"net/http"

	"github.com/vfg2006/bulksheet-generator/internal/api/handler/router"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/authenticating"
	"github.com/vfg2006/bulksheet-generator/pkg/middleware"
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

// Authentication expõe o login de operadores apenas com a autenticação habilitada
func Authentication(authenticator authenticating.Authenticator, authEnabled bool) []router.Route {
	if !authEnabled {
		return nil
	}
	return []router.Route{
		{
			Path:    "/v1/auth/login",
			Method:  http.MethodPost,
			Handler: Login(authenticator),
		},
	}
}

func Bulksheets(services BulksheetServices, authEnabled bool) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/bulksheets",
			Method:      http.MethodPost,
			Handler:     GenerateBulksheet(services),
			Middlewares: scoped(authEnabled, domain.ScopeUpload),
		},
		{
			Path:        "/v1/surveys/validate",
			Method:      http.MethodPost,
			Handler:     ValidateSurvey(services),
			Middlewares: scoped(authEnabled, domain.ScopeUpload),
		},
	}
}

func Inbox(sweeper InboxSweeper, authEnabled bool) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/inbox/run",
			Method:      http.MethodPost,
			Handler:     RunInboxSweep(sweeper),
			Middlewares: scoped(authEnabled, domain.ScopeInbox),
		},
		{
			Path:        "/v1/inbox/status",
			Method:      http.MethodGet,
			Handler:     GetInboxStatus(sweeper),
			Middlewares: scoped(authEnabled, domain.ScopeInbox),
		},
	}
}

// scoped exige o escopo apenas quando a autenticação está habilitada
func scoped(authEnabled bool, scope string) []func(http.Handler) http.Handler {
	if !authEnabled {
		return nil
	}
	return []func(http.Handler) http.Handler{middleware.RequireScope(scope)}
}
