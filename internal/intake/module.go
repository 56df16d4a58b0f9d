// Package intake provides the intake bounded context module.
package intake

import (
	"tradein_backend/internal/design"
	"tradein_backend/internal/handoff"
	apphttp "tradein_backend/internal/http"
	"tradein_backend/internal/intake/handler"
	"tradein_backend/internal/intake/service"
	"tradein_backend/internal/storage"
	"tradein_backend/platform/logger"
	"tradein_backend/platform/validator"
)

// Module is the intake bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the intake module.
func NewModule(generator design.Generator, store handoff.Store, archive storage.PhotoArchive, val *validator.Validator, maxFileSize int64, log *logger.Logger) *Module {
	svc := service.New(generator, store, archive, log)
	h := handler.New(svc, val, maxFileSize)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intake"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts intake routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/intake/designs", ctx.SubmitLimiter.RateLimit(), m.handler.SubmitDesign)
}

var _ apphttp.Module = (*Module)(nil)
