// Package offer provides the offer bounded context module.
package offer

import (
	"tradein_backend/internal/email"
	"tradein_backend/internal/handoff"
	apphttp "tradein_backend/internal/http"
	"tradein_backend/internal/offer/handler"
	"tradein_backend/internal/offer/service"
	"tradein_backend/internal/pricing"
	"tradein_backend/platform/logger"
	"tradein_backend/platform/validator"
)

// Module is the offer bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the offer module.
func NewModule(store handoff.Store, engine *pricing.Engine, sender email.Sender, leads service.LeadRecorder, adminEmail string, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(store, engine, sender, leads, adminEmail, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "offer"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts offer routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/offers/catalog", m.handler.GetCatalog)
	ctx.V1.GET("/offers/handoff/:token", m.handler.GetHandoff)
	ctx.V1.POST("/offers/confirm", ctx.SubmitLimiter.RateLimit(), m.handler.ConfirmOffer)
}

var _ apphttp.Module = (*Module)(nil)
