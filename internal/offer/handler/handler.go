package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradein_backend/internal/handoff"
	"tradein_backend/internal/intake/transport"
	"tradein_backend/internal/offer/service"
	offertransport "tradein_backend/internal/offer/transport"
	"tradein_backend/platform/httpkit"
	"tradein_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgMissingToken     = "missing handoff token"
)

// Handler handles HTTP requests for the offer step.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new offer handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetCatalog prices the catalog for ad-hoc query counts.
// GET /api/v1/offers/catalog
func (h *Handler) GetCatalog(c *gin.Context) {
	var query offertransport.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	intake := handoff.Intake{
		Doors:       transport.ParseCount(query.Doors),
		SingleDoors: transport.ParseCount(query.SingleDoors),
		DoubleDoors: transport.ParseCount(query.DoubleDoors),
		Material:    query.Material,
	}
	httpkit.OK(c, offertransport.CatalogResponse{
		Success: true,
		Options: h.svc.PriceCatalog(intake),
	})
}

// GetHandoff redeems a handoff token.
// GET /api/v1/offers/handoff/:token
func (h *Handler) GetHandoff(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingToken, nil)
		return
	}

	result, err := h.svc.RedeemHandoff(c.Request.Context(), token)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ConfirmOffer confirms a selection and dispatches both emails.
// POST /api/v1/offers/confirm
func (h *Handler) ConfirmOffer(c *gin.Context) {
	var req offertransport.ConfirmOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ConfirmOffer(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
