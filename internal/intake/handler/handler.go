package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradein_backend/internal/design"
	"tradein_backend/internal/handoff"
	"tradein_backend/internal/intake/service"
	"tradein_backend/internal/intake/transport"
	"tradein_backend/platform/httpkit"
	"tradein_backend/platform/phone"
	"tradein_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidPhone     = "phone must contain exactly 10 digits"
	msgNoDoors          = "at least one door must be selected"
	msgPhotoRequired    = "a garage photo is required"
	msgPhotoTooLarge    = "photo exceeds the maximum upload size"
	msgDesignIncomplete = "design selection requires designImage, newDoorDesign, and newDoorColor together"

	defaultMaterial = "steel"
)

// Handler handles HTTP requests for intake submissions.
type Handler struct {
	svc         *service.Service
	val         *validator.Validator
	maxFileSize int64
}

// New creates a new intake handler.
func New(svc *service.Service, val *validator.Validator, maxFileSize int64) *Handler {
	return &Handler{svc: svc, val: val, maxFileSize: maxFileSize}
}

// SubmitDesign accepts the intake form and photo, and returns the generated
// preview plus a handoff token.
// POST /api/v1/intake/designs
func (h *Handler) SubmitDesign(c *gin.Context) {
	var req transport.SubmitDesignRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	if !phone.Valid10Digits(req.Phone) {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPhone, nil)
		return
	}

	doors := transport.ParseCount(req.Doors)
	singleDoors := transport.ParseCount(req.SingleDoors)
	doubleDoors := transport.ParseCount(req.DoubleDoors)
	if doors == 0 && singleDoors == 0 && doubleDoors == 0 {
		httpkit.Error(c, http.StatusBadRequest, msgNoDoors, nil)
		return
	}

	material := req.Material
	if material == "" {
		material = defaultMaterial
	}

	photoImage, ok := h.readImageFile(c, "image", true)
	if !ok {
		return
	}

	designRef, err := req.DesignRef()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	colorRef, err := req.ColorRef()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	input := service.SubmitDesignInput{
		Intake: handoff.Intake{
			Phone:       phone.FormatNational(req.Phone),
			Email:       req.Email,
			Doors:       doors,
			SingleDoors: singleDoors,
			DoubleDoors: doubleDoors,
			Material:    material,
		},
		Photo: *photoImage,
	}

	// The design-picker variant needs the reference photo and both
	// selections; anything partial is a malformed submission.
	if designRef != nil || colorRef != nil {
		designImage, ok := h.readImageFile(c, "designImage", false)
		if !ok {
			return
		}
		if designRef == nil || colorRef == nil || designImage == nil {
			httpkit.Error(c, http.StatusBadRequest, msgDesignIncomplete, nil)
			return
		}
		input.DesignPhoto = designImage
		input.DesignName = designRef.Name
		input.ColorName = colorRef.Name
	}

	result, err := h.svc.SubmitDesign(c.Request.Context(), input)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// readImageFile pulls one multipart image into memory. When required is
// false a missing part returns (nil, true) so the caller can decide.
func (h *Handler) readImageFile(c *gin.Context, field string, required bool) (*design.Image, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if !required {
			return nil, true
		}
		httpkit.Error(c, http.StatusBadRequest, msgPhotoRequired, nil)
		return nil, false
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		httpkit.Error(c, http.StatusBadRequest, msgPhotoTooLarge, nil)
		return nil, false
	}

	data, err := readAll(fileHeader)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return nil, false
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return &design.Image{Data: data, MIMEType: mimeType}, true
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
