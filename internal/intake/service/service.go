// Package service implements the intake submission flow: photo
// normalization, preview generation, and the handoff write the offer step
// redeems later.
package service

import (
	"context"
	"encoding/base64"
	"errors"

	"tradein_backend/internal/design"
	"tradein_backend/internal/handoff"
	"tradein_backend/internal/intake/transport"
	"tradein_backend/internal/storage"
	"tradein_backend/platform/apperr"
	"tradein_backend/platform/logger"

	"github.com/google/uuid"
)

// SubmitDesignInput is the validated submission the handler assembles.
type SubmitDesignInput struct {
	Intake      handoff.Intake
	Photo       design.Image
	DesignPhoto *design.Image
	DesignName  string
	ColorName   string
}

// Service coordinates one intake submission.
type Service struct {
	generator design.Generator
	store     handoff.Store
	archive   storage.PhotoArchive
	log       *logger.Logger
}

// New creates the intake service. generator and archive may be nil when the
// corresponding backends are not configured; a nil archive silently disables
// archiving, a nil generator fails submissions with a configuration error.
func New(generator design.Generator, store handoff.Store, archive storage.PhotoArchive, log *logger.Logger) *Service {
	return &Service{
		generator: generator,
		store:     store,
		archive:   archive,
		log:       log,
	}
}

// SubmitDesign normalizes the photo, generates the preview, stores the
// handoff payload, and returns the token plus the preview for immediate
// display.
func (s *Service) SubmitDesign(ctx context.Context, input SubmitDesignInput) (*transport.SubmitDesignResponse, error) {
	if s.generator == nil {
		return nil, apperr.Internal("image generation is not configured").WithOp("intake.SubmitDesign")
	}

	photoData, photoMIME := NormalizePhoto(input.Photo.Data, input.Photo.MIMEType)

	result, err := s.generator.Generate(ctx, design.Request{
		Photo:       design.Image{Data: photoData, MIMEType: photoMIME},
		DesignPhoto: input.DesignPhoto,
		DesignName:  input.DesignName,
		ColorName:   input.ColorName,
	})
	if err != nil {
		s.log.UpstreamError("gemini", "generate_design", err)
		var genErr *design.GenerationError
		switch {
		case errors.Is(err, design.ErrNotConfigured):
			return nil, apperr.Internal("image generation is not configured").WithOp("intake.SubmitDesign")
		case errors.As(err, &genErr):
			return nil, apperr.Unavailable("the model did not return image data, please try again").WithOp("intake.SubmitDesign")
		default:
			return nil, apperr.Wrap(apperr.KindUnavailable, "failed to generate the design preview", err).WithOp("intake.SubmitDesign")
		}
	}

	payload := handoff.Payload{
		OriginalImage:  base64.StdEncoding.EncodeToString(photoData),
		GeneratedImage: base64.StdEncoding.EncodeToString(result.ImageData),
		Intake:         input.Intake,
	}
	payload.OriginalPhotoKey, payload.GeneratedPhotoKey = s.archivePhotos(ctx, photoData, photoMIME, result)

	token := uuid.NewString()
	if err := s.store.Put(ctx, token, payload); err != nil {
		s.log.UpstreamError("redis", "handoff_put", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to store the submission", err).WithOp("intake.SubmitDesign")
	}

	return &transport.SubmitDesignResponse{
		Success:           true,
		Token:             token,
		ImageData:         payload.GeneratedImage,
		OriginalImageData: payload.OriginalImage,
		Intake:            input.Intake,
	}, nil
}

// archivePhotos uploads audit copies of both images. Archiving is best
// effort: failures are logged and the submission proceeds without keys.
func (s *Service) archivePhotos(ctx context.Context, photoData []byte, photoMIME string, result *design.Result) (originalKey, generatedKey string) {
	if s.archive == nil {
		return "", ""
	}

	key, err := s.archive.ArchivePhoto(ctx, "originals", "garage"+extensionFor(photoMIME), photoMIME, photoData)
	if err != nil {
		s.log.UpstreamError("minio", "archive_original", err)
	} else {
		originalKey = key
	}

	key, err = s.archive.ArchivePhoto(ctx, "generated", "preview"+extensionFor(result.MIMEType), result.MIMEType, result.ImageData)
	if err != nil {
		s.log.UpstreamError("minio", "archive_generated", err)
	} else {
		generatedKey = key
	}

	return originalKey, generatedKey
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
