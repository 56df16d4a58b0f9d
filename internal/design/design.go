// Package design wraps the generative-image collaborator that produces the
// door preview. The caller supplies the garage photo (and optionally a
// design reference photo); the collaborator returns one edited image.
package design

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no API key is configured. This is a
// configuration error: fatal to the request, nothing the visitor can fix.
var ErrNotConfigured = errors.New("design: generator is not configured")

// GenerationError is returned when the model responded but produced no
// usable image. Retryable from the visitor's perspective.
type GenerationError struct {
	FinishReason string
}

func (e *GenerationError) Error() string {
	reason := e.FinishReason
	if reason == "" {
		reason = "unknown reason"
	}
	return fmt.Sprintf("design: model returned no image data (reason: %s)", reason)
}

// Image is a raw photo with its MIME type.
type Image struct {
	Data     []byte
	MIMEType string
}

// Request describes one preview generation.
type Request struct {
	// Photo is the visitor's garage photo. Required.
	Photo Image
	// DesignPhoto is the reference door design to transplant onto the
	// garage. Optional; when nil the model restyles the existing door into
	// a four-style composite instead.
	DesignPhoto *Image
	// DesignName and ColorName label the reference design when DesignPhoto
	// is set.
	DesignName string
	ColorName  string
}

// Result is the generated preview.
type Result struct {
	ImageData []byte
	MIMEType  string
}

// Generator produces door previews.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// compositePrompt asks for a single 2x2 grid covering the four catalog
// styles so the offer step can map quadrants A-D onto it.
const compositePrompt = `Edit the provided photo of a garage. Produce one single image arranged as a 2x2 grid. Each quadrant must show the exact same garage and house, with only the garage door replaced: top-left (A) a modern flush steel door, top-right (B) a carriage house style composite door, bottom-left (C) a full-view aluminum and glass door, bottom-right (D) a raised panel natural wood door. Preserve the house, perspective, lighting, and shadows from the original photo in every quadrant.`

func replacementPrompt(designName, colorName string) string {
	return fmt.Sprintf("Using the two provided images, perform a precise replacement. Take only the garage door from the second image (the door design reference, %q) and place it onto the first image (the photo of the house), replacing the existing garage door. The new door's color should be '%s'. Ensure the final image perfectly preserves the house, perspective, lighting, and shadows from the original photo, seamlessly integrating the new door.", designName, colorName)
}
