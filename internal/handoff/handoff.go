// Package handoff stores the transient bundle passed from the intake step to
// the offer step: the generated preview, the original photo, and the intake
// snapshot. One slot per submission token, expired by TTL. The payload never
// outlives the visitor's session.
package handoff

import (
	"context"
	"errors"
)

// SchemaVersion tags stored payloads. A payload written by an older build is
// discarded on read instead of being parsed into the wrong shape.
const SchemaVersion = 1

// ErrNotFound is returned when the slot is absent, expired, unparsable, or
// written under a different schema version. Consumers must treat all of
// these identically and restart the flow.
var ErrNotFound = errors.New("handoff: payload not found")

// Intake is the visitor-submitted data echoed through the flow.
// Door counts are numbers here; the multipart boundary is the only place
// string coercion happens.
type Intake struct {
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Doors       int    `json:"doors"`
	SingleDoors int    `json:"singleDoors"`
	DoubleDoors int    `json:"doubleDoors"`
	Material    string `json:"material"`
}

// Payload is the single-slot handoff bundle. Images are base64-encoded.
// The photo keys point at archived copies in object storage, when archiving
// is enabled.
type Payload struct {
	Version           int    `json:"v"`
	OriginalImage     string `json:"originalImage,omitempty"`
	GeneratedImage    string `json:"generatedImage"`
	OriginalPhotoKey  string `json:"originalPhotoKey,omitempty"`
	GeneratedPhotoKey string `json:"generatedPhotoKey,omitempty"`
	Intake            Intake `json:"intake"`
}

// Store is the typed repository over the underlying key/value storage.
type Store interface {
	// Put serializes the payload under the token, overwriting any prior slot.
	Put(ctx context.Context, token string, payload Payload) error
	// Get returns the payload or ErrNotFound.
	Get(ctx context.Context, token string) (Payload, error)
	// Clear removes the slot. Clearing an absent slot is not an error.
	Clear(ctx context.Context, token string) error
}
