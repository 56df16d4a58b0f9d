package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"tradein_backend/internal/design"
	"tradein_backend/internal/handoff"
	"tradein_backend/platform/apperr"
	"tradein_backend/platform/logger"
)

type fakeGenerator struct {
	result *design.Result
	err    error
	last   design.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req design.Request) (*design.Result, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStore struct {
	slots  map[string]handoff.Payload
	putErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{slots: make(map[string]handoff.Payload)}
}

func (f *fakeStore) Put(_ context.Context, token string, payload handoff.Payload) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.slots[token] = payload
	return nil
}

func (f *fakeStore) Get(_ context.Context, token string) (handoff.Payload, error) {
	payload, ok := f.slots[token]
	if !ok {
		return handoff.Payload{}, handoff.ErrNotFound
	}
	return payload, nil
}

func (f *fakeStore) Clear(_ context.Context, token string) error {
	delete(f.slots, token)
	return nil
}

type fakeArchive struct {
	keys  []string
	err   error
	calls int
}

func (f *fakeArchive) ArchivePhoto(_ context.Context, folder, fileName, _ string, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	key := folder + "/" + fileName
	f.keys = append(f.keys, key)
	return key, nil
}

func sampleInput() SubmitDesignInput {
	return SubmitDesignInput{
		Intake: handoff.Intake{
			Phone:       "(847) 250-0221",
			Email:       "visitor@example.com",
			Doors:       2,
			Material:    "wood",
		},
		Photo: design.Image{Data: []byte("raw-photo-bytes"), MIMEType: "image/jpeg"},
	}
}

func TestSubmitDesignWithoutGeneratorIsConfigurationError(t *testing.T) {
	svc := New(nil, newFakeStore(), nil, logger.New("development"))

	_, err := svc.SubmitDesign(context.Background(), sampleInput())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected KindInternal, got %v", err)
	}
}

func TestSubmitDesignGenerationFailureIsRetryable(t *testing.T) {
	gen := &fakeGenerator{err: &design.GenerationError{FinishReason: "SAFETY"}}
	svc := New(gen, newFakeStore(), nil, logger.New("development"))

	_, err := svc.SubmitDesign(context.Background(), sampleInput())
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected KindUnavailable, got %v", err)
	}
}

func TestSubmitDesignUpstreamFailureIsRetryable(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection reset")}
	svc := New(gen, newFakeStore(), nil, logger.New("development"))

	_, err := svc.SubmitDesign(context.Background(), sampleInput())
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected KindUnavailable, got %v", err)
	}
}

func TestSubmitDesignStoresHandoffAndReturnsToken(t *testing.T) {
	gen := &fakeGenerator{result: &design.Result{ImageData: []byte("generated-bytes"), MIMEType: "image/png"}}
	store := newFakeStore()
	archive := &fakeArchive{}
	svc := New(gen, store, archive, logger.New("development"))

	resp, err := svc.SubmitDesign(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected success with a token, got %+v", resp)
	}

	decoded, err := base64.StdEncoding.DecodeString(resp.ImageData)
	if err != nil || string(decoded) != "generated-bytes" {
		t.Fatalf("generated image did not round-trip: %v", err)
	}

	stored, err := store.Get(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("stored payload missing: %v", err)
	}
	if stored.GeneratedImage != resp.ImageData {
		t.Fatal("stored payload and response diverge")
	}
	if stored.Intake != sampleInput().Intake {
		t.Fatalf("intake not echoed into handoff: %+v", stored.Intake)
	}
	if stored.OriginalPhotoKey == "" || stored.GeneratedPhotoKey == "" {
		t.Fatalf("expected archive keys on the payload, got %+v", stored)
	}
	if archive.calls != 2 {
		t.Fatalf("expected both images archived, got %d calls", archive.calls)
	}
}

func TestSubmitDesignArchiveFailureIsNotFatal(t *testing.T) {
	gen := &fakeGenerator{result: &design.Result{ImageData: []byte("generated-bytes"), MIMEType: "image/png"}}
	store := newFakeStore()
	svc := New(gen, store, &fakeArchive{err: errors.New("bucket offline")}, logger.New("development"))

	resp, err := svc.SubmitDesign(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("archiving must be best effort: %v", err)
	}

	stored, _ := store.Get(context.Background(), resp.Token)
	if stored.OriginalPhotoKey != "" || stored.GeneratedPhotoKey != "" {
		t.Fatalf("expected empty keys after archive failure, got %+v", stored)
	}
}

func TestSubmitDesignStoreFailure(t *testing.T) {
	gen := &fakeGenerator{result: &design.Result{ImageData: []byte("generated-bytes"), MIMEType: "image/png"}}
	store := newFakeStore()
	store.putErr = errors.New("redis down")
	svc := New(gen, store, nil, logger.New("development"))

	_, err := svc.SubmitDesign(context.Background(), sampleInput())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected KindInternal, got %v", err)
	}
}

func TestSubmitDesignPassesDesignReferenceToGenerator(t *testing.T) {
	gen := &fakeGenerator{result: &design.Result{ImageData: []byte("generated-bytes"), MIMEType: "image/png"}}
	svc := New(gen, newFakeStore(), nil, logger.New("development"))

	input := sampleInput()
	input.DesignPhoto = &design.Image{Data: []byte("design-bytes"), MIMEType: "image/jpeg"}
	input.DesignName = "Carriage House"
	input.ColorName = "Walnut"

	if _, err := svc.SubmitDesign(context.Background(), input); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gen.last.DesignPhoto == nil || gen.last.DesignName != "Carriage House" || gen.last.ColorName != "Walnut" {
		t.Fatalf("design reference not forwarded: %+v", gen.last)
	}
}
