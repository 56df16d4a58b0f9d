package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"tradein_backend/internal/email"
	"tradein_backend/internal/handoff"
	"tradein_backend/internal/leads/repository"
	"tradein_backend/internal/offer/transport"
	"tradein_backend/internal/pricing"
	"tradein_backend/platform/apperr"
	"tradein_backend/platform/logger"
)

type fakeStore struct {
	slots map[string]handoff.Payload
}

func newFakeStore() *fakeStore {
	return &fakeStore{slots: make(map[string]handoff.Payload)}
}

func (f *fakeStore) Put(_ context.Context, token string, payload handoff.Payload) error {
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

type sentEmail struct {
	to          string
	data        email.OfferEmailData
	attachments []email.Attachment
}

type fakeSender struct {
	mu          sync.Mutex
	customerErr error
	adminErr    error
	customer    []sentEmail
	admin       []sentEmail
}

func (f *fakeSender) SendOfferConfirmedEmail(_ context.Context, to string, data email.OfferEmailData, attachments ...email.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.customerErr != nil {
		return f.customerErr
	}
	f.customer = append(f.customer, sentEmail{to: to, data: data, attachments: attachments})
	return nil
}

func (f *fakeSender) SendAdminLeadEmail(_ context.Context, to string, data email.OfferEmailData, attachments ...email.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adminErr != nil {
		return f.adminErr
	}
	f.admin = append(f.admin, sentEmail{to: to, data: data, attachments: attachments})
	return nil
}

type fakeLeads struct {
	params []repository.CreateConfirmedOfferParams
	err    error
}

func (f *fakeLeads) CreateConfirmedOffer(_ context.Context, params repository.CreateConfirmedOfferParams) (repository.ConfirmedOffer, error) {
	if f.err != nil {
		return repository.ConfirmedOffer{}, f.err
	}
	f.params = append(f.params, params)
	return repository.ConfirmedOffer{HandoffToken: params.HandoffToken}, nil
}

func splitEngine() *pricing.Engine {
	return pricing.NewEngine(pricing.PolicySplit, pricing.DefaultRates())
}

func storedPayload() handoff.Payload {
	return handoff.Payload{
		GeneratedImage: base64.StdEncoding.EncodeToString([]byte("generated-bytes")),
		OriginalImage:  base64.StdEncoding.EncodeToString([]byte("original-bytes")),
		Intake: handoff.Intake{
			Phone:       "(847) 250-0221",
			Email:       "visitor@example.com",
			SingleDoors: 2,
			DoubleDoors: 1,
			Material:    "steel",
		},
	}
}

func newService(store handoff.Store, sender email.Sender, leads LeadRecorder) *Service {
	return New(store, splitEngine(), sender, leads, "admin@example.com", logger.New("development"))
}

func TestRedeemHandoffAbsentTokenIsGone(t *testing.T) {
	svc := newService(newFakeStore(), &fakeSender{}, nil)

	_, err := svc.RedeemHandoff(context.Background(), "never-set")
	if !apperr.Is(err, apperr.KindGone) {
		t.Fatalf("expected KindGone, got %v", err)
	}
}

func TestRedeemHandoffPricesCatalogFromStoredIntake(t *testing.T) {
	store := newFakeStore()
	store.slots["tok-1"] = storedPayload()
	svc := newService(store, &fakeSender{}, nil)

	resp, err := svc.RedeemHandoff(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if len(resp.Options) != 4 {
		t.Fatalf("expected 4 priced options, got %d", len(resp.Options))
	}

	// 2 singles at 120 plus 1 double at 200.
	for _, option := range resp.Options {
		if option.TradeInCredit != 440 {
			t.Fatalf("option %s: expected credit 440, got %d", option.ID, option.TradeInCredit)
		}
		if option.FinalPrice != option.FullPrice-440 {
			t.Fatalf("option %s: final price not derived from credit", option.ID)
		}
	}
	if resp.Intake.SingleDoors != 2 || resp.Intake.DoubleDoors != 1 {
		t.Fatalf("intake not echoed: %+v", resp.Intake)
	}
}

func TestPriceCatalogDerivesSplitCountsFromBareTotal(t *testing.T) {
	svc := newService(newFakeStore(), &fakeSender{}, nil)

	options := svc.PriceCatalog(handoff.Intake{Doors: 2, Material: "wood"})
	// A bare total prices as single-width doors: 2 at the wood single rate.
	if options[0].TradeInCredit != 150 {
		t.Fatalf("expected credit 150, got %d", options[0].TradeInCredit)
	}
}

func TestConfirmOfferWithoutSenderIsConfigurationError(t *testing.T) {
	store := newFakeStore()
	store.slots["tok-1"] = storedPayload()
	svc := newService(store, nil, nil)

	_, err := svc.ConfirmOffer(context.Background(), transport.ConfirmOfferRequest{Token: "tok-1", SelectedLabel: "A"})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected KindInternal, got %v", err)
	}
}

func TestConfirmOfferExpiredTokenIsGone(t *testing.T) {
	svc := newService(newFakeStore(), &fakeSender{}, nil)

	_, err := svc.ConfirmOffer(context.Background(), transport.ConfirmOfferRequest{Token: "tok-gone", SelectedLabel: "A"})
	if !apperr.Is(err, apperr.KindGone) {
		t.Fatalf("expected KindGone, got %v", err)
	}
}

func TestConfirmOfferSendsBothEmailsAndRecordsLead(t *testing.T) {
	store := newFakeStore()
	store.slots["tok-1"] = storedPayload()
	sender := &fakeSender{}
	leads := &fakeLeads{}
	svc := newService(store, sender, leads)

	resp, err := svc.ConfirmOffer(context.Background(), transport.ConfirmOfferRequest{Token: "tok-1", SelectedLabel: "A"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if !resp.Success || resp.DoorName != "Modern Steel" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.TradeInCredit != 440 || resp.FullPrice != 1650 || resp.FinalPrice != 1210 {
		t.Fatalf("pricing not recomputed server-side: %+v", resp)
	}

	if len(sender.customer) != 1 || sender.customer[0].to != "visitor@example.com" {
		t.Fatalf("customer email not sent: %+v", sender.customer)
	}
	if len(sender.admin) != 1 || sender.admin[0].to != "admin@example.com" {
		t.Fatalf("admin email not sent: %+v", sender.admin)
	}
	if !sender.customer[0].data.HasPreview {
		t.Fatal("expected preview flag when a generated image is stored")
	}
	if len(sender.customer[0].attachments) != 2 {
		t.Fatalf("expected generated + original attachments, got %d", len(sender.customer[0].attachments))
	}
	if sender.customer[0].attachments[0].ContentID == "" {
		t.Fatal("generated preview must embed with a content id")
	}

	if len(leads.params) != 1 {
		t.Fatalf("expected one lead recorded, got %d", len(leads.params))
	}
	lead := leads.params[0]
	if lead.DoorID != "steel-flush" || lead.TradeInCredit != 440 || lead.FinalPrice != 1210 || lead.Doors != 3 {
		t.Fatalf("unexpected lead: %+v", lead)
	}
	if lead.Phone != "+18472500221" {
		t.Fatalf("lead phone not normalized to E.164: %q", lead.Phone)
	}
}

func TestConfirmOfferAdminSendFailureFailsConfirmation(t *testing.T) {
	store := newFakeStore()
	store.slots["tok-1"] = storedPayload()
	sender := &fakeSender{adminErr: errors.New("mailbox unavailable")}
	leads := &fakeLeads{}
	svc := newService(store, sender, leads)

	_, err := svc.ConfirmOffer(context.Background(), transport.ConfirmOfferRequest{Token: "tok-1", SelectedLabel: "B"})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("partial delivery must fail the confirmation, got %v", err)
	}
	if len(leads.params) != 0 {
		t.Fatal("lead must not be recorded on failed delivery")
	}
}

func TestConfirmOfferCustomerSendFailureFailsConfirmation(t *testing.T) {
	store := newFakeStore()
	store.slots["tok-1"] = storedPayload()
	sender := &fakeSender{customerErr: errors.New("connection refused")}
	svc := newService(store, sender, nil)

	_, err := svc.ConfirmOffer(context.Background(), transport.ConfirmOfferRequest{Token: "tok-1", SelectedLabel: "B"})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected KindUnavailable, got %v", err)
	}
}

func TestConfirmOfferStaleCreditIsRejected(t *testing.T) {
	store := newFakeStore()
	store.slots["tok-1"] = storedPayload()
	sender := &fakeSender{}
	svc := newService(store, sender, nil)

	stale := 9999
	_, err := svc.ConfirmOffer(context.Background(), transport.ConfirmOfferRequest{
		Token:         "tok-1",
		SelectedLabel: "A",
		TradeInCredit: &stale,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected KindValidation, got %v", err)
	}
	if len(sender.customer)+len(sender.admin) != 0 {
		t.Fatal("no email may be sent for a stale credit")
	}
}

func TestConfirmOfferLeadFailureDoesNotFailConfirmation(t *testing.T) {
	store := newFakeStore()
	store.slots["tok-1"] = storedPayload()
	svc := newService(store, &fakeSender{}, &fakeLeads{err: errors.New("db down")})

	resp, err := svc.ConfirmOffer(context.Background(), transport.ConfirmOfferRequest{Token: "tok-1", SelectedLabel: "C"})
	if err != nil || !resp.Success {
		t.Fatalf("lead persistence must be best effort: %v", err)
	}
}
