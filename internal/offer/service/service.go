// Package service implements the offer step: pricing the catalog from the
// stored intake, redeeming handoff tokens, and confirming an offer by
// dispatching the customer and admin emails.
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"tradein_backend/internal/catalog"
	"tradein_backend/internal/email"
	"tradein_backend/internal/handoff"
	"tradein_backend/internal/leads/repository"
	"tradein_backend/internal/offer/transport"
	"tradein_backend/internal/pricing"
	"tradein_backend/platform/apperr"
	"tradein_backend/platform/logger"
	"tradein_backend/platform/phone"

	"golang.org/x/sync/errgroup"
)

// confirmTimeout bounds the whole confirmation: two SMTP sends plus the
// lead insert.
const confirmTimeout = 30 * time.Second

// LeadRecorder persists confirmed offers.
type LeadRecorder interface {
	CreateConfirmedOffer(ctx context.Context, params repository.CreateConfirmedOfferParams) (repository.ConfirmedOffer, error)
}

// Service coordinates the offer step.
type Service struct {
	store      handoff.Store
	engine     *pricing.Engine
	sender     email.Sender
	leads      LeadRecorder
	adminEmail string
	log        *logger.Logger
}

// New creates the offer service. sender may be nil when SMTP is not
// configured; confirmations then fail with a configuration error. leads may
// be nil to disable lead persistence.
func New(store handoff.Store, engine *pricing.Engine, sender email.Sender, leads LeadRecorder, adminEmail string, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		engine:     engine,
		sender:     sender,
		leads:      leads,
		adminEmail: adminEmail,
		log:        log,
	}
}

// normalizeCounts reconciles the two intake form generations. The flat form
// only collects a total; the split form only collects singles and doubles.
// Missing totals derive from the split counts, and a bare total counts as
// single-width doors.
func normalizeCounts(intake handoff.Intake) pricing.DoorCounts {
	counts := pricing.DoorCounts{
		Doors:       intake.Doors,
		SingleDoors: intake.SingleDoors,
		DoubleDoors: intake.DoubleDoors,
	}
	if counts.Doors <= 0 {
		counts.Doors = counts.SingleDoors + counts.DoubleDoors
	}
	if counts.SingleDoors <= 0 && counts.DoubleDoors <= 0 {
		counts.SingleDoors = counts.Doors
	}
	return counts
}

// PriceCatalog prices every catalog entry for the given counts and material.
func (s *Service) PriceCatalog(intake handoff.Intake) []transport.PricedOption {
	counts := normalizeCounts(intake)
	credit := s.engine.TradeInCredit(counts, pricing.Material(intake.Material))

	options := catalog.Options()
	priced := make([]transport.PricedOption, 0, len(options))
	for _, option := range options {
		priced = append(priced, transport.PricedOption{
			ID:            option.ID,
			Name:          option.Name,
			Material:      option.Material,
			RValue:        option.RValue,
			BasePrice:     option.BasePrice,
			InstallPrice:  option.InstallPrice,
			FullPrice:     option.FullPrice(),
			TradeInCredit: credit,
			FinalPrice:    pricing.FinalPrice(option.BasePrice, option.InstallPrice, credit),
			ImageLabel:    string(option.ImageLabel),
			Description:   option.Description,
		})
	}
	return priced
}

// RedeemHandoff loads the handoff slot for the token. Absent, expired, and
// malformed slots are indistinguishable; all of them send the visitor back
// to the start of the flow.
func (s *Service) RedeemHandoff(ctx context.Context, token string) (*transport.HandoffResponse, error) {
	payload, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, handoff.ErrNotFound) {
			return nil, apperr.Gone("your session has expired, please start over").WithOp("offer.RedeemHandoff")
		}
		s.log.UpstreamError("redis", "handoff_get", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load the submission", err).WithOp("offer.RedeemHandoff")
	}

	return &transport.HandoffResponse{
		Success:        true,
		GeneratedImage: payload.GeneratedImage,
		OriginalImage:  payload.OriginalImage,
		Intake:         payload.Intake,
		Options:        s.PriceCatalog(payload.Intake),
	}, nil
}

// ConfirmOffer recomputes the pricing server-side, dispatches both
// confirmation emails concurrently, and records the lead. The confirmation
// succeeds only when both emails deliver.
func (s *Service) ConfirmOffer(ctx context.Context, req transport.ConfirmOfferRequest) (*transport.ConfirmOfferResponse, error) {
	if s.sender == nil {
		return nil, apperr.Internal("email delivery is not configured").WithOp("offer.ConfirmOffer")
	}

	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	payload, err := s.store.Get(ctx, req.Token)
	if err != nil {
		if errors.Is(err, handoff.ErrNotFound) {
			return nil, apperr.Gone("your session has expired, please start over").WithOp("offer.ConfirmOffer")
		}
		s.log.UpstreamError("redis", "handoff_get", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load the submission", err).WithOp("offer.ConfirmOffer")
	}

	option, ok := catalog.ByLabel(catalog.QuadrantLabel(req.SelectedLabel))
	if !ok {
		return nil, apperr.BadRequest("unknown door selection").WithOp("offer.ConfirmOffer")
	}

	counts := normalizeCounts(payload.Intake)
	credit := s.engine.TradeInCredit(counts, pricing.Material(payload.Intake.Material))
	if req.TradeInCredit != nil && *req.TradeInCredit != credit {
		return nil, apperr.Validation("trade-in credit is out of date, please refresh your offer").
			WithOp("offer.ConfirmOffer").
			WithDetails(map[string]int{"tradeInCredit": credit})
	}
	finalPrice := pricing.FinalPrice(option.BasePrice, option.InstallPrice, credit)

	data := email.OfferEmailData{
		Phone:         payload.Intake.Phone,
		Email:         payload.Intake.Email,
		Doors:         counts.Doors,
		SingleDoors:   payload.Intake.SingleDoors,
		DoubleDoors:   payload.Intake.DoubleDoors,
		Material:      payload.Intake.Material,
		DoorName:      option.Name,
		TotalPrice:    option.FullPrice(),
		TradeInCredit: credit,
		FinalPrice:    finalPrice,
	}
	attachments := buildAttachments(payload)
	data.HasPreview = hasGeneratedAttachment(attachments)

	// Both sends run concurrently and both must land. A partial delivery is
	// reported as failure; retrying resends both, so duplicates after a
	// partial failure are accepted.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.sender.SendOfferConfirmedEmail(gctx, payload.Intake.Email, data, attachments...)
		s.log.EmailDelivery("offer_confirmed", payload.Intake.Email, err)
		return err
	})
	g.Go(func() error {
		err := s.sender.SendAdminLeadEmail(gctx, s.adminEmail, data, attachments...)
		s.log.EmailDelivery("admin_lead", s.adminEmail, err)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to send confirmation emails, please try again", err).WithOp("offer.ConfirmOffer")
	}

	s.recordLead(ctx, req, payload, option, credit, finalPrice)

	return &transport.ConfirmOfferResponse{
		Success:       true,
		DoorName:      option.Name,
		FullPrice:     option.FullPrice(),
		TradeInCredit: credit,
		FinalPrice:    finalPrice,
	}, nil
}

// recordLead persists the confirmed offer for sales follow-up. Best effort:
// the customer already received the confirmation, so a storage failure is
// logged rather than surfaced. The lead row stores the phone in E.164 so
// follow-up dialers get a uniform value; the display format stays in the
// emails.
func (s *Service) recordLead(ctx context.Context, req transport.ConfirmOfferRequest, payload handoff.Payload, option catalog.DoorOption, credit, finalPrice int) {
	if s.leads == nil {
		return
	}

	_, err := s.leads.CreateConfirmedOffer(ctx, repository.CreateConfirmedOfferParams{
		HandoffToken:      req.Token,
		Phone:             phone.NormalizeE164(payload.Intake.Phone),
		Email:             payload.Intake.Email,
		SingleDoors:       payload.Intake.SingleDoors,
		DoubleDoors:       payload.Intake.DoubleDoors,
		Doors:             normalizeCounts(payload.Intake).Doors,
		Material:          payload.Intake.Material,
		DoorID:            option.ID,
		DoorName:          option.Name,
		FullPrice:         option.FullPrice(),
		TradeInCredit:     credit,
		FinalPrice:        finalPrice,
		OriginalPhotoKey:  payload.OriginalPhotoKey,
		GeneratedPhotoKey: payload.GeneratedPhotoKey,
	})
	if err != nil {
		s.log.DatabaseError("create_confirmed_offer", err)
	}
}

// buildAttachments decodes the stored images. The generated preview embeds
// inline for the cid reference in both templates; the original photo rides
// along as a plain attachment. Undecodable images are skipped, never fatal.
func buildAttachments(payload handoff.Payload) []email.Attachment {
	var attachments []email.Attachment

	if payload.GeneratedImage != "" {
		if data, err := base64.StdEncoding.DecodeString(payload.GeneratedImage); err == nil {
			attachments = append(attachments, email.Attachment{
				FileName:  "generated-doors.png",
				Content:   data,
				ContentID: "generated-doors.png",
			})
		}
	}
	if payload.OriginalImage != "" {
		if data, err := base64.StdEncoding.DecodeString(payload.OriginalImage); err == nil {
			attachments = append(attachments, email.Attachment{
				FileName: "original-garage.jpg",
				Content:  data,
			})
		}
	}
	return attachments
}

func hasGeneratedAttachment(attachments []email.Attachment) bool {
	for _, att := range attachments {
		if att.ContentID != "" {
			return true
		}
	}
	return false
}
