package email

import (
	"strings"
	"testing"
)

func sampleData() OfferEmailData {
	return OfferEmailData{
		Phone:         "(847) 250-0221",
		Email:         "visitor@example.com",
		Doors:         3,
		SingleDoors:   2,
		DoubleDoors:   1,
		Material:      "wood",
		DoorName:      "Carriage House",
		TotalPrice:    2040,
		TradeInCredit: 440,
		FinalPrice:    1600,
		HasPreview:    true,
		Year:          2026,
	}
}

func TestOfferConfirmedTemplateRenders(t *testing.T) {
	html, err := renderEmailTemplate("offer_confirmed.html", offerConfirmedEmailData{
		OfferEmailData: sampleData(),
		Title:          "Your Garage Door Offer",
		Heading:        "Your Offer is Confirmed!",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"Your Offer is Confirmed!",
		"(847) 250-0221",
		"Carriage House",
		"$2040",
		"-$440",
		"$1600",
		"cid:generated-doors.png",
		"&copy; 2026",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("customer email missing %q", want)
		}
	}
}

func TestOfferConfirmedTemplateOmitsPreviewBlock(t *testing.T) {
	data := sampleData()
	data.HasPreview = false

	html, err := renderEmailTemplate("offer_confirmed.html", offerConfirmedEmailData{
		OfferEmailData: data,
		Title:          "Your Garage Door Offer",
		Heading:        "Your Offer is Confirmed!",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "cid:generated-doors.png") {
		t.Fatal("preview image should be omitted without a generated image")
	}
}

func TestAdminLeadTemplateRenders(t *testing.T) {
	html, err := renderEmailTemplate("admin_lead.html", adminLeadEmailData{
		OfferEmailData: sampleData(),
		Title:          "New Confirmed Offer",
		Heading:        "🔔 New Confirmed Offer!",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"visitor@example.com",
		"3 door(s) (2 single, 1 double), wood",
		"tel:8472500221",
		"$2040",
		"Call Customer Now",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("admin email missing %q", want)
		}
	}
}

func TestUnknownTemplateFails(t *testing.T) {
	if _, err := renderEmailTemplate("missing.html", nil); err == nil {
		t.Fatal("expected an error for an unknown template")
	}
}
