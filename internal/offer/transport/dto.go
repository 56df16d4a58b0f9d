package transport

import "tradein_backend/internal/handoff"

// CatalogQuery prices the catalog for ad-hoc door counts, before a handoff
// exists. Counts bind as strings and coerce like the intake form.
type CatalogQuery struct {
	Doors       string `form:"doors"`
	SingleDoors string `form:"singleDoors"`
	DoubleDoors string `form:"doubleDoors"`
	Material    string `form:"material" validate:"omitempty,doormaterial"`
}

// PricedOption is one catalog entry with the visitor's pricing applied.
type PricedOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Material      string `json:"material"`
	RValue        int    `json:"rValue,omitempty"`
	BasePrice     int    `json:"basePrice"`
	InstallPrice  int    `json:"installPrice"`
	FullPrice     int    `json:"fullPrice"`
	TradeInCredit int    `json:"tradeInCredit"`
	FinalPrice    int    `json:"finalPrice"`
	ImageLabel    string `json:"imageLabel"`
	Description   string `json:"description"`
}

// CatalogResponse lists the priced catalog.
type CatalogResponse struct {
	Success bool           `json:"success"`
	Options []PricedOption `json:"options"`
}

// HandoffResponse redeems a handoff token: the generated preview, the
// echoed intake, and the catalog priced from the stored counts.
type HandoffResponse struct {
	Success        bool           `json:"success"`
	GeneratedImage string         `json:"generatedImage"`
	OriginalImage  string         `json:"originalImage,omitempty"`
	Intake         handoff.Intake `json:"intake"`
	Options        []PricedOption `json:"options"`
}

// ConfirmOfferRequest confirms a selection. TradeInCredit is the credit the
// visitor saw; the server recomputes and rejects a mismatch rather than
// honoring a client-supplied price.
type ConfirmOfferRequest struct {
	Token         string `json:"token" validate:"required"`
	SelectedLabel string `json:"selectedLabel" validate:"required,oneof=A B C D"`
	TradeInCredit *int   `json:"tradeInCredit" validate:"omitempty,min=0"`
}

// ConfirmOfferResponse reports the locked-in pricing.
type ConfirmOfferResponse struct {
	Success       bool   `json:"success"`
	DoorName      string `json:"doorName"`
	FullPrice     int    `json:"fullPrice"`
	TradeInCredit int    `json:"tradeInCredit"`
	FinalPrice    int    `json:"finalPrice"`
}
