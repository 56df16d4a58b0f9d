// Package email delivers the confirmation pair: one message to the customer,
// one to the admin inbox. Both render from embedded HTML templates.
package email

import "context"

// Attachment is an in-memory file attached to an outgoing message. When
// ContentID is set the file is embedded inline and addressable from the
// HTML body as cid:<FileName>.
type Attachment struct {
	FileName  string
	Content   []byte
	ContentID string
}

// OfferEmailData carries everything both confirmation messages render.
type OfferEmailData struct {
	Phone       string
	Email       string
	Doors       int
	SingleDoors int
	DoubleDoors int
	Material    string

	DoorName      string
	TotalPrice    int
	TradeInCredit int
	FinalPrice    int

	// HasPreview toggles the inline generated-image block.
	HasPreview bool
	Year       int
}

// Sender delivers the two confirmation messages.
type Sender interface {
	SendOfferConfirmedEmail(ctx context.Context, toEmail string, data OfferEmailData, attachments ...Attachment) error
	SendAdminLeadEmail(ctx context.Context, toEmail string, data OfferEmailData, attachments ...Attachment) error
}
