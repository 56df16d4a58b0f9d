package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, fromName, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		if att.ContentID != "" {
			msg.EmbedReader(att.FileName, bytes.NewReader(att.Content),
				gomail.WithFileContentID(att.ContentID))
			continue
		}
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendOfferConfirmedEmail delivers the customer-facing confirmation.
func (s *SMTPSender) SendOfferConfirmedEmail(ctx context.Context, toEmail string, data OfferEmailData, attachments ...Attachment) error {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	content, err := renderEmailTemplate("offer_confirmed.html", offerConfirmedEmailData{
		OfferEmailData: data,
		Title:          "Your Garage Door Offer - Illinois Garage Door Repair",
		Heading:        "Your Offer is Confirmed!",
	})
	if err != nil {
		return err
	}
	return s.send(ctx, s.fromName, toEmail, subjectOfferConfirmed, content, attachments...)
}

// SendAdminLeadEmail delivers the internal lead notification. The sender
// display name is fixed so inbox rules can route on it.
func (s *SMTPSender) SendAdminLeadEmail(ctx context.Context, toEmail string, data OfferEmailData, attachments ...Attachment) error {
	content, err := renderEmailTemplate("admin_lead.html", adminLeadEmailData{
		OfferEmailData: data,
		Title:          fmt.Sprintf("New Confirmed Offer - %s", data.Phone),
		Heading:        "🔔 New Confirmed Offer!",
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectAdminLeadFmt, data.Phone)
	return s.send(ctx, "Website Lead", toEmail, subject, content, attachments...)
}

var _ Sender = (*SMTPSender)(nil)
