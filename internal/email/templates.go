package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"tradein_backend/platform/phone"
)

//go:embed templates/*.html
var templateFS embed.FS

type offerConfirmedEmailData struct {
	OfferEmailData
	Title   string
	Heading string
}

type adminLeadEmailData struct {
	OfferEmailData
	Title   string
	Heading string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").Funcs(template.FuncMap{
		"usd":    formatCurrencyUSD,
		"digits": phone.Digits,
	}).ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyUSD(dollars int) string {
	return fmt.Sprintf("$%d", dollars)
}
