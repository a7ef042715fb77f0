package service

import (
	"fmt"
	"html"
	"strings"

	"samedayramps-backend/internal/domain"
)

// buildQuoteHTML renders the customer-facing quote document stored on the
// job and embedded in the quote email.
func buildQuoteHTML(job *domain.Job, frontendURL string) string {
	var b strings.Builder

	name := "Customer"
	if job.CustomerInfo != nil && job.CustomerInfo.FullName() != "" {
		name = html.EscapeString(job.CustomerInfo.FullName())
	}

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h1 style="color: #2c5282;">Your Wheelchair Ramp Rental Quote</h1>`)
	fmt.Fprintf(&b, `<p>Dear %s,</p>`, name)
	b.WriteString(`<p>Thank you for your interest in a wheelchair ramp rental. Here is your quote:</p>`)

	if job.RampConfiguration != nil {
		b.WriteString(`<h2>Ramp Configuration</h2><ul>`)
		fmt.Fprintf(&b, `<li>Total ramp length: %g ft</li>`, job.RampConfiguration.TotalLength)
		fmt.Fprintf(&b, `<li>Rental duration: %d month(s)</li>`, job.RampConfiguration.RentalDuration)
		for _, comp := range job.RampConfiguration.Components {
			fmt.Fprintf(&b, `<li>%s %s x%d</li>`,
				html.EscapeString(comp.Size), html.EscapeString(string(comp.Type)), comp.Quantity)
		}
		b.WriteString(`</ul>`)
	}

	if job.Pricing != nil {
		b.WriteString(`<h2>Pricing</h2>`)
		b.WriteString(`<table style="border-collapse: collapse; width: 100%;">`)
		writeQuoteRow(&b, "Delivery Fee", job.Pricing.DeliveryFee)
		writeQuoteRow(&b, "Installation Fee", job.Pricing.InstallFee)
		writeQuoteRow(&b, "Monthly Rental Rate", job.Pricing.MonthlyRate)
		writeQuoteRow(&b, "Total Upfront", job.Pricing.UpfrontFee)
		b.WriteString(`</table>`)
	}

	if job.CustomerInfo != nil && job.CustomerInfo.InstallAddress != "" {
		fmt.Fprintf(&b, `<p>Installation address: %s</p>`, html.EscapeString(job.CustomerInfo.InstallAddress))
	}

	fmt.Fprintf(&b, `<p><a href="%s/jobs/%s" style="color: #2c5282;">View your quote online</a></p>`,
		frontendURL, job.ID)
	b.WriteString(`<p>Same Day Ramps</p></div>`)
	return b.String()
}

func writeQuoteRow(b *strings.Builder, label string, amount float64) {
	fmt.Fprintf(b, `<tr><td style="padding: 8px; border: 1px solid #e2e8f0;">%s</td>`+
		`<td style="padding: 8px; border: 1px solid #e2e8f0; text-align: right;">$%.2f</td></tr>`,
		label, amount)
}
