package estimate

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/poolcrm/backend/internal/domain/estimate"
)

// estimateEmailHTML renders the estimate the customer receives. Kept
// deliberately plain so it survives strict email clients.
var estimateEmailHTML = template.Must(template.New("estimate_email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a; max-width: 640px; margin: 0 auto;">
  <h2 style="color: #0b6e99;">Estimate {{.Number}}</h2>
  <p>{{.Title}}</p>
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr style="border-bottom: 2px solid #0b6e99; text-align: left;">
        <th style="padding: 8px;">Description</th>
        <th style="padding: 8px; text-align: right;">Qty</th>
        <th style="padding: 8px; text-align: right;">Unit Price</th>
        <th style="padding: 8px; text-align: right;">Amount</th>
      </tr>
    </thead>
    <tbody>
      {{- range .Items}}
      <tr style="border-bottom: 1px solid #ddd;">
        <td style="padding: 8px;">{{.Description}}</td>
        <td style="padding: 8px; text-align: right;">{{.Quantity}}</td>
        <td style="padding: 8px; text-align: right;">${{.UnitPrice}}</td>
        <td style="padding: 8px; text-align: right;">${{.Amount}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
  <table style="width: 100%; margin-top: 12px;">
    <tr><td style="text-align: right; padding: 4px;">Subtotal</td><td style="text-align: right; padding: 4px; width: 120px;">${{.Subtotal}}</td></tr>
    <tr><td style="text-align: right; padding: 4px;">Tax</td><td style="text-align: right; padding: 4px;">${{.Tax}}</td></tr>
    <tr><td style="text-align: right; padding: 4px; font-weight: bold;">Total</td><td style="text-align: right; padding: 4px; font-weight: bold;">${{.Total}}</td></tr>
  </table>
  <p style="margin-top: 24px;">Reply to this email or give us a call with any questions.</p>
</body>
</html>`))

// renderEstimateEmail produces the subject, HTML body, and plain-text
// fallback for an estimate email
func renderEstimateEmail(est *estimate.Estimate) (subject, html, text string, err error) {
	subject = fmt.Sprintf("Estimate %s - %s", est.Number, est.Title)

	var buf bytes.Buffer
	if err = estimateEmailHTML.Execute(&buf, est); err != nil {
		return "", "", "", fmt.Errorf("failed to render estimate email: %w", err)
	}
	html = buf.String()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Estimate %s\n%s\n\n", est.Number, est.Title)
	for i := range est.Items {
		item := &est.Items[i]
		fmt.Fprintf(&sb, "%s  x%s @ $%s = $%s\n",
			item.Description, item.Quantity, item.UnitPrice, item.Amount)
	}
	fmt.Fprintf(&sb, "\nSubtotal: $%s\nTax: $%s\nTotal: $%s\n", est.Subtotal, est.Tax, est.Total)
	text = sb.String()

	return subject, html, text, nil
}
