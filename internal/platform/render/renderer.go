package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

const invoiceDocumentTmpl = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}} {{.Invoice.Number}}</title></head>
<body>
  <h1>{{.Title}} {{.Invoice.Number}}</h1>
  {{if .CompanyName}}<p>{{.CompanyName}}</p>{{end}}
  <h2>Billed to</h2>
  <p>
    {{.Client.Name}}<br>
    {{.Client.AddressLine}}<br>
    {{.Client.PostalCode}} {{.Client.City}}, {{.Client.Country}}
    {{if .Client.TaxID}}<br>Tax ID: {{.Client.TaxID}}{{end}}
  </p>
  <p>
    Issue date: {{.Invoice.IssueDate.Format "2006-01-02"}}<br>
    Due date: {{.Invoice.DueDate.Format "2006-01-02"}}<br>
    Status: {{.Invoice.Status}}
  </p>
  <table border="1" cellspacing="0" cellpadding="4">
    <tr><th>Product</th><th>Unit price</th><th>Quantity</th><th>Total</th></tr>
    {{range .Invoice.Items}}
    <tr>
      <td>{{.ProductName}}</td>
      <td>{{.UnitPrice}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.Total}}</td>
    </tr>
    {{end}}
  </table>
  <p>
    Subtotal: {{.Invoice.Subtotal}}<br>
    Tax: {{.Invoice.Tax}}<br>
    <strong>Total: {{.Invoice.Total}}</strong>
  </p>
  {{if .Invoice.Notes}}<p>{{.Invoice.Notes}}</p>{{end}}
</body>
</html>`

const reminderNoticeTmpl = `<!DOCTYPE html>
<html>
<body>
  <p>Dear {{.Client.Name}},</p>
  <p>This is reminder #{{.ReminderCount}} that invoice <strong>{{.Invoice.Number}}</strong>
  for {{.Invoice.Total}} was due on {{.Invoice.DueDate.Format "2006-01-02"}} and remains unpaid.</p>
  <p>Please arrange payment at your earliest convenience. If you have already paid,
  you can disregard this notice.</p>
  {{if .CompanyName}}<p>{{.CompanyName}}</p>{{end}}
</body>
</html>`

// HTMLRenderer renders invoice documents and reminder notices from embedded
// HTML templates.
type HTMLRenderer struct {
	companyName  string
	invoiceTmpl  *template.Template
	reminderTmpl *template.Template
}

// NewHTMLRenderer parses the templates once at startup.
func NewHTMLRenderer(companyName string) (*HTMLRenderer, error) {
	invoiceTmpl, err := template.New("invoice").Parse(invoiceDocumentTmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice document template: %w", err)
	}
	reminderTmpl, err := template.New("reminder").Parse(reminderNoticeTmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reminder notice template: %w", err)
	}
	return &HTMLRenderer{
		companyName:  companyName,
		invoiceTmpl:  invoiceTmpl,
		reminderTmpl: reminderTmpl,
	}, nil
}

type documentData struct {
	Title         string
	CompanyName   string
	Invoice       *domain.Invoice
	Client        *domain.Client
	ReminderCount int
}

// RenderInvoiceDocument produces a human-readable HTML document for an invoice.
// Pro-forma invoices are titled distinctly so they cannot be mistaken for
// final ones.
func (r *HTMLRenderer) RenderInvoiceDocument(invoice *domain.Invoice, client *domain.Client) (string, error) {
	title := "Invoice"
	if invoice.Type == domain.InvoiceTypeProforma {
		title = "Pro-forma invoice"
	}

	var buf strings.Builder
	err := r.invoiceTmpl.Execute(&buf, documentData{
		Title:       title,
		CompanyName: r.companyName,
		Invoice:     invoice,
		Client:      client,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render document for invoice %s: %w", invoice.InvoiceID, err)
	}
	return buf.String(), nil
}

// RenderReminderNotice produces the subject and body of a payment reminder.
func (r *HTMLRenderer) RenderReminderNotice(invoice *domain.Invoice, client *domain.Client, reminderCount int) (string, string, error) {
	subject := fmt.Sprintf("Payment reminder: invoice %s is overdue", invoice.Number)

	var buf strings.Builder
	err := r.reminderTmpl.Execute(&buf, documentData{
		CompanyName:   r.companyName,
		Invoice:       invoice,
		Client:        client,
		ReminderCount: reminderCount,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render reminder notice for invoice %s: %w", invoice.InvoiceID, err)
	}
	return subject, buf.String(), nil
}
