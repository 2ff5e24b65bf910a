package mailer

import (
	"fmt"
	"strings"

	"paint-estimate-be/internal/entity"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEstimateSummary(toEmail string, estimate *entity.Estimate) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendEstimateSummary mails the finished estimate to the contractor. Failures
// are logged by callers and never fail the completion flow.
func (s *emailService) SendEstimateSummary(toEmail string, estimate *entity.Estimate) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your %s painting estimate is ready", estimate.ProjectType))

	var rows strings.Builder
	for _, item := range estimate.LineItems {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 4px 12px;">%s</td><td style="padding: 4px 12px; text-align: right;">%d</td><td style="padding: 4px 12px; text-align: right;">$%.2f</td></tr>`,
			item.Description, item.Quantity, item.Total,
		))
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Estimate Ready</h2>
			<p>Rooms in scope: %d</p>
			<table style="border-collapse: collapse;">
				<tr><th>Item</th><th>Qty</th><th>Total</th></tr>
				%s
			</table>
			<p>Subtotal: $%.2f<br/>Tax: $%.2f<br/><strong>Total: $%.2f</strong></p>
		</div>
	`, len(estimate.Rooms), rows.String(), estimate.Totals.Subtotal, estimate.Totals.Tax, estimate.Totals.Total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send estimate summary to %s: %w", toEmail, err)
	}
	return nil
}
