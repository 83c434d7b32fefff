// internal/adapters/out/mail/submission_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	"stockroom/internal/domain/submission"
)

// SubmissionMailerPort is the outbound port the submission coordinator uses
// to notify the submitter after a successful order submission. Delivery is
// best-effort: a notifier failure never fails the submission.
type SubmissionMailerPort interface {
	SendOrderSubmitted(ctx context.Context, toEmail string, result submission.OrdersResult, notes string) error
}

// EmailClient abstracts the concrete mail transport (SendGrid, SMTP, ...).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// SubmissionMailer implements SubmissionMailerPort on an EmailClient.
type SubmissionMailer struct {
	client      EmailClient
	fromAddress string
}

func NewSubmissionMailer(client EmailClient, fromAddress string) *SubmissionMailer {
	return &SubmissionMailer{client: client, fromAddress: strings.TrimSpace(fromAddress)}
}

// SendOrderSubmitted mails the submitter a receipt carrying the persisted
// request ids.
func (m *SubmissionMailer) SendOrderSubmitted(ctx context.Context, toEmail string, result submission.OrdersResult, notes string) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("mail: submission mailer is not configured")
	}

	ids := result.JoinedIDs(false)
	subject := fmt.Sprintf("Order request %s submitted", ids)

	body := fmt.Sprintf(
		`Your order request has been submitted.

  Request IDs: %s
  Notes:       %s

This is an automated message from Stockroom.`,
		ids,
		strings.TrimSpace(notes),
	)

	return m.client.Send(ctx, m.fromAddress, strings.TrimSpace(toEmail), subject, body)
}
