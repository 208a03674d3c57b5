package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them — used in ENV=local. The
// OTP lands in the log, which is also what the end-to-end tests read.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("otp email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails via the Resend API — used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// OTPBody renders the verification email for a freshly issued code.
func OTPBody(otp, purpose string) (subject, body string) {
	subject = "Your OTP for Job Portal " + purpose
	body = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f4f4f4;">
			<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
				<h2 style="color: #333;">Job Portal - %s</h2>
				<p style="font-size: 16px; color: #555;">Your OTP is:</p>
				<h1 style="color: #4CAF50; font-size: 36px; letter-spacing: 5px;">%s</h1>
				<p style="color: #777;">This OTP will expire in <strong>10 minutes</strong>.</p>
				<p style="color: #777;">If you didn't request this, please ignore this email.</p>
			</div>
		</div>`, purpose, otp)
	return subject, body
}
