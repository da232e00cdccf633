package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"parlor/internal/shared/config"
)

// SMTPNotifier emails queued visitors when their session goes active. It
// implements the session notifier contract of the chat usecases; delivery
// failures surface as errors and the caller decides they are non-fatal.
type SMTPNotifier struct {
	cfg     *config.EmailConfig
	baseURL string
	dialer  *gomail.Dialer
}

func NewSMTPNotifier(cfg *config.EmailConfig, baseURL string) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:     cfg,
		baseURL: baseURL,
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

func (n *SMTPNotifier) SessionReady(ctx context.Context, email, token string) error {
	chatURL := fmt.Sprintf("%s/?token=%s", n.baseURL, token)

	subject := "Your assistant session is ready"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>It's your turn</h2>
			<p>A seat has opened up and your session is now active. Click the link below to start chatting:</p>
			<p><a href="%s">Open your session</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>Sessions close after a period of inactivity, so don't wait too long.</p>
		</body>
		</html>
	`, chatURL, chatURL)

	plainBody := fmt.Sprintf(`
It's your turn

A seat has opened up and your session is now active. Open the link below to start chatting:
%s

Sessions close after a period of inactivity, so don't wait too long.
	`, chatURL)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.FromAddress, n.cfg.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send session ready email: %w", err)
	}
	return nil
}
