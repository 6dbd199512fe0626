package libs

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type ReviewNotice struct {
	TechnicianName  string
	TechnicianEmail string
	ReviewerName    string
	Rating          int
	Comment         string
}

// Sender is the part of gomail's dialer the mailer needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends transactional email over SMTP.
type Mailer struct {
	sender Sender
	from   string
}

func NewMailer(cfg SMTPConfig) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass), from: from}
}

func NewMailerWithSender(sender Sender, from string) *Mailer {
	return &Mailer{sender: sender, from: from}
}

func (m *Mailer) NotifyReview(ctx context.Context, n ReviewNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", n.TechnicianEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Nueva reseña de %d estrellas", n.Rating))
	msg.SetBody("text/html", reviewBody(n))

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// reviewBody expects n.Comment to be escaped already; names are escaped here.
func reviewBody(n ReviewNotice) string {
	comment := n.Comment
	if comment == "" {
		comment = "<em>Sin comentario</em>"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Hola %s,</h2>
    <p><strong>%s</strong> dejó una reseña de <strong>%d/5</strong> en tu perfil.</p>
    <blockquote>%s</blockquote>
    <p style="color: #666; font-size: 12px;">Este es un correo automático, por favor no respondas.</p>
</body>
</html>
`, html.EscapeString(n.TechnicianName), html.EscapeString(n.ReviewerName), n.Rating, comment)
}
