package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPProvider struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewSMTPProvider(host string, port int, username, password, fromEmail, fromName string) *SMTPProvider {
	return &SMTPProvider{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendEmail submits the message over authenticated SMTP with STARTTLS.
func (p *SMTPProvider) SendEmail(ctx context.Context, request *EmailRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", p.host, p.port)
	auth := smtp.PlainAuth("", p.username, p.password, p.host)

	msg := p.buildMessage(request)
	if err := smtp.SendMail(addr, auth, p.fromEmail, []string{request.To}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (p *SMTPProvider) buildMessage(request *EmailRequest) []byte {
	contentType := "text/plain; charset=UTF-8"
	if request.HTML {
		contentType = "text/html; charset=UTF-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", p.fromName, p.fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", request.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", request.Subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(request.Body)

	return []byte(b.String())
}
