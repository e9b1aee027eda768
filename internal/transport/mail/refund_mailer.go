package mail

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/smtp"
	"strings"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// RefundMailer tells travellers that their refund has been issued.
type RefundMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	send     sendFunc
}

var _ ports.RefundNotifier = (*RefundMailer)(nil)

func NewRefundMailer(host, port, username, password, from string) *RefundMailer {
	return &RefundMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
		send:     smtp.SendMail,
	}
}

func (m *RefundMailer) SendRefundProcessed(ctx context.Context, email string, refund domain.Transaction) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}
	if strings.TrimSpace(email) == "" {
		return errors.New("mailer: empty recipient")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	message := buildRefundMessage(m.from, email, refund)

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return m.send(addr, auth, m.from, []string{email}, []byte(message))
}

func buildRefundMessage(from, to string, refund domain.Transaction) string {
	body := fmt.Sprintf(
		"Your refund of %.2f has been processed.\n\nReference: %s\n\nIt may take a few business days to appear on your statement.",
		math.Abs(refund.Amount), refund.ID.String(),
	)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString("Subject: Your Sanchari Escapes refund has been processed\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}
