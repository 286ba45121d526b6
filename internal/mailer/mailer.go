package mailer

import (
	"Taskvora/internal/config"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Mailer — шлюз отправки писем. Ошибка транспорта возвращается вызывающему,
// но выше границы агрегатора уведомлений она не поднимается.
type Mailer interface {
	Send(to, subject, body string) error
}

// New выбирает реализацию: настоящий SMTP, если заданы учётные данные,
// иначе демо-режим с выводом письма в лог.
func New(cfg *config.Config, logger *zap.SugaredLogger) Mailer {
	if cfg.SMTPConfigured() {
		return &smtpMailer{
			addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
			host: cfg.SMTPHost,
			user: cfg.SMTPUser,
			pass: cfg.SMTPPass,
			from: cfg.SMTPFrom,
		}
	}
	logger.Infow("SMTP credentials not set, mailer runs in demo mode")
	return &demoMailer{from: cfg.SMTPFrom, logger: logger}
}

type smtpMailer struct {
	addr string
	host string
	user string
	pass string
	from string
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := buildMessage(m.from, to, subject, body)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.addr, auth, m.user, []string{to}, []byte(msg))
}

// demoMailer выводит собранное письмо в лог вместо отправки.
type demoMailer struct {
	from   string
	logger *zap.SugaredLogger
}

func (m *demoMailer) Send(to, subject, body string) error {
	m.logger.Infow("[DEMO MODE] email would be sent",
		"from", m.from,
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}

// buildMessage собирает простое текстовое письмо с заголовками.
func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
