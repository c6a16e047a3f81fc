package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// Enabled mirrors the deployment contract: host, user and password must all be set.
func (cfg SMTPConfig) Enabled() bool {
	return cfg.Host != "" && cfg.User != "" && cfg.Password != ""
}

type sendMailFunc func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type SMTPSink struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

func NewSMTPSink(cfg SMTPConfig) *SMTPSink {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &SMTPSink{cfg: cfg, sendMail: sendMailContext}
}

func (sink *SMTPSink) Notify(ctx context.Context, to string, subject string, text string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(sink.cfg.Host, sink.cfg.Port)
	auth := smtp.PlainAuth("", sink.cfg.User, sink.cfg.Password, sink.cfg.Host)
	msg := buildPlainTextMessage(sink.cfg.From, to, subject, text)

	if err := sink.sendMail(ctx, addr, auth, sink.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// sendMailContext is smtp.SendMail bound to ctx: the dial honours cancellation
// and the whole session shares the context deadline.
func sendMailContext(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return err
		}
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(msg); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildPlainTextMessage(from string, to string, subject string, text string) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: " + encodeHeader(subject) + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	builder.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(strings.ReplaceAll(text, "\n", "\r\n"))
	return []byte(builder.String())
}

// encodeHeader applies RFC 2047 encoding when the subject is not plain ASCII.
func encodeHeader(value string) string {
	for _, char := range value {
		if char > 127 {
			return mime.BEncoding.Encode("UTF-8", value)
		}
	}
	return value
}
