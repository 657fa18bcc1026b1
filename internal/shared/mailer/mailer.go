// Package mailer delivers transactional mail over SMTP. Delivery is
// best-effort at the call sites that matter (payroll distribution): callers
// log failures and move on, they never roll back persisted state.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const maxRetries = 3

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// ConfigFromEnv reads SMTP settings from the environment. A blank host
// disables sending entirely.
func ConfigFromEnv() Config {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: os.Getenv("SMTP_FROM_NAME"),
	}
}

type Message struct {
	To             string
	Subject        string
	HTMLBody       string
	Attachment     []byte
	AttachmentName string
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	cfg    Config
	logger *zap.Logger
}

func NewSMTPSender(cfg Config, logger *zap.Logger) Sender {
	l := zap.L().Named("mailer")
	if logger != nil {
		l = logger.Named("mailer")
	}
	return &smtpSender{cfg: cfg, logger: l}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Host == "" {
		s.logger.Warn("SMTP not configured, skipping email send",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		return nil
	}

	payload, err := buildMIME(s.cfg, msg)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, payload); err == nil {
			s.logger.Info("email sent",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Int("attempt", attempt),
			)
			return nil
		} else {
			lastErr = err
			s.logger.Warn("email send failed",
				zap.String("to", msg.To),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	return fmt.Errorf("send email to %s failed after %d attempts: %w", msg.To, maxRetries, lastErr)
}

func buildMIME(cfg Config, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", cfg.FromName, cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(msg.Attachment) == 0 {
		buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(msg.HTMLBody)
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=\"UTF-8\"")
	htmlPart, err := w.CreatePart(htmlHeader)
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, err
	}

	attHeader := textproto.MIMEHeader{}
	attHeader.Set("Content-Type", "application/pdf")
	attHeader.Set("Content-Transfer-Encoding", "base64")
	attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", msg.AttachmentName))
	attPart, err := w.CreatePart(attHeader)
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
	if _, err := attPart.Write([]byte(encoded)); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
