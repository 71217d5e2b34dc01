package mailer

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"helpdesk-system/pkg/config"

	"github.com/sethvargo/go-retry"
	mail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const (
	maxSendRetries   = 2 // attempts = 1 + maxSendRetries
	retryBackoffBase = 2 * time.Second
)

// Mailer is the process-wide email channel. The underlying SMTP client is
// created lazily, reused across sends, and rebuilt whenever a send fails
// with a connection-class error.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger

	mu     sync.Mutex
	client *mail.Client
	ready  bool
}

func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether SMTP credentials are configured. A disabled
// mailer silently skips sends instead of returning errors.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.User != ""
}

// Send delivers one message with up to three attempts and exponential
// backoff (2s, 4s). Connection-class failures rebuild the client before
// the next attempt; transient 4xx SMTP replies retry on the same client.
// A send with no credentials configured is a no-op that returns nil.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if !m.Enabled() {
		m.logger.Debug("smtp not configured, skipping email", zap.String("to", to))
		return nil
	}

	backoff := retry.WithMaxRetries(maxSendRetries, retry.NewExponential(retryBackoffBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if sendErr := m.sendOnce(ctx, to, subject, htmlBody, textBody); sendErr != nil {
			if isConnectionError(sendErr) {
				m.invalidateClient()
				m.logger.Warn("email send hit connection error, will reconnect",
					zap.String("to", to), zap.Error(sendErr))
				return retry.RetryableError(sendErr)
			}
			if isTransientSMTPError(sendErr) {
				m.logger.Warn("email send got transient SMTP reply, will retry",
					zap.String("to", to), zap.Error(sendErr))
				return retry.RetryableError(sendErr)
			}
			return sendErr
		}
		return nil
	})
	if err != nil {
		m.logger.Error("email delivery failed after retries",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}

	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (m *Mailer) sendOnce(ctx context.Context, to, subject, htmlBody, textBody string) error {
	client, err := m.getClient()
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	return client.DialAndSendWithContext(ctx, msg)
}

func (m *Mailer) getClient() (*mail.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ready && m.client != nil {
		return m.client, nil
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(15 * time.Second),
	}
	if m.cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return nil, err
	}

	m.client = client
	m.ready = true
	return m.client, nil
}

func (m *Mailer) invalidateClient() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = nil
	m.ready = false
}

// isConnectionError classifies errors that justify reconnecting:
// resets, timeouts, DNS failures and torn-down connections.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{"connection reset", "broken pipe", "connection refused", "i/o timeout"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// isTransientSMTPError matches 4xx reply codes, which signal a temporary
// server-side condition worth another attempt on the same connection.
// Permanent 5xx rejections stay non-retryable.
func isTransientSMTPError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, code := range []string{"421", "450", "451", "452"} {
		if strings.Contains(msg, code+" ") || strings.Contains(msg, code+"-") {
			return true
		}
	}
	return false
}
