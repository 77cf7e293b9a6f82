// Package mail envía correo SMTP (pruebas desde el panel admin y alertas de licitaciones).
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

var _ ports.Mailer = (*GomailSender)(nil)

// dialer permite sustituir el envío real en tests.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// GomailSender implementa ports.Mailer con gopkg.in/gomail.v2.
type GomailSender struct {
	log       *logger.Logger
	newDialer func(s entity.SMTPSettings) dialer
}

// NewGomailSender construye el adaptador.
func NewGomailSender(log *logger.Logger) *GomailSender {
	return &GomailSender{
		log:       logger.OrNop(log).Component("mail"),
		newDialer: newGomailDialer,
	}
}

func newGomailDialer(s entity.SMTPSettings) dialer {
	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	d.TLSConfig = &tls.Config{ServerName: s.Host, MinVersion: tls.VersionTLS12}
	// ssl: TLS implícito (465). starttls/none: gomail negocia STARTTLS si el servidor lo ofrece.
	d.SSL = strings.EqualFold(s.TLSMode, "ssl") || (s.TLSMode == "" && s.Port == 465)
	return d
}

// Send compone y envía el mensaje. gomail no acepta contexto: el envío corre en
// una goroutine y se abandona si ctx vence antes.
func (g *GomailSender) Send(ctx context.Context, s entity.SMTPSettings, msg ports.MailMessage) error {
	if !s.Configured() {
		return fmt.Errorf("mail: %w: SMTP sin host, puerto o remitente", domain.ErrNotConfigured)
	}
	if len(msg.To) == 0 {
		return errors.New("mail: sin destinatarios")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	done := make(chan error, 1)
	go func() { done <- g.newDialer(s).DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			g.log.Warn().Err(err).Str("host", s.Host).Int("port", s.Port).Msg("envío SMTP fallido")
			return fmt.Errorf("mail: enviar: %w", err)
		}
		g.log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("correo enviado")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mail: %w", ctx.Err())
	}
}
