package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

type fakeDialer struct {
	sent  []*gomail.Message
	err   error
	delay time.Duration
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	time.Sleep(f.delay)
	f.sent = append(f.sent, m...)
	return f.err
}

func smtpOK() entity.SMTPSettings {
	return entity.SMTPSettings{Host: "smtp.example.pe", Port: 587, User: "u", Password: "p", From: "noreply@example.pe"}
}

func TestSend_UsaConfiguracion(t *testing.T) {
	fd := &fakeDialer{}
	var got entity.SMTPSettings
	g := NewGomailSender(nil)
	g.newDialer = func(s entity.SMTPSettings) dialer { got = s; return fd }

	err := g.Send(context.Background(), smtpOK(), ports.MailMessage{To: []string{"a@b.pe"}, Subject: "Prueba", HTMLBody: "<p>ok</p>"})
	require.NoError(t, err)
	require.Len(t, fd.sent, 1)
	assert.Equal(t, []string{"Prueba"}, fd.sent[0].GetHeader("Subject"))
	assert.Equal(t, "smtp.example.pe", got.Host)
}

func TestSend_SinConfiguracion(t *testing.T) {
	g := NewGomailSender(nil)
	err := g.Send(context.Background(), entity.SMTPSettings{}, ports.MailMessage{To: []string{"a@b.pe"}})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	err = g.Send(context.Background(), smtpOK(), ports.MailMessage{})
	assert.Error(t, err)
}

func TestSend_PropagaErrorYContexto(t *testing.T) {
	g := NewGomailSender(nil)
	g.newDialer = func(entity.SMTPSettings) dialer { return &fakeDialer{err: errors.New("535 Authentication failed")} }
	err := g.Send(context.Background(), smtpOK(), ports.MailMessage{To: []string{"a@b.pe"}})
	assert.ErrorContains(t, err, "535")

	g.newDialer = func(entity.SMTPSettings) dialer { return &fakeDialer{delay: 200 * time.Millisecond} }
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = g.Send(ctx, smtpOK(), ports.MailMessage{To: []string{"a@b.pe"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewGomailDialer_ModoSSL(t *testing.T) {
	s := smtpOK()
	s.TLSMode = "ssl"
	d := newGomailDialer(s).(*gomail.Dialer)
	assert.True(t, d.SSL)

	s.TLSMode = "starttls"
	d = newGomailDialer(s).(*gomail.Dialer)
	assert.False(t, d.SSL)
}
