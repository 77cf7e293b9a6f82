package ports

import (
	"context"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// MailMessage correo a enviar.
type MailMessage struct {
	To       []string
	Subject  string
	HTMLBody string
}

// Mailer envía correo con la configuración SMTP vigente (editable en caliente).
type Mailer interface {
	Send(ctx context.Context, smtp entity.SMTPSettings, msg MailMessage) error
}
