package ingest

import (
	"github.com/DIOR27/mailbill/internal/domain/entity"
	"github.com/DIOR27/mailbill/internal/infrastructure/mail"
)

// LibroFacturas persiste comprobantes extraídos. La implementación real es
// el appender XLSX; los tests usan un doble en memoria.
type LibroFacturas interface {
	Append(c *entity.Comprobante) error
}

// MailSession es una sesión abierta contra el buzón: lista los adjuntos XML
// de los mensajes no leídos y marca mensajes como leídos.
type MailSession interface {
	FetchUnreadXML() ([]mail.Adjunto, error)
	MarkSeen(seqNum uint32) error
	Close() error
}

// MailSource abre sesiones de correo. Cada pasada del watcher usa una
// sesión nueva.
type MailSource interface {
	Connect() (MailSession, error)
}
