// Package mail implementa la lectura del buzón IMAP: mensajes no leídos,
// adjuntos XML y marcado de leído tras el procesamiento exitoso.
package mail

import (
	"fmt"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Config de conexión al buzón.
type Config struct {
	Server  string // host:puerto, TLS implícito
	Account string
	Pass    string
	Mailbox string // vacío = INBOX
}

// Adjunto es un adjunto .xml de un mensaje no leído. SeqNum identifica el
// mensaje dentro de la sesión para marcarlo como leído después.
type Adjunto struct {
	SeqNum  uint32
	Asunto  string
	Archivo string
	Datos   []byte
}

// Client abre sesiones IMAP contra el buzón configurado. Cada ciclo del
// watcher usa una sesión nueva: la conexión no se mantiene entre ciclos.
type Client struct {
	cfg Config
}

// NewClient construye el cliente.
func NewClient(cfg Config) *Client {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return &Client{cfg: cfg}
}

// Connect abre sesión, autentica y selecciona el buzón.
func (m *Client) Connect() (*Session, error) {
	c, err := client.DialTLS(m.cfg.Server, nil)
	if err != nil {
		return nil, fmt.Errorf("mail: conectar a %s: %w", m.cfg.Server, err)
	}
	if err := c.Login(m.cfg.Account, m.cfg.Pass); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("mail: autenticar %s: %w", m.cfg.Account, err)
	}
	if _, err := c.Select(m.cfg.Mailbox, false); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("mail: seleccionar %s: %w", m.cfg.Mailbox, err)
	}
	return &Session{c: c}, nil
}

// Session es una conexión IMAP autenticada con el buzón seleccionado.
type Session struct {
	c *client.Client
}

// FetchUnreadXML devuelve los adjuntos .xml de todos los mensajes no
// leídos. La descarga usa BODY.PEEK, de modo que leer el cuerpo no marca el
// mensaje: el marcado es explícito vía MarkSeen y solo tras procesar sin
// error.
func (s *Session) FetchUnreadXML() ([]Adjunto, error) {
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	seqNums, err := s.c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("mail: buscar no leídos: %w", err)
	}
	if len(seqNums) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNums...)
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem()}

	mensajes := make(chan *imap.Message, len(seqNums))
	done := make(chan error, 1)
	go func() {
		done <- s.c.Fetch(seqset, items, mensajes)
	}()

	var adjuntos []Adjunto
	for msg := range mensajes {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		encontrados, err := extractXMLAttachments(msg.SeqNum, body)
		if err != nil {
			// Mensaje que no se pudo recorrer: se deja sin leer y se sigue.
			continue
		}
		adjuntos = append(adjuntos, encontrados...)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("mail: descargar mensajes: %w", err)
	}
	return adjuntos, nil
}

// MarkSeen marca un mensaje como leído. Se invoca únicamente después de que
// el comprobante se anexó al libro sin error; un mensaje fallido queda sin
// marcar para reintentarse en la siguiente pasada.
func (s *Session) MarkSeen(seqNum uint32) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNum)
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := s.c.Store(seqset, item, []interface{}{imap.SeenFlag}, nil); err != nil {
		return fmt.Errorf("mail: marcar leído %d: %w", seqNum, err)
	}
	return nil
}

// Close cierra la sesión.
func (s *Session) Close() error {
	return s.c.Logout()
}
