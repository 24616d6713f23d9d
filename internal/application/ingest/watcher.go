package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DIOR27/mailbill/internal/infrastructure/mail"
	"github.com/DIOR27/mailbill/pkg/logger"
)

// Watcher sondea el buzón a intervalos fijos y procesa los comprobantes de
// los mensajes no leídos, uno a la vez. Un mensaje se marca como leído solo
// cuando su comprobante quedó anexado al libro; los fallidos quedan sin
// marcar y se reintentan en la siguiente pasada.
type Watcher struct {
	source   MailSource
	uc       *ProcessUseCase
	interval time.Duration
	log      *logger.Logger
}

// NewWatcher construye el watcher.
func NewWatcher(source MailSource, uc *ProcessUseCase, interval time.Duration, log *logger.Logger) *Watcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Watcher{source: source, uc: uc, interval: interval, log: log}
}

// Run ejecuta pasadas hasta que el contexto se cancele. Las fallas de
// conexión o de mensajes individuales no detienen el ciclo; un error del
// libro sí, porque continuar podría dejarlo a medio escribir.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			if !EsRecuperable(err) && ctx.Err() == nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce ejecuta una pasada completa: conectar, listar adjuntos XML de los
// no leídos, procesar cada uno y marcar los exitosos. La cancelación del
// contexto se atiende entre comprobantes, nunca a mitad de una extracción.
func (w *Watcher) RunOnce(ctx context.Context) error {
	log := w.log.With().Str("run_id", uuid.NewString()).Logger()

	sess, err := w.source.Connect()
	if err != nil {
		log.Error().Err(err).Msg("no se pudo abrir sesión de correo; se reintenta en la próxima pasada")
		return nil
	}
	defer sess.Close()

	adjuntos, err := sess.FetchUnreadXML()
	if err != nil {
		log.Error().Err(err).Msg("no se pudieron listar los mensajes no leídos")
		return nil
	}
	if len(adjuntos) == 0 {
		log.Debug().Msg("sin comprobantes nuevos")
		return nil
	}

	for _, a := range adjuntos {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.procesarAdjunto(log, sess, a); err != nil {
			return err
		}
	}
	return nil
}

// procesarAdjunto procesa un adjunto y decide el destino del mensaje.
// Devuelve error solo cuando la corrida debe abortar (libro inescribible).
func (w *Watcher) procesarAdjunto(log zerolog.Logger, sess MailSession, a mail.Adjunto) error {
	if err := w.uc.ProcessInvoiceXML(string(a.Datos)); err != nil {
		if !EsRecuperable(err) {
			return err
		}
		log.Warn().
			Err(err).
			Str("asunto", a.Asunto).
			Str("archivo", a.Archivo).
			Msg("comprobante omitido; el mensaje queda sin leer para reintento")
		return nil
	}
	if err := sess.MarkSeen(a.SeqNum); err != nil {
		// El comprobante ya está en el libro; si el marcado falla, el
		// mensaje se reprocesará y el libro duplicará la fila. Se registra
		// como error para que el operador lo resuelva.
		log.Error().Err(err).Str("archivo", a.Archivo).Msg("no se pudo marcar el mensaje como leído")
	}
	return nil
}
