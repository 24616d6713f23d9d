// Package ingest orquesta el procesamiento de comprobantes: desenvolver el
// sobre XML, extraer los campos de negocio, calcular impuestos por línea y
// anexar al libro de facturas.
package ingest

import (
	"errors"

	"github.com/DIOR27/mailbill/internal/domain"
	"github.com/DIOR27/mailbill/internal/domain/entity"
	domsri "github.com/DIOR27/mailbill/internal/domain/sri"
	infrasri "github.com/DIOR27/mailbill/internal/infrastructure/sri"
	"github.com/DIOR27/mailbill/pkg/logger"
)

// ProcessUseCase procesa un comprobante a la vez, de forma secuencial: la
// extracción y el anexado de un comprobante son una sola sección crítica
// sobre el libro.
type ProcessUseCase struct {
	extractor *infrasri.Extractor
	libro     LibroFacturas
	log       *logger.Logger
}

// NewProcessUseCase construye el caso de uso.
func NewProcessUseCase(extractor *infrasri.Extractor, libro LibroFacturas, log *logger.Logger) *ProcessUseCase {
	return &ProcessUseCase{extractor: extractor, libro: libro, log: log}
}

// ProcessInvoiceXML procesa el texto del sobre de un comprobante y lo anexa
// al libro. El llamador debe marcar el mensaje de origen como atendido solo
// si el retorno es nil.
//
// Errores de estructura o de parseo (ErrNodoRequerido,
// ErrComprobanteIlegible) afectan solo a este comprobante; los errores del
// libro (ErrLibro) deben tratarse como fatales para la corrida.
func (uc *ProcessUseCase) ProcessInvoiceXML(rawText string) error {
	doc, err := infrasri.Unwrap(rawText)
	if err != nil {
		return err
	}

	c, err := uc.extractor.Extract(doc)
	if err != nil {
		return err
	}

	// Validación consultiva: un RUC o clave de acceso mal digitado se
	// reporta pero no bloquea el registro.
	if err := domsri.ValidateComprobante(c); err != nil {
		uc.log.Warn().
			Err(err).
			Str("num_factura", c.NumFactura()).
			Msg("comprobante con datos inconsistentes; se anexa de todas formas")
	}
	uc.warnImpuestosDegradados(c)

	if len(c.Detalles) == 0 {
		uc.log.Info().
			Str("num_factura", c.NumFactura()).
			Msg("comprobante sin detalles: nada que anexar")
		return nil
	}

	if err := uc.libro.Append(c); err != nil {
		return err
	}

	uc.log.Info().
		Str("razon_social", c.RazonSocial).
		Str("num_factura", c.NumFactura()).
		Str("clave_acceso", c.ClaveAcceso).
		Int("detalles", len(c.Detalles)).
		Msg("comprobante anexado al libro")
	return nil
}

// warnImpuestosDegradados deja constancia de las líneas cuyo impuesto salió
// con monto vacío (tarifa ausente o monto no numérico en el origen): la
// salida degradada es deliberada pero debe quedar visible en el log.
func (uc *ProcessUseCase) warnImpuestosDegradados(c *entity.Comprobante) {
	for i, d := range c.Detalles {
		for _, imp := range d.Impuestos {
			if imp.PrecioConImpuesto == "" {
				uc.log.Warn().
					Str("num_factura", c.NumFactura()).
					Int("detalle", i+1).
					Str("descripcion", d.Descripcion).
					Msg("impuesto sin tarifa: monto con impuesto queda en blanco")
			}
		}
	}
}

// EsRecuperable indica si el error afecta solo al comprobante actual (se
// registra y se continúa con el siguiente mensaje) o si debe abortar la
// corrida.
func EsRecuperable(err error) bool {
	return errors.Is(err, domain.ErrNodoRequerido) ||
		errors.Is(err, domain.ErrComprobanteIlegible)
}
