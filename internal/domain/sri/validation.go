package sri

import (
	"errors"
	"fmt"

	"github.com/DIOR27/mailbill/internal/domain/entity"
	pkgsri "github.com/DIOR27/mailbill/pkg/sri"
)

// ErrComprobanteInvalido agrupa errores de validación del comprobante.
var ErrComprobanteInvalido = errors.New("comprobante con datos inconsistentes")

// ValidateComprobante aplica validaciones de coherencia sobre el comprobante
// extraído: RUC del emisor, clave de acceso (si viene) y ancho de los
// segmentos del número de factura.
//
// Es una validación consultiva: el llamador registra el resultado como
// advertencia pero no bloquea el registro en el libro, porque un comprobante
// con RUC mal digitado sigue siendo un documento que el contador quiere ver.
func ValidateComprobante(c *entity.Comprobante) error {
	if c == nil {
		return fmt.Errorf("%w: comprobante nulo", ErrComprobanteInvalido)
	}
	var errs []error

	if c.RUC != "" {
		if err := pkgsri.ValidateRUC(c.RUC); err != nil {
			errs = append(errs, fmt.Errorf("emisor: %w", err))
		}
	}
	if c.ClaveAcceso != "" {
		if err := pkgsri.ValidateClaveAcceso(c.ClaveAcceso); err != nil {
			errs = append(errs, err)
		}
	}

	// Segmentos del número de factura: estab y ptoEmi de 3, secuencial de 9.
	if c.Estab != "" && len(c.Estab) != 3 {
		errs = append(errs, fmt.Errorf("%w: estab debe tener 3 dígitos, tiene %d", ErrComprobanteInvalido, len(c.Estab)))
	}
	if c.PtoEmi != "" && len(c.PtoEmi) != 3 {
		errs = append(errs, fmt.Errorf("%w: ptoEmi debe tener 3 dígitos, tiene %d", ErrComprobanteInvalido, len(c.PtoEmi)))
	}
	if c.Secuencial != "" && len(c.Secuencial) != 9 {
		errs = append(errs, fmt.Errorf("%w: secuencial debe tener 9 dígitos, tiene %d", ErrComprobanteInvalido, len(c.Secuencial)))
	}

	return errors.Join(errs...)
}
