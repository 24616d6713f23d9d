// Package sri implementa el parseo del comprobante electrónico SRI:
// resolución de rutas de etiquetas, desenvoltura del sobre XML doblemente
// anidado y extracción de campos hacia el modelo de dominio.
package sri

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/DIOR27/mailbill/internal/domain"
)

// Resolve busca la primera coincidencia en profundidad de una ruta de
// etiquetas bajo el elemento dado y devuelve su texto. Una ruta puede ser
// una sola etiqueta ("ruc") o segmentos separados por punto
// ("infoFactura.fechaEmision").
//
// Un nodo ausente y un nodo con texto vacío colapsan al mismo resultado
// ("", false); quien necesite distinguirlos debe usar Exists.
func Resolve(el *etree.Element, ruta string) (string, bool) {
	n := find(el, ruta)
	if n == nil {
		return "", false
	}
	texto := strings.TrimSpace(n.Text())
	if texto == "" {
		return "", false
	}
	return texto, true
}

// ResolveAll resuelve varias rutas contra el mismo subárbol, cada una de
// forma independiente. El resultado queda alineado al orden de las rutas;
// las ausentes quedan como cadena vacía.
func ResolveAll(el *etree.Element, rutas ...string) []string {
	out := make([]string, len(rutas))
	for i, ruta := range rutas {
		out[i], _ = Resolve(el, ruta)
	}
	return out
}

// Exists informa si la ruta existe como nodo, aunque su texto esté vacío.
func Exists(el *etree.Element, ruta string) bool {
	return find(el, ruta) != nil
}

// RequireElement devuelve el elemento de la ruta o ErrNodoRequerido si no
// existe. Se usa para los nodos ancla del documento (por ejemplo
// <comprobante>), cuya ausencia se escala y nunca se rellena por defecto.
func RequireElement(el *etree.Element, ruta string) (*etree.Element, error) {
	n := find(el, ruta)
	if n == nil {
		return nil, fmt.Errorf("%w: <%s>", domain.ErrNodoRequerido, ruta)
	}
	return n, nil
}

// find traduce la ruta punteada a una búsqueda etree en profundidad
// (primera coincidencia, hijo directo o descendiente).
func find(el *etree.Element, ruta string) *etree.Element {
	if el == nil || ruta == "" {
		return nil
	}
	return el.FindElement(".//" + strings.ReplaceAll(ruta, ".", "/"))
}
