package sri

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/DIOR27/mailbill/internal/domain/entity"
	domsri "github.com/DIOR27/mailbill/internal/domain/sri"
)

// Extractor lee los campos de negocio del comprobante interno ya parseado.
// El documento se recorre una sola vez por extracción; todo el código aguas
// abajo trabaja sobre el modelo tipado, no sobre búsquedas de etiquetas.
type Extractor struct {
	tax              *domsri.TaxComputer
	incluirDescuento bool
}

// NewExtractor construye el extractor. incluirDescuento amplía la lista
// permitida de campos de detalle con <descuento> (las revisiones del formato
// no coinciden en si se conserva, así que es decisión de configuración).
func NewExtractor(tax *domsri.TaxComputer, incluirDescuento bool) *Extractor {
	return &Extractor{tax: tax, incluirDescuento: incluirDescuento}
}

// Extract arma el Comprobante a partir del documento interno.
//
// Los campos de cabecera ausentes quedan como cadena vacía (celda en blanco
// en el libro); un bloque <detalles> ausente produce una lista vacía, no un
// error: una factura sin detalles es "nada que anexar", no una falla.
func (e *Extractor) Extract(doc *etree.Document) (*entity.Comprobante, error) {
	root := doc.Root()

	partes := ResolveAll(root, "estab", "ptoEmi", "secuencial")
	c := &entity.Comprobante{
		Estab:       partes[0],
		PtoEmi:      partes[1],
		Secuencial:  partes[2],
		InfoFactura: extractInfoFactura(root),
	}
	c.RazonSocial, _ = Resolve(root, "razonSocial")
	c.NombreComercial, _ = Resolve(root, "nombreComercial")
	c.RUC, _ = Resolve(root, "ruc")
	c.ClaveAcceso, _ = Resolve(root, "claveAcceso")

	c.Detalles = e.extractDetalles(root)
	return c, nil
}

// extractInfoFactura vuelca los hijos directos de <infoFactura> en un mapa
// nombre -> valor. Si el bloque no existe, el mapa queda vacío.
func extractInfoFactura(root *etree.Element) map[string]string {
	campos := make(map[string]string)
	info := root.FindElement(".//infoFactura")
	if info == nil {
		return campos
	}
	for _, hijo := range info.ChildElements() {
		campos[hijo.Tag] = strings.TrimSpace(hijo.Text())
	}
	return campos
}

func (e *Extractor) extractDetalles(root *etree.Element) []entity.Detalle {
	bloque := root.FindElement(".//detalles")
	if bloque == nil {
		return nil
	}
	var detalles []entity.Detalle
	for _, nodo := range bloque.FindElements("detalle") {
		d := entity.Detalle{}
		// Lista permitida: cualquier otra etiqueta del origen se descarta.
		d.Descripcion, _ = Resolve(nodo, "descripcion")
		d.Cantidad, _ = Resolve(nodo, "cantidad")
		d.PrecioUnitario, _ = Resolve(nodo, "precioUnitario")
		d.PrecioTotalSinImpuesto, _ = Resolve(nodo, "precioTotalSinImpuesto")
		if e.incluirDescuento {
			d.Descuento, _ = Resolve(nodo, "descuento")
		}
		d.Impuestos = e.extractImpuestos(nodo, d.PrecioTotalSinImpuesto)
		detalles = append(detalles, d)
	}
	return detalles
}

// extractImpuestos recorre <impuestos><impuesto> en orden de origen y
// calcula el precio con impuesto de cada entrada. Si la tarifa está ausente
// o el monto no es numérico, la entrada sale con monto vacío: salida
// degradada por línea, nunca falla del comprobante completo.
func (e *Extractor) extractImpuestos(detalle *etree.Element, base string) []entity.Impuesto {
	var impuestos []entity.Impuesto
	for _, nodo := range detalle.FindElements(".//impuesto") {
		imp := entity.Impuesto{}
		imp.Tarifa, _ = Resolve(nodo, "tarifa")
		if imp.Tarifa != "" && base != "" {
			if monto, err := e.tax.Compute(base, imp.Tarifa); err == nil {
				imp.PrecioConImpuesto = monto
			}
		}
		impuestos = append(impuestos, imp)
	}
	return impuestos
}
