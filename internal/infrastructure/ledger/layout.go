// Package ledger persiste los comprobantes extraídos en un libro XLSX
// acumulativo. El libro se abre, se le anexa al final y se guarda completo;
// las filas ya escritas en corridas anteriores no se tocan.
package ledger

import "github.com/DIOR27/mailbill/internal/domain/entity"

// Layout selecciona la forma del libro. Las dos variantes conviven en
// archivos distintos; el layout de un libro no debe cambiarse entre
// corridas.
type Layout string

const (
	// LayoutPlano escribe una tabla ancha: una fila por línea de detalle
	// con cabecera + detalle + impuestos, encabezado una sola vez al crear
	// el archivo.
	LayoutPlano Layout = "plano"
	// LayoutSecciones escribe tres bloques apilados por factura (emisor,
	// factura, detalles), separados del bloque anterior por dos filas en
	// blanco, con encabezados reescritos en cada corrida.
	LayoutSecciones Layout = "secciones"
)

// Encabezado de la tabla plana. Con descuento habilitado se inserta la
// columna "Descuento" después de "Precio Total".
var columnasPlano = []string{
	"Razon Social", "Nombre Comercial", "RUC", "Num. Factura",
	"Fecha Emision", "Total", "Total IVA",
	"Descripción", "Cantidad", "Precio Unitario", "Precio Total",
	"Precio Total con IVA", "Impuesto",
}

// Encabezados de los tres bloques del layout por secciones.
var (
	columnasEmisor  = []string{"Razon Social", "Nombre Comercial", "RUC"}
	columnasFactura = []string{"Num. Factura", "Fecha Emision", "Total", "Total IVA"}
	columnasDetalle = []string{"Descripción", "Cantidad", "Precio Unitario", "Precio Total sin IVA"}
)

func headerPlano(incluirDescuento bool) []interface{} {
	out := make([]interface{}, 0, len(columnasPlano)+1)
	for _, col := range columnasPlano {
		if col == "Precio Total con IVA" && incluirDescuento {
			out = append(out, "Descuento")
		}
		out = append(out, col)
	}
	return out
}

func headerDetalleSeccion(incluirDescuento bool) []interface{} {
	out := asRow(columnasDetalle)
	if incluirDescuento {
		out = append(out, "Descuento")
	}
	return out
}

// filaPlana aplana cabecera + una línea de detalle + sus impuestos. Cada
// impuesto aporta el par (monto con impuesto, tarifa) en orden de origen;
// una línea sin impuestos deja el par en blanco para mantener el ancho.
func filaPlana(c *entity.Comprobante, d entity.Detalle, incluirDescuento bool) []interface{} {
	fila := []interface{}{
		c.RazonSocial,
		c.NombreComercial,
		c.RUC,
		c.NumFactura(),
		c.Campo(entity.CampoFechaEmision),
		c.Campo(entity.CampoTotalSinImpuestos),
		c.Campo(entity.CampoImporteTotal),
		d.Descripcion,
		d.Cantidad,
		d.PrecioUnitario,
		d.PrecioTotalSinImpuesto,
	}
	if incluirDescuento {
		fila = append(fila, d.Descuento)
	}
	if len(d.Impuestos) == 0 {
		return append(fila, "", "")
	}
	for _, imp := range d.Impuestos {
		fila = append(fila, imp.PrecioConImpuesto, imp.Tarifa)
	}
	return fila
}

func filaEmisor(c *entity.Comprobante) []interface{} {
	return []interface{}{c.RazonSocial, c.NombreComercial, c.RUC}
}

func filaFactura(c *entity.Comprobante) []interface{} {
	return []interface{}{
		c.NumFactura(),
		c.Campo(entity.CampoFechaEmision),
		c.Campo(entity.CampoTotalSinImpuestos),
		c.Campo(entity.CampoImporteTotal),
	}
}

func filaDetalleSeccion(d entity.Detalle, incluirDescuento bool) []interface{} {
	fila := []interface{}{d.Descripcion, d.Cantidad, d.PrecioUnitario, d.PrecioTotalSinImpuesto}
	if incluirDescuento {
		fila = append(fila, d.Descuento)
	}
	return fila
}

func asRow(cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}
