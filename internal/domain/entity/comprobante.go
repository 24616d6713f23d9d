package entity

// Comprobante representa una factura electrónica SRI ya desenvuelta y
// extraída del sobre exterior. Los montos se conservan como cadenas
// decimales tal como vienen en el XML; la conversión numérica ocurre solo
// en el cálculo de impuestos (internal/domain/sri).
type Comprobante struct {
	// Bloque del emisor (infoTributaria).
	RazonSocial     string
	NombreComercial string // opcional: algunos emisores no lo declaran
	RUC             string
	ClaveAcceso     string // clave de acceso de 49 dígitos (opcional)

	// Partes del número de factura. Cadenas de ancho fijo con ceros a la
	// izquierda; se concatenan, nunca se suman.
	Estab      string
	PtoEmi     string
	Secuencial string

	// InfoFactura contiene todos los hijos directos de <infoFactura>
	// (fechaEmision, totalSinImpuestos, importeTotal, etc.).
	InfoFactura map[string]string

	Detalles []Detalle
}

// Claves de <infoFactura> consumidas por el libro.
const (
	CampoFechaEmision      = "fechaEmision"
	CampoTotalSinImpuestos = "totalSinImpuestos"
	CampoImporteTotal      = "importeTotal"
)

// NumFactura devuelve el número completo estab+ptoEmi+secuencial.
// Concatenación de cadenas: una suma numérica colapsaría los ceros a la
// izquierda de cada segmento.
func (c *Comprobante) NumFactura() string {
	return c.Estab + c.PtoEmi + c.Secuencial
}

// Campo devuelve el valor de una clave de <infoFactura>, o cadena vacía si
// no existe (campo opcional ausente se propaga como celda en blanco).
func (c *Comprobante) Campo(nombre string) string {
	if c.InfoFactura == nil {
		return ""
	}
	return c.InfoFactura[nombre]
}

// Detalle es una línea de <detalles> del comprobante. Solo se retienen los
// campos de la lista permitida; el resto de etiquetas del origen se
// descarta en la extracción.
type Detalle struct {
	Descripcion            string
	Cantidad               string
	PrecioUnitario         string
	PrecioTotalSinImpuesto string
	Descuento              string // solo si la configuración lo habilita

	Impuestos []Impuesto
}

// Impuesto es una entrada de <impuestos><impuesto> de una línea de detalle.
type Impuesto struct {
	// Tarifa es el porcentaje tal como viene en el XML ("15", "0").
	Tarifa string
	// PrecioConImpuesto es el monto derivado base*(1+tarifa/100) con dos
	// decimales; vacío cuando la tarifa no estaba presente en el origen.
	PrecioConImpuesto string
}
