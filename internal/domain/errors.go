package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Política de propagación: los errores de estructura y de parseo se tratan
// por comprobante (se registra y se continúa con el siguiente mensaje); los
// errores del libro son fatales para la corrida, porque un libro a medio
// escribir es peor que una falla visible.
var (
	// ErrNodoRequerido indica que falta un nodo ancla obligatorio
	// (por ejemplo <comprobante> en el sobre exterior).
	ErrNodoRequerido = errors.New("nodo requerido ausente en el comprobante")

	// ErrComprobanteIlegible indica que el XML interno no pudo parsearse
	// después de quitar CDATA/entidades. Se envuelve con el diagnóstico
	// del parser vía %w.
	ErrComprobanteIlegible = errors.New("comprobante interno ilegible")

	// ErrLibro agrupa fallas de E/S sobre el libro de facturas
	// (no se puede abrir, leer o guardar el archivo XLSX).
	ErrLibro = errors.New("error de E/S en el libro de facturas")

	// ErrAdjuntoSinXML indica que el mensaje no trae ningún adjunto .xml;
	// el mensaje queda sin marcar como leído.
	ErrAdjuntoSinXML = errors.New("el mensaje no contiene adjuntos XML")

	ErrInvalidInput = errors.New("entrada inválida")
)
