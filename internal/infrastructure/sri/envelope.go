package sri

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/DIOR27/mailbill/internal/domain"
)

// Nodo ancla del sobre exterior que contiene el comprobante interno.
const nodoComprobante = "comprobante"

var cdataMarkers = regexp.MustCompile(`<!\[CDATA\[|\]\]>`)

// Solo se decodifican los ángulos escapados: un UnescapeString completo
// convertiría "&amp;" de una razón social en un '&' suelto que rompe el
// parseo posterior.
var entityReplacer = strings.NewReplacer("&lt;", "<", "&gt;", ">")

// Unwrap extrae el comprobante interno del sobre exterior: localiza el nodo
// <comprobante>, quita los delimitadores CDATA y las entidades escapadas
// (&lt;/&gt;) según haga falta, y parsea el resultado como XML.
//
// Ambas transformaciones son idempotentes y pueden necesitarse las dos a la
// vez: depende del cliente de correo que produjo el adjunto. Si el XML
// interno no parsea, el error envuelve ErrComprobanteIlegible con el
// diagnóstico del parser; es recuperable por mensaje, nunca fatal.
func Unwrap(rawText string) (*etree.Document, error) {
	outer := etree.NewDocument()
	if err := outer.ReadFromString(rawText); err != nil {
		return nil, fmt.Errorf("%w: sobre exterior: %v", domain.ErrComprobanteIlegible, err)
	}
	root := outer.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: sobre exterior sin raíz", domain.ErrComprobanteIlegible)
	}

	nodo, err := RequireElement(root, nodoComprobante)
	if err != nil {
		return nil, err
	}

	inner := normalizeInner(nodo.Text())
	doc := etree.NewDocument()
	if err := doc.ReadFromString(inner); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrComprobanteIlegible, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: contenido de <%s> vacío", domain.ErrComprobanteIlegible, nodoComprobante)
	}
	return doc, nil
}

// normalizeInner deja el texto del nodo listo para parsear. El orden cubre
// los tres casos observados: CDATA plano, entidades planas y CDATA que a su
// vez llegó escapado.
func normalizeInner(texto string) string {
	s := strings.TrimSpace(texto)
	if strings.Contains(s, "&lt;") {
		s = entityReplacer.Replace(s)
	}
	s = cdataMarkers.ReplaceAllString(s, "")
	if strings.Contains(s, "&lt;") {
		s = entityReplacer.Replace(s)
	}
	return strings.TrimSpace(s)
}
