package mail

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// wordDecoder decodifica asuntos y nombres de archivo RFC 2047 en charsets
// distintos de UTF-8 (los clientes de escritorio en español suelen enviar
// ISO-8859-1 o Windows-1252).
var wordDecoder = &mime.WordDecoder{
	CharsetReader: func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("mail: charset %q no soportado: %w", charset, err)
		}
		return enc.NewDecoder().Reader(input), nil
	},
}

// extractXMLAttachments recorre el árbol MIME del mensaje y recolecta los
// adjuntos cuyo nombre termina en .xml. Los demás adjuntos se ignoran.
func extractXMLAttachments(seqNum uint32, body io.Reader) ([]Adjunto, error) {
	msg, err := mail.ReadMessage(body)
	if err != nil {
		return nil, fmt.Errorf("mail: leer mensaje %d: %w", seqNum, err)
	}
	asunto := decodeHeader(msg.Header.Get("Subject"))
	if asunto == "" {
		asunto = "Sin Asunto"
	}

	var adjuntos []Adjunto
	err = walkParts(msg.Header.Get("Content-Type"), msg.Body, func(archivo string, datos []byte) {
		adjuntos = append(adjuntos, Adjunto{
			SeqNum:  seqNum,
			Asunto:  asunto,
			Archivo: archivo,
			Datos:   datos,
		})
	})
	if err != nil {
		return nil, err
	}
	return adjuntos, nil
}

// walkParts desciende recursivamente por las partes multipart y entrega los
// adjuntos .xml ya decodificados según su Content-Transfer-Encoding.
func walkParts(contentType string, r io.Reader, emit func(string, []byte)) error {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		// Un mensaje sin partes no trae adjuntos que extraer.
		return nil
	}

	mr := multipart.NewReader(r, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("mail: recorrer partes MIME: %w", err)
		}

		partType := part.Header.Get("Content-Type")
		if mt, _, mtErr := mime.ParseMediaType(partType); mtErr == nil && strings.HasPrefix(mt, "multipart/") {
			if err := walkParts(partType, part, emit); err != nil {
				return err
			}
			continue
		}

		archivo := decodeHeader(part.FileName())
		if !esXML(archivo) {
			continue
		}
		datos, err := io.ReadAll(decodeBody(part, part.Header.Get("Content-Transfer-Encoding")))
		if err != nil {
			return fmt.Errorf("mail: decodificar adjunto %s: %w", archivo, err)
		}
		emit(archivo, datos)
	}
}

// decodeBody aplica la codificación de transferencia de la parte.
func decodeBody(r io.Reader, transferEncoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}

func decodeHeader(s string) string {
	decoded, err := wordDecoder.DecodeHeader(s)
	if err != nil {
		return s
	}
	return decoded
}

func esXML(archivo string) bool {
	return strings.HasSuffix(strings.ToLower(archivo), ".xml")
}
