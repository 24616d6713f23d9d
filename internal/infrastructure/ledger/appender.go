package ledger

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/xuri/excelize/v2"

	"github.com/DIOR27/mailbill/internal/domain"
	"github.com/DIOR27/mailbill/internal/domain/entity"
)

const (
	hojaPorDefecto = "Facturas"
	// Filas en blanco entre el contenido previo y un bloque nuevo en el
	// layout por secciones.
	separadorSecciones = 2
)

// Config del libro de facturas.
type Config struct {
	Path             string
	Sheet            string // vacío = "Facturas"
	Layout           Layout // vacío = LayoutPlano
	IncluirDescuento bool
}

// Appender anexa comprobantes al libro XLSX. No hay protección contra
// escritores concurrentes sobre el mismo archivo: el llamador procesa un
// mensaje a la vez (limitación documentada).
type Appender struct {
	cfg Config
}

// NewAppender construye el appender aplicando los valores por defecto.
func NewAppender(cfg Config) *Appender {
	if cfg.Sheet == "" {
		cfg.Sheet = hojaPorDefecto
	}
	if cfg.Layout == "" {
		cfg.Layout = LayoutPlano
	}
	return &Appender{cfg: cfg}
}

// estadoLibro es el ciclo de vida del archivo, determinado una sola vez por
// llamada: recién creado o existente con N filas ocupadas. Nunca se
// re-infiere por control de flujo de excepciones.
type estadoLibro struct {
	nuevo bool
	filas int
}

// Append agrega un comprobante al final del libro y guarda el archivo
// completo en una sola operación. Un comprobante sin detalles no toca el
// archivo: "nada que anexar" no es una falla.
//
// Las filas previas del libro, incluido su formato, quedan intactas: el
// archivo se abre tal cual está y solo se escriben celdas nuevas.
func (a *Appender) Append(c *entity.Comprobante) error {
	if c == nil {
		return domain.ErrInvalidInput
	}
	if len(c.Detalles) == 0 {
		return nil
	}

	f, estado, err := a.open()
	if err != nil {
		return err
	}
	defer f.Close()

	switch a.cfg.Layout {
	case LayoutSecciones:
		err = a.appendSecciones(f, estado, c)
	default:
		err = a.appendPlano(f, estado, c)
	}
	if err != nil {
		return err
	}

	if err := f.SaveAs(a.cfg.Path); err != nil {
		return fmt.Errorf("%w: guardar %s: %v", domain.ErrLibro, a.cfg.Path, err)
	}
	return nil
}

// open abre el libro existente o crea uno nuevo, y cuenta las filas
// ocupadas sin mutarlas.
func (a *Appender) open() (*excelize.File, estadoLibro, error) {
	f, err := excelize.OpenFile(a.cfg.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, estadoLibro{}, fmt.Errorf("%w: abrir %s: %v", domain.ErrLibro, a.cfg.Path, err)
		}
		f = excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), a.cfg.Sheet); err != nil {
			return nil, estadoLibro{}, fmt.Errorf("%w: %v", domain.ErrLibro, err)
		}
		return f, estadoLibro{nuevo: true}, nil
	}

	idx, err := f.GetSheetIndex(a.cfg.Sheet)
	if err != nil {
		return nil, estadoLibro{}, fmt.Errorf("%w: %v", domain.ErrLibro, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(a.cfg.Sheet); err != nil {
			return nil, estadoLibro{}, fmt.Errorf("%w: %v", domain.ErrLibro, err)
		}
		return f, estadoLibro{filas: 0}, nil
	}

	rows, err := f.GetRows(a.cfg.Sheet)
	if err != nil {
		return nil, estadoLibro{}, fmt.Errorf("%w: leer filas de %s: %v", domain.ErrLibro, a.cfg.Path, err)
	}
	return f, estadoLibro{filas: len(rows)}, nil
}

// appendPlano escribe una fila por línea de detalle. El encabezado se
// escribe una única vez, cuando el libro está vacío.
func (a *Appender) appendPlano(f *excelize.File, estado estadoLibro, c *entity.Comprobante) error {
	fila := estado.filas + 1
	if estado.filas == 0 {
		if err := a.writeHeader(f, fila, headerPlano(a.cfg.IncluirDescuento)); err != nil {
			return err
		}
		fila++
	}
	for _, d := range c.Detalles {
		if err := a.writeRow(f, fila, filaPlana(c, d, a.cfg.IncluirDescuento)); err != nil {
			return err
		}
		fila++
	}
	return nil
}

// appendSecciones escribe los tres bloques encabezado+datos del comprobante.
// En un libro no vacío, el bloque nuevo empieza después de exactamente dos
// filas en blanco; los encabezados se reescriben en cada corrida.
func (a *Appender) appendSecciones(f *excelize.File, estado estadoLibro, c *entity.Comprobante) error {
	fila := estado.filas + 1
	if estado.filas > 0 {
		fila += separadorSecciones
	}

	if err := a.writeHeader(f, fila, asRow(columnasEmisor)); err != nil {
		return err
	}
	if err := a.writeRow(f, fila+1, filaEmisor(c)); err != nil {
		return err
	}
	if err := a.writeHeader(f, fila+2, asRow(columnasFactura)); err != nil {
		return err
	}
	if err := a.writeRow(f, fila+3, filaFactura(c)); err != nil {
		return err
	}
	if err := a.writeHeader(f, fila+4, headerDetalleSeccion(a.cfg.IncluirDescuento)); err != nil {
		return err
	}
	fila += 5
	for _, d := range c.Detalles {
		if err := a.writeRow(f, fila, filaDetalleSeccion(d, a.cfg.IncluirDescuento)); err != nil {
			return err
		}
		fila++
	}
	return nil
}

func (a *Appender) writeRow(f *excelize.File, fila int, valores []interface{}) error {
	celda, err := excelize.CoordinatesToCellName(1, fila)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLibro, err)
	}
	if err := f.SetSheetRow(a.cfg.Sheet, celda, &valores); err != nil {
		return fmt.Errorf("%w: escribir fila %d: %v", domain.ErrLibro, fila, err)
	}
	return nil
}

// writeHeader escribe una fila de encabezado con estilo en negrilla para
// distinguirla de las filas de datos.
func (a *Appender) writeHeader(f *excelize.File, fila int, valores []interface{}) error {
	if err := a.writeRow(f, fila, valores); err != nil {
		return err
	}
	estilo, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLibro, err)
	}
	inicio, err := excelize.CoordinatesToCellName(1, fila)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLibro, err)
	}
	fin, err := excelize.CoordinatesToCellName(len(valores), fila)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLibro, err)
	}
	if err := f.SetCellStyle(a.cfg.Sheet, inicio, fin, estilo); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLibro, err)
	}
	return nil
}
