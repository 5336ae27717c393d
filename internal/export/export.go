// Package export writes reports as CSV for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inovacc/fieldlog/internal/ledger"
	"github.com/inovacc/fieldlog/internal/model"
)

// Header is the first CSV row.
var Header = []string{
	"ID", "Fecha", "Técnico", "Num Obra", "Entrada", "Salida",
	"Vehículo", "Conductor", "Desc. Trabajo",
	"Gasto Comida", "Gasto Gasolina", "Gasto Parking", "Gasto Otros", "Desc. Otros", "Imagenes",
}

var flatten = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// WriteCSV writes the header and one row per report.
func WriteCSV(w io.Writer, reports []model.WorkReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range reports {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("write report %s: %w", r.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func row(r model.WorkReport) []string {
	driver := "NO"
	if r.IsDriver {
		driver = "SI"
	}

	return []string{
		r.ID,
		r.Date,
		r.Technician,
		r.ProjectNum,
		r.StartTime,
		r.EndTime,
		r.Vehicle,
		driver,
		flatten.Replace(r.Description),
		amount(r.Expenses.Food),
		amount(r.Expenses.Gas),
		amount(r.Expenses.Parking),
		amount(r.Expenses.Others),
		flatten.Replace(r.Expenses.OthersDesc),
		strings.Join(r.ImageNames, " | "),
	}
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename names an export after its filter, e.g.
// partes_trabajo_JuanPérez_10001_2024-05-02.csv.
func Filename(f ledger.Filter) string {
	var b strings.Builder

	b.WriteString("partes_trabajo")

	if f.Technician != "" {
		b.WriteString("_")
		b.WriteString(strings.Join(strings.Fields(f.Technician), ""))
	}

	if code := f.ProjectCode(); code != "" {
		b.WriteString("_")
		b.WriteString(code)
	}

	if f.Date != "" {
		b.WriteString("_")
		b.WriteString(f.Date)
	}

	b.WriteString(".csv")

	return b.String()
}
