// Package pdf exporta el resumen financiero del bar a PDF (A4).
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del bar            │  Fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INGRESOS: total / saldo / efectivo / depósitos / riqueza   │
//	│  INVENTARIO: valor de stock / beneficio esperado            │
//	│  BENEFICIO: real (costo actual) / real (costo en venta)     │
//	│  CAJA Y USUARIOS: efectivo / Σ saldos / usuarios / socios   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// SummaryReport implementa analytics.SummaryRenderer usando Maroto v2.
type SummaryReport struct {
	title string
}

// NewSummaryReport construye el generador; title suele ser el nombre de la app.
func NewSummaryReport(title string) *SummaryReport {
	return &SummaryReport{title: title}
}

type figure struct {
	label string
	value string
	warn  bool
}

// RenderSummary genera el PDF y devuelve sus bytes.
func (g *SummaryReport) RenderSummary(s dto.FinancialSummaryDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Resumen financiero", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(g.title, s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(section("INGRESOS", []figure{
		{"Ingresos totales", money(s.TotalRevenue), false},
		{"Pagados con saldo", money(s.BalanceRevenue), false},
		{"Pagados en efectivo", money(s.CashRevenue), false},
		{"Depósitos", money(s.TotalDeposits), false},
		{"Riqueza total (depósitos + efectivo)", money(s.TotalWealth), false},
		{"Pedidos", strconv.Itoa(s.TotalOrders), false},
	})...)
	m.AddRows(section("INVENTARIO", []figure{
		{"Valor del stock (precio de compra)", money(s.TotalStockValue), false},
		{"Beneficio esperado (precio socio)", money(s.ExpectedProfit), false},
		{"Productos activos", strconv.Itoa(s.TotalProducts), false},
	})...)
	m.AddRows(section("BENEFICIO", []figure{
		{"Beneficio real (costo actual)", money(s.ActualProfit), s.ActualProfit.IsNegative()},
		{"Beneficio real (costo en la venta)", money(s.ActualProfitAtSaleCost), s.ActualProfitAtSaleCost.IsNegative()},
	})...)
	m.AddRows(section("CAJA Y USUARIOS", []figure{
		{"Efectivo disponible", money(s.AvailableCash), false},
		{"Suma de saldos", money(s.UserBalanceSum), s.UserBalanceSum.IsNegative()},
		{"Usuarios", strconv.Itoa(s.TotalUsers), false},
		{"Socios", strconv.Itoa(s.TotalMembers), false},
	})...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title string, s dto.FinancialSummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Resumen financiero", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+s.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func section(title string, figures []figure) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(7).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, f := range figures {
		valueProps := props.Text{Size: 9, Align: align.Right, Top: 1}
		if f.warn {
			valueProps.Color = colorRed
			valueProps.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(f.label, props.Text{Size: 9, Top: 1, Left: 2})),
			col.New(4).Add(text.New(f.value, valueProps)),
		))
	}
	rows = append(rows, line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	return rows
}

// money formatea con 2 decimales y separador de miles: 1234.5 -> "1.234,50 €".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac + " €"
	if neg {
		return "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles: "1000000" -> "1.000.000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
