package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth    = 277.0
	minColWidth  = 20.0
	generatedFmt = "Generat: %s"
)

// The core PDF fonts only cover cp1252, so Romanian letters outside it are folded to ASCII.
var romanianFold = strings.NewReplacer(
	"ă", "a", "Ă", "A",
	"â", "a", "Â", "A",
	"î", "i", "Î", "I",
	"ș", "s", "Ș", "S", "ş", "s", "Ş", "S",
	"ț", "t", "Ț", "T", "ţ", "t", "Ţ", "T",
)

// PDFExporter renders datasets into a landscape tabular PDF.
type PDFExporter struct {
	// Footer is printed under the table when non-empty.
	Footer string
}

// NewPDFExporter constructs a PDF exporter with an optional generation footer.
func NewPDFExporter(footer string) *PDFExporter {
	return &PDFExporter{Footer: footer}
}

// ContentType reports the MIME type of rendered output.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension reports the file extension of rendered output.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render creates a PDF document with the dataset title and table body.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(romanianFold.Replace(s)) }

	widths := columnWidths(data)
	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], 8, text(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	pdf.AddPage()
	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, text(data.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	header()
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		if pdf.GetY()+7 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for i, value := range data.Record(row) {
			pdf.CellFormat(widths[i], 7, text(truncate(pdf, value, widths[i])), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if e.Footer != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, text(fmt.Sprintf(generatedFmt, e.Footer)), "", 1, "R", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths spreads the page width proportionally to the longest value in each column.
func columnWidths(data Dataset) []float64 {
	weights := make([]float64, len(data.Headers))
	total := 0.0
	for i, h := range data.Headers {
		longest := len([]rune(h))
		for _, row := range data.Rows {
			if n := len([]rune(row[h])); n > longest {
				longest = n
			}
		}
		if longest > 60 {
			longest = 60
		}
		weights[i] = float64(longest)
		total += weights[i]
	}

	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = pageWidth * w / total
		if widths[i] < minColWidth {
			widths[i] = minColWidth
		}
	}
	return widths
}

func truncate(pdf *gofpdf.Fpdf, value string, width float64) string {
	if pdf.GetStringWidth(romanianFold.Replace(value)) <= width-2 {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && pdf.GetStringWidth(romanianFold.Replace(string(runes))+"...") > width-2 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
