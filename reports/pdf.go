package reports

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 36.0
	pdfFont       = "Helvetica"
	pdfBodySize   = 9.0
	pdfHeaderSize = 10.0
	pdfRowHeight  = 16.0
	pdfLineHeight = 12.0
)

// PDFWriter lays out tabular sections as tables and free text sections as
// paragraph blocks on US letter pages.
type PDFWriter struct {
	// NoCompression keeps page streams readable, tests use it.
	NoCompression bool
}

func (PDFWriter) ContentType() string {
	return "application/pdf"
}

func (pw PDFWriter) Write(w io.Writer, r *Report) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetCompression(!pw.NoCompression)
	pdf.SetTitle(r.Title, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "B", 20)
	pdf.CellFormat(0, 28, tr(r.Title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	caption := r.Generated()
	if dr := r.DateRange(); dr != "" {
		caption += " | " + dr
	}
	pdf.SetFont(pdfFont, "", pdfBodySize)
	pdf.CellFormat(0, pdfLineHeight, tr(caption), "", 1, "L", false, 0, "")
	pdf.Ln(18)

	for i := range r.Sections {
		s := &r.Sections[i]
		writeSectionTitle(pdf, tr, s.Title)
		switch s.Layout {
		case LayoutBlocks:
			writeBlocks(pdf, tr, s)
		default:
			writeTable(pdf, tr, s)
		}
		pdf.Ln(18)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("error rendering pdf: %w", err)
	}
	return pdf.Output(w)
}

func writeSectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont(pdfFont, "B", 14)
	pdf.SetTextColor(brandHeader.R, brandHeader.G, brandHeader.B)
	pdf.CellFormat(0, 20, tr(title), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func writeTable(pdf *fpdf.Fpdf, tr func(string) string, s *Section) {
	var cols []int
	for i, col := range s.Columns {
		if !col.CSVOnly {
			cols = append(cols, i)
		}
	}

	headerSize, bodySize := pdfHeaderSize, pdfBodySize
	if s.FontSize > 0 {
		bodySize = s.FontSize
		headerSize = s.FontSize + 1
	}

	pdf.SetDrawColor(211, 211, 211)
	pdf.SetFillColor(s.HeaderFill.R, s.HeaderFill.G, s.HeaderFill.B)
	pdf.SetTextColor(s.HeaderText.R, s.HeaderText.G, s.HeaderText.B)
	pdf.SetFont(pdfFont, "B", headerSize)
	for _, i := range cols {
		col := s.Columns[i]
		pdf.CellFormat(col.Width, pdfRowHeight+4, fit(pdf, tr(col.Header), col.Width), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(pdfFont, "", bodySize)
	for _, row := range s.Rows {
		for _, i := range cols {
			col := s.Columns[i]
			value := truncate(row[i].PDFText(), col.MaxLen)
			if value == "" {
				value = "-"
			}
			pdf.CellFormat(col.Width, pdfRowHeight, fit(pdf, tr(value), col.Width), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writeBlocks(pdf *fpdf.Fpdf, tr func(string) string, s *Section) {
	for _, row := range s.Rows {
		var heading, suffix, body string
		var lines []string
		for i, col := range s.Columns {
			value := truncate(row[i].PDFText(), col.MaxLen)
			switch col.Block {
			case BlockHeading:
				heading = value
			case BlockHeadingSuffix:
				suffix = value
			case BlockLine:
				if value != "" {
					lines = append(lines, col.Header+": "+value)
				}
			case BlockBody:
				body = value
			}
		}
		if body != "" {
			lines = append(lines, body)
		}

		pdf.SetFont(pdfFont, "B", pdfBodySize)
		pdf.Write(pdfLineHeight, tr(heading))
		pdf.SetFont(pdfFont, "", pdfBodySize)
		if suffix != "" {
			pdf.Write(pdfLineHeight, tr(" - "+suffix))
		}
		pdf.Ln(pdfLineHeight)
		for _, line := range lines {
			pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
		}
		pdf.Ln(pdfLineHeight)
	}
}

// truncate cuts s to at most n characters. n <= 0 means no limit.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// fit shortens s with an ellipsis until it fits the cell width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	const padding = 4
	if pdf.GetStringWidth(s)+padding <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...")+padding > width {
		s = strings.TrimRightFunc(s[:len(s)-1], func(r rune) bool { return r == ' ' })
	}
	return s + "..."
}
