package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const TripDocumentFilename = "Voyager-AI-Itinerary.pdf"

const (
	pdfMargin     = 18.0
	pdfPageWidth  = 210.0
	pdfLineHeight = 5.5
)

var (
	brandPrimary = [3]int{37, 99, 235}
	brandMuted   = [3]int{100, 116, 139}
	brandDark    = [3]int{30, 41, 59}

	headingLine = regexp.MustCompile(`^[A-Z][A-Z0-9\s–\-&]+$`)
	dayLine     = regexp.MustCompile(`(?i)^Day\s+\d+$`)
)

// RenderTripDocumentPDF lays a trip document out as an A4 PDF with a brand header,
// section headings and bullet bodies.
func RenderTripDocumentPDF(content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty trip document")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Voyager AI Itinerary", true)
	pdf.SetCreator("voyager", true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(strings.ReplaceAll(s, "→", "->"))
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(brandMuted[0], brandMuted[1], brandMuted[2])
		pdf.CellFormat(0, 6, text(fmt.Sprintf("Voyager AI · page %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFillColor(brandPrimary[0], brandPrimary[1], brandPrimary[2])
	pdf.Rect(0, 0, pdfPageWidth, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(pdfMargin, 18, "Voyager AI")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(pdfMargin, 24, text("Your trip itinerary · Suggestions · Currency · Mobile · Card benefits · Language"))
	pdf.SetY(34)

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || line == "---":
			continue
		case len(line) > 2 && len(line) < 80 && headingLine.MatchString(line):
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(brandPrimary[0], brandPrimary[1], brandPrimary[2])
			pdf.MultiCell(0, 7, text(line), "", "L", false)
			pdf.Ln(1)
		case dayLine.MatchString(line):
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(brandDark[0], brandDark[1], brandDark[2])
			pdf.MultiCell(0, pdfLineHeight+1, text(line), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(brandDark[0], brandDark[1], brandDark[2])
			if strings.HasPrefix(line, "•") {
				pdf.SetX(pdfMargin + 4)
			}
			pdf.MultiCell(0, pdfLineHeight, text(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
