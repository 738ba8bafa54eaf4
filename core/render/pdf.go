package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/issueboss/core"
)

// PDFRenderer renders a Document as a printable issue list.
type PDFRenderer struct {
	// Heading is printed at the top of the first page.
	Heading string
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(heading string) *PDFRenderer {
	return &PDFRenderer{Heading: heading}
}

// Render converts the Document into PDF bytes.
func (r *PDFRenderer) Render(doc core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if r.Heading != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(r.Heading), "", "L", false)
		pdf.Ln(4)
	}

	if len(doc.Metadata) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		for _, k := range doc.Metadata.Keys() {
			pdf.MultiCell(0, 5, tr(k+": "+doc.Metadata[k]), "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	for i, issue := range doc.Issues {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, issue.Title)), "", "L", false)
		pdf.Ln(1)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(issue.Description), "", "L", false)

		if len(issue.Metadata) > 0 {
			pdf.Ln(1)
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			for _, k := range issue.Metadata.Keys() {
				pdf.MultiCell(0, 4.5, tr(k+" = "+issue.Metadata[k]), "", "L", true)
			}
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
