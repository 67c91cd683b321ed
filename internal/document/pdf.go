package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ewaste-tracker/internal/domain/request"
	"ewaste-tracker/internal/domain/user"
)

// Renderer produces documents as pure functions of their inputs.
type Renderer interface {
	RequestReport(req *request.Request) ([]byte, error)
	Certificate(u *user.User) ([]byte, error)
}

// PDFRenderer renders the submission report and the appreciation certificate.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) RequestReport(req *request.Request) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "E-Waste Submission Report")
	pdf.Ln(16)

	remarks := "None"
	if req.Remarks != nil && *req.Remarks != "" {
		remarks = *req.Remarks
	}

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Request ID: %s", req.ID),
		fmt.Sprintf("Status: %s", req.Status),
		fmt.Sprintf("Device: %s", req.DeviceType),
		fmt.Sprintf("Brand / Model: %s %s", req.Brand, req.Model),
		fmt.Sprintf("Condition: %s", req.Condition),
		fmt.Sprintf("Quantity: %d", req.Quantity),
		fmt.Sprintf("Pickup Address: %s", req.PickupAddress),
		fmt.Sprintf("Remarks: %s", remarks),
		fmt.Sprintf("Submitted: %s", req.CreatedAt.Format("02 Jan 2006")),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render request report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) Certificate(u *user.User) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 30, "Certificate of Appreciation", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 12, "This certificate is proudly presented to", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 16, u.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, "for outstanding contribution to responsible e-waste recycling.", "", 1, "C", false, 0, "")
	pdf.Ln(10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Issued on %s", time.Now().Format("02 January 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Smart e-Waste Collection Team", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
