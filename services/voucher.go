package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"taiz-marketplace-server/config"
	"taiz-marketplace-server/models"
)

const voucherDateLayout = "2006-01-02"

// BuildVoucherPDF renders the printable proof-of-booking document for an
// approved booking. The caller is responsible for checking the status.
func BuildVoucherPDF(booking *models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Booking Voucher #%d", booking.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, config.AppConfig.Org.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Booking Voucher", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	row("Booking ID:", fmt.Sprintf("%d", booking.ID))
	row("Client:", booking.Client.FullName)
	row("Phone:", booking.Client.Phone)
	row("Service:", booking.Service.Name)
	if booking.Unit != nil {
		row("Unit:", booking.Unit.Name)
	}
	row("From:", booking.StartDate.Format(voucherDateLayout))
	row("To:", booking.EndDate.Format(voucherDateLayout))
	row("People:", fmt.Sprintf("%d", booking.PeopleCount))
	row("Status:", string(booking.Status))

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Present this voucher on arrival.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
