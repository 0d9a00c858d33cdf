package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"taiz-marketplace-server/models"
)

// BuildBookingsWorkbook renders the admin bookings export as an XLSX
// workbook.
func BuildBookingsWorkbook(bookings []models.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Client", "Phone", "Service", "Start", "End", "People", "Status", "Created"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, b := range bookings {
		values := []interface{}{
			b.ID,
			b.Client.FullName,
			b.Client.Phone,
			b.Service.Name,
			b.StartDate.Format("2006-01-02"),
			b.EndDate.Format("2006-01-02"),
			b.PeopleCount,
			string(b.Status),
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
