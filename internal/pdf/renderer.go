// Package pdf renders printable ticket documents for finalized orders.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

type TicketRenderer struct{}

func NewTicketRenderer() *TicketRenderer {
	return &TicketRenderer{}
}

// Render produces one page per ticket, each stamped with the order
// reference so cinema staff can trace a printout back to its order.
func (r *TicketRenderer) Render(orderReference string, lines []domain.TicketDocumentLine) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A5", "")
	doc.SetTitle(fmt.Sprintf("Cinema tickets %s", orderReference), false)

	for _, line := range lines {
		doc.AddPage()

		doc.SetFont("Helvetica", "B", 20)
		doc.CellFormat(0, 12, line.MovieTitle, "", 1, "C", false, 0, "")

		doc.SetFont("Helvetica", "", 12)
		doc.Ln(4)
		doc.CellFormat(0, 8, fmt.Sprintf("Room: %s", line.RoomName), "", 1, "L", false, 0, "")
		doc.CellFormat(0, 8, fmt.Sprintf("Date: %s", line.StartTime.Format("Mon, 02 Jan 2006 15:04")), "", 1, "L", false, 0, "")
		doc.CellFormat(0, 8, fmt.Sprintf("Row %d, Seat %d", line.SeatRow, line.SeatNumber), "", 1, "L", false, 0, "")
		doc.CellFormat(0, 8, fmt.Sprintf("Ticket: %s", line.TicketType), "", 1, "L", false, 0, "")
		doc.CellFormat(0, 8, fmt.Sprintf("Price: %s", line.Price.StringFixed(2)), "", 1, "L", false, 0, "")

		doc.Ln(8)
		doc.SetFont("Helvetica", "I", 9)
		doc.CellFormat(0, 6, fmt.Sprintf("Order %s", orderReference), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer

	err := doc.Output(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to render ticket PDF: %w", err)
	}

	return buf.Bytes(), nil
}
