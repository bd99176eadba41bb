package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Receipt holds the fields printed on a purchase receipt.
type Receipt struct {
	NamaProduk string
	Jumlah     int
	TotalHarga int64
	Status     string
}

// RenderReceipt builds the struk PDF. A nil receipt yields a structurally
// valid empty document, matching the behavior for unknown purchase ids.
func RenderReceipt(r *Receipt) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	if r != nil {
		doc.SetFont("Helvetica", "B", 18)
		doc.Cell(0, 10, "STRUK PEMBELIAN")
		doc.Ln(14)

		doc.SetFont("Helvetica", "", 12)
		for _, line := range []string{
			fmt.Sprintf("Produk : %s", r.NamaProduk),
			fmt.Sprintf("Jumlah : %d", r.Jumlah),
			fmt.Sprintf("Total  : Rp %d", r.TotalHarga),
			fmt.Sprintf("Status : %s", r.Status),
		} {
			doc.Cell(0, 8, line)
			doc.Ln(8)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
