package infra

// pdf.go — order invoice generation using go-pdf/fpdf. The invoice is attached
// to the order confirmation email and downloadable by admins. Output file is
// saved to storagePath/invoice_{number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"boskoback/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF writes an A4 invoice for an order and returns the path to
// the generated file. storagePath is created if needed.
func GenerateInvoicePDF(order *model.Order, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%d.pdf", order.Number)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "BOSKO", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Invoice #%d", order.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, order.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Customer ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Billed to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, order.CustomerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, order.CustomerEmail, "", 1, "L", false, 0, "")
	if addr := order.ShippingAddress; addr != nil {
		pdf.CellFormat(contentW, 5, addr.Street, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, fmt.Sprintf("%s, %s %s", addr.City, addr.State, addr.PostalCode), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, addr.Country, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.50 // product
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.18 // unit price
	col4 := contentW * 0.18 // subtotal

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(col1, 6, item.ProductName, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, item.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3
	pdf.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, order.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, order.Tax.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Shipping", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, order.Shipping.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, order.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Payment method: %s", order.PaymentMethod), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write invoice: %w", err)
	}
	return filePath, nil
}
