package invoice

import (
	"bytes"
	"fmt"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Renderer は注文から請求書PDFを描画する。
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render は全部メモリ上に描画してバイト列を返す。
// 合計は明細から再計算する。注文明細は購入時点のスナップショットなので、
// この合計は決済時にプロバイダへ送った合計と一致する。
func (r *Renderer) Render(o model.Order, items []model.OrderItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice #%d", o.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 12, "Invoice")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Order #%d", o.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, o.Email)
	pdf.Ln(6)
	pdf.Cell(0, 6, o.CreatedAt.Format("2006-01-02"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	total := decimal.Zero
	for _, it := range items {
		line := fmt.Sprintf("%s - %d x %s", it.TitleSnapshot, it.Quantity, it.UnitPriceSnapshot.StringFixed(2))
		pdf.Cell(0, 8, line)
		pdf.Ln(8)

		total = total.Add(it.UnitPriceSnapshot.Mul(decimal.NewFromInt(it.Quantity)))
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %s", total.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
