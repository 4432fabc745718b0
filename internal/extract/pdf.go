package extract

import (
	"bytes"
	"fmt"

	"docanalyst/internal/models"
	"docanalyst/internal/util"

	"github.com/ledongthuc/pdf"
)

// Pages extracts per-page plain text from a PDF byte stream, in page order.
// Page numbers are 1-based. Pages whose text cannot be decoded contribute an
// empty page rather than failing the whole document.
func Pages(data []byte) ([]models.PageText, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	total := r.NumPage()
	out := make([]models.PageText, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		text := ""
		if !p.V.IsNull() {
			if t, err := p.GetPlainText(nil); err == nil {
				text = util.SanitizeText(t)
			}
		}
		out = append(out, models.PageText{Number: i, Text: text})
	}
	return out, nil
}
