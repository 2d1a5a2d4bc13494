package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dslipak/pdf"
)

// PDFTextLayer reads the embedded text layer of a PDF row by row.
type PDFTextLayer struct{}

func (PDFTextLayer) ExtractTextLayer(ctx context.Context, doc []byte) (text string, err error) {
	// The reader panics on some malformed documents; a fault here must
	// surface as an open failure, not crash the pipeline.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrOpen, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpen, err)
	}

	numPages := r.NumPage()
	rows := make([]string, 0, numPages*100)

	for no := 1; no <= numPages; no++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrOpen, err)
		}

		page := r.Page(no)
		pageRows, err := page.GetTextByRow()
		if err != nil {
			log.Printf("Warning: error getting text from page %d: %v", no, err)
			continue
		}

		for _, row := range pageRows {
			var builder strings.Builder
			builder.Grow(len(row.Content) * 20)

			for i, content := range row.Content {
				builder.WriteString(content.S)
				if i < len(row.Content)-1 {
					builder.WriteByte(' ')
				}
			}

			if builder.Len() > 0 {
				rows = append(rows, builder.String())
			}
		}
	}

	return strings.Join(rows, "\n"), nil
}
