package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFDecrypter opens password-protected PDFs with one candidate password and
// reads the text layer of the decrypted document.
type PDFDecrypter struct {
	text TextLayer
}

func NewPDFDecrypter(text TextLayer) *PDFDecrypter {
	if text == nil {
		text = PDFTextLayer{}
	}
	return &PDFDecrypter{text: text}
}

func (d *PDFDecrypter) OpenWithPassword(ctx context.Context, doc []byte, password string) (string, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var decrypted bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(doc), &decrypted, conf); err != nil {
		// pdfcpu does not distinguish a wrong password from a broken
		// file in a stable way; both mean "keep trying candidates".
		return "", fmt.Errorf("%w: %v", ErrWrongPassword, err)
	}

	return d.text.ExtractTextLayer(ctx, decrypted.Bytes())
}
