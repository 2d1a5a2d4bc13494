package pipeline

import (
	"context"
	"errors"
)

// Stage failure taxonomy. Only a terminal Failed result ever crosses the
// pipeline boundary; everything else advances the state machine internally.
var (
	// ErrOpen marks a document that cannot be parsed or opened at all.
	ErrOpen = errors.New("document cannot be opened")
	// ErrWrongPassword is the expected outcome of a single failed candidate.
	ErrWrongPassword = errors.New("wrong password")
	// ErrRecognition marks a rasterizer or OCR engine fault.
	ErrRecognition = errors.New("recognition failed")
	// ErrExhaustedCandidates means every password guess failed.
	ErrExhaustedCandidates = errors.New("all password candidates failed")
	// ErrNoText means every stage produced only empty text.
	ErrNoText = errors.New("no extractable text found")
)

// TextLayer reads the embedded text layer of a document.
type TextLayer interface {
	ExtractTextLayer(ctx context.Context, doc []byte) (string, error)
}

// Recognizer rasterizes each page and runs optical character recognition,
// concatenating page results in page order.
type Recognizer interface {
	RasterizeAndRecognize(ctx context.Context, doc []byte) (string, error)
}

// Decrypter attempts to open a protected document with one password and
// return its extracted text.
type Decrypter interface {
	OpenWithPassword(ctx context.Context, doc []byte, password string) (string, error)
}
