package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Runner lets tests stub the external rasterizer and OCR binaries.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// OCRConfig describes the external rendering and recognition tooling. All
// engine settings travel here explicitly, never through process-wide state.
type OCRConfig struct {
	Pdftoppm  string // rasterizer binary, default "pdftoppm"
	Tesseract string // OCR binary, default "tesseract"
	Language  string // default "eng"
	DPI       int    // rasterization DPI, default 300
	PSM       int    // tesseract page segmentation mode, default 6
	MaxPages  int    // 0 = no limit
}

func (c *OCRConfig) fillDefaults() {
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.Language == "" {
		c.Language = "eng"
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	if c.PSM <= 0 {
		c.PSM = 6
	}
}

// TesseractRecognizer rasterizes each page with pdftoppm and recognizes it
// with tesseract, concatenating page results in page order.
type TesseractRecognizer struct {
	cfg    OCRConfig
	runner Runner
}

func NewTesseractRecognizer(cfg OCRConfig) *TesseractRecognizer {
	cfg.fillDefaults()
	return &TesseractRecognizer{cfg: cfg, runner: execRunner{}}
}

// NewTesseractRecognizerWithRunner is the test seam for stubbing the
// external binaries.
func NewTesseractRecognizerWithRunner(cfg OCRConfig, runner Runner) *TesseractRecognizer {
	cfg.fillDefaults()
	return &TesseractRecognizer{cfg: cfg, runner: runner}
}

func (t *TesseractRecognizer) RasterizeAndRecognize(ctx context.Context, doc []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "kashf-ocr-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecognition, err)
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			log.Printf("Warning: failed to remove temp dir %q: %v", tmpDir, rerr)
		}
	}()

	src := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(src, doc, 0o600); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	// pdftoppm -r <dpi> -png <doc.pdf> <tmp/page>
	prefix := filepath.Join(tmpDir, "page")
	if _, errb, err := t.runner.Run(ctx, t.cfg.Pdftoppm, "-r", strconv.Itoa(t.cfg.DPI), "-png", src, prefix); err != nil {
		return "", fmt.Errorf("%w: %v: %s", ErrRecognition, err, truncate(string(errb), 8<<10))
	}

	// pdftoppm writes page-1.png, page-2.png, ...
	pages, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(pages)
	if t.cfg.MaxPages > 0 && len(pages) > t.cfg.MaxPages {
		pages = pages[:t.cfg.MaxPages]
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("%w: rasterizer produced no pages", ErrRecognition)
	}

	var b strings.Builder
	for _, page := range pages {
		// tesseract <page.png> stdout -l <lang> --psm <psm>
		out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, page, "stdout",
			"-l", t.cfg.Language, "--psm", strconv.Itoa(t.cfg.PSM))
		if err != nil {
			log.Printf("Warning: tesseract failed on %s: %v: %s", filepath.Base(page), err, truncate(string(errb), 1<<10))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.Write(bytes.TrimSpace(out))
	}

	return b.String(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
