// Package extractor ties the document pipeline and field extraction
// together into one statement-to-facts service.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/nbakri/kashf/extractor/facts"
	"github.com/nbakri/kashf/extractor/pipeline"
	"github.com/spf13/viper"
)

// Output is the result of processing one document.
type Output struct {
	Source     string                 `json:"source"`
	Extraction pipeline.Result        `json:"extraction"`
	Facts      *common.FinancialFacts `json:"facts,omitempty"`
}

// Service runs documents through extraction and field parsing.
type Service struct {
	pipeline *pipeline.Pipeline
	facts    *facts.Extractor
}

// NewService builds a service from the loaded configuration, with the real
// PDF, decryption and OCR capabilities attached.
func NewService() *Service {
	ocrCfg := pipeline.OCRConfig{
		Pdftoppm:  viper.GetString("ocr.pdftoppm"),
		Tesseract: viper.GetString("ocr.tesseract"),
		Language:  viper.GetString("ocr.language"),
		DPI:       viper.GetInt("ocr.dpi"),
		PSM:       viper.GetInt("ocr.psm"),
		MaxPages:  viper.GetInt("ocr.max_pages"),
	}
	pipeCfg := pipeline.Config{
		StageTimeout:  time.Duration(viper.GetInt("pipeline.stage_timeout_seconds")) * time.Second,
		TrialWorkers:  viper.GetInt("pipeline.trial_workers"),
		MaxCandidates: viper.GetInt("pipeline.max_candidates"),
	}

	textLayer := pipeline.PDFTextLayer{}
	pipe := pipeline.New(
		textLayer,
		pipeline.NewTesseractRecognizer(ocrCfg),
		pipeline.NewPDFDecrypter(textLayer),
		pipeCfg,
	)
	return NewServiceWith(pipe, facts.New())
}

// NewServiceWith wires a service from explicit collaborators.
func NewServiceWith(pipe *pipeline.Pipeline, fieldExtractor *facts.Extractor) *Service {
	return &Service{pipeline: pipe, facts: fieldExtractor}
}

// ExtractDocument runs one document through the pipeline and, on success,
// through the field extractor.
func (s *Service) ExtractDocument(ctx context.Context, doc common.RawDocument, profile common.CustomerProfile) Output {
	out := Output{Extraction: s.pipeline.Extract(ctx, doc, profile)}
	if out.Extraction.Kind == pipeline.Failed {
		return out
	}

	cleaned := common.CleanText(out.Extraction.Text)
	extracted := s.facts.FromText(cleaned)
	out.Facts = &extracted
	return out
}

// ExtractFile reads a document from disk and processes it.
func (s *Service) ExtractFile(ctx context.Context, path string, profile common.CustomerProfile) (Output, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Output{}, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := common.RawDocument{Bytes: content, MediaType: "application/pdf"}
	out := s.ExtractDocument(ctx, doc, profile)
	out.Source = filepath.Base(path)
	return out, nil
}

// ExecuteAgainstPath processes a file or every file in a directory and
// prints the results as JSON on stdout.
func ExecuteAgainstPath(ctx context.Context, path string, profile common.CustomerProfile) {
	service := NewService()

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		result := []Output{}

		log.Println("📂 Scanning ", path)
		entries, err := os.ReadDir(path)
		if err != nil {
			log.Fatal(err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			log.Println("\t📄 Extracting facts from ", e.Name())
			out, err := service.ExtractFile(ctx, filepath.Join(path, e.Name()), profile)
			if err != nil {
				log.Println("\t⚠️ ", err)
				continue
			}
			result = append(result, out)
		}

		asJSON, _ := json.Marshal(result)
		fmt.Println(string(asJSON))
	} else {
		log.Println("📄 Scanning ", path)
		out, err := service.ExtractFile(ctx, path, profile)
		if err != nil {
			log.Println("⚠️ ", err)
			emptyJSON := struct{}{}
			jsonBytes, _ := json.Marshal(emptyJSON)
			fmt.Println(string(jsonBytes))
			return
		}

		asJSON, _ := json.Marshal(out)
		fmt.Println(string(asJSON))
	}
}
