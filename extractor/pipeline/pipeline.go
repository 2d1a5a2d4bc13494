// Package pipeline turns a raw statement document of unknown encoding state
// into extracted text. It degrades in strict order: embedded text layer,
// optical recognition, credential recovery from profile-derived password
// guesses, then one last recognition attempt on the original bytes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/nbakri/kashf/extractor/passwords"
	"golang.org/x/sync/errgroup"
)

// ResultKind identifies which stage produced the text.
type ResultKind string

const (
	PlainText      ResultKind = "plain_text"
	DecryptedText  ResultKind = "decrypted_text"
	RecognizedText ResultKind = "recognized_text"
	Failed         ResultKind = "failed"
)

// Result is the single outcome of one pipeline invocation. Failure is an
// explicit variant, never an escaping error.
type Result struct {
	Kind         ResultKind `json:"kind"`
	Text         string     `json:"text,omitempty"`
	PasswordUsed string     `json:"password_used,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	Err          error      `json:"-"`
}

// Config bounds the pipeline's blocking stages.
type Config struct {
	// StageTimeout caps each blocking stage attempt. A timed-out stage is a
	// hard failure for that stage and the state machine advances. Zero
	// means unbounded.
	StageTimeout time.Duration
	// TrialWorkers sets how many password candidates are tried in
	// parallel. Values below 2 keep the trials sequential.
	TrialWorkers int
	// MaxCandidates caps how many password guesses are attempted.
	// Zero tries the full generated list.
	MaxCandidates int
}

// Pipeline holds the collaborator capabilities. It keeps no state between
// documents; one instance is safe for concurrent use.
type Pipeline struct {
	text TextLayer
	ocr  Recognizer
	dec  Decrypter
	cfg  Config
}

func New(text TextLayer, ocr Recognizer, dec Decrypter, cfg Config) *Pipeline {
	return &Pipeline{text: text, ocr: ocr, dec: dec, cfg: cfg}
}

// Extract produces exactly one Result for the document. Collaborator faults
// are caught at each stage boundary and converted into the next stage's
// trigger condition.
func (p *Pipeline) Extract(ctx context.Context, doc common.RawDocument, profile common.CustomerProfile) Result {
	text, err := p.runStage(ctx, doc.Bytes, p.text.ExtractTextLayer)
	if err == nil {
		if strings.TrimSpace(text) != "" {
			return Result{Kind: PlainText, Text: text}
		}

		// Opened fine but carried no text layer, likely a scanned image.
		recognized, rerr := p.runStage(ctx, doc.Bytes, p.ocr.RasterizeAndRecognize)
		if rerr == nil {
			if strings.TrimSpace(recognized) != "" {
				return Result{Kind: RecognizedText, Text: recognized}
			}
			return failed(ErrNoText)
		}
		err = fmt.Errorf("%w: %v", ErrRecognition, rerr)
	}

	// Genuine open or recognition fault: the document is probably
	// encrypted. Walk the ranked candidate list.
	candidates := passwords.Candidates(profile)
	if p.cfg.MaxCandidates > 0 && len(candidates) > p.cfg.MaxCandidates {
		candidates = candidates[:p.cfg.MaxCandidates]
	}
	log.Printf("\t🔑 Trying %d password candidates", len(candidates))
	if text, password, ok := p.tryCandidates(ctx, doc.Bytes, candidates); ok {
		return Result{Kind: DecryptedText, Text: text, PasswordUsed: password}
	}

	// Last resort: recognition on the original bytes.
	recognized, rerr := p.runStage(ctx, doc.Bytes, p.ocr.RasterizeAndRecognize)
	if rerr == nil && strings.TrimSpace(recognized) != "" {
		return Result{Kind: RecognizedText, Text: recognized}
	}

	return failed(errors.Join(err, ErrExhaustedCandidates))
}

func failed(err error) Result {
	return Result{Kind: Failed, Reason: err.Error(), Err: err}
}

func (p *Pipeline) runStage(ctx context.Context, doc []byte, fn func(context.Context, []byte) (string, error)) (string, error) {
	if p.cfg.StageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.StageTimeout)
		defer cancel()
	}
	return fn(ctx, doc)
}

// tryCandidates walks the ranked guesses and returns the text and password
// of the first success. With workers > 1 the list is tried in rank-ordered
// batches so the reported password is always the lowest-ranked one that
// succeeded, regardless of scheduling.
func (p *Pipeline) tryCandidates(ctx context.Context, doc []byte, candidates []string) (string, string, bool) {
	workers := p.cfg.TrialWorkers
	if workers < 2 {
		for _, password := range candidates {
			if text, ok := p.tryOne(ctx, doc, password); ok {
				return text, password, true
			}
		}
		return "", "", false
	}

	for start := 0; start < len(candidates); start += workers {
		end := min(start+workers, len(candidates))
		texts := make([]string, end-start)
		hits := make([]bool, end-start)

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				text, ok := p.tryOne(gctx, doc, candidates[i])
				texts[i-start], hits[i-start] = text, ok
				return nil
			})
		}
		_ = g.Wait()

		for i, ok := range hits {
			if ok {
				return texts[i], candidates[start+i], true
			}
		}
	}
	return "", "", false
}

// tryOne attempts a single candidate. A wrong password, an open fault or a
// decryption that yields no text are all just "not found on this path".
func (p *Pipeline) tryOne(ctx context.Context, doc []byte, password string) (string, bool) {
	if p.cfg.StageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.StageTimeout)
		defer cancel()
	}
	text, err := p.dec.OpenWithPassword(ctx, doc, password)
	if err != nil || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
