package pipeline

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MPZ-00/pdf-bank-extractor/internal/extractor"
	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
	"github.com/MPZ-00/pdf-bank-extractor/internal/parser"
	"github.com/MPZ-00/pdf-bank-extractor/internal/writer"
)

// FileResult is the outcome of processing one PDF. Warnings carry
// non-fatal extraction degradations, like skipped pages or a failed
// OCR attempt.
type FileResult struct {
	Path         string
	Transactions []models.Transaction
	Warnings     []string
	Err          error
}

// Summary aggregates a whole run. Results keep the input order.
type Summary struct {
	Results      []FileResult
	Transactions int
	Succeeded    int
	Failed       int
}

// Documents returns the per-file outputs that produced transactions,
// in input order, ready for a writer.
func (s Summary) Documents() []writer.Document {
	docs := make([]writer.Document, 0, len(s.Results))
	for _, res := range s.Results {
		if res.Err != nil || len(res.Transactions) == 0 {
			continue
		}
		docs = append(docs, writer.Document{Source: res.Path, Transactions: res.Transactions})
	}
	return docs
}

// FailedFiles returns the results that ended in an error, in input order.
func (s Summary) FailedFiles() []FileResult {
	var failed []FileResult
	for _, res := range s.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Runner fans the collected files out to a fixed pool of workers.
// Documents are independent, so they can run concurrently; results land
// in a per-index slice and keep the input order regardless of
// scheduling.
type Runner struct {
	parser  *parser.Parser
	workers int
	ocr     bool
	log     zerolog.Logger

	process func(ctx context.Context, path string) FileResult
}

// NewRunner creates a runner over the given parser.
func NewRunner(p *parser.Parser, workers int, ocr bool, log zerolog.Logger) *Runner {
	r := &Runner{parser: p, workers: workers, ocr: ocr, log: log}
	r.process = r.processFile
	return r
}

// Run processes all files and aggregates the outcome.
func (r *Runner) Run(ctx context.Context, files []string) Summary {
	workers := r.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]FileResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.process(ctx, files[idx])
			}
		}()
	}

	dispatched := 0
feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		default:
		}
		select {
		case jobs <- i:
			dispatched++
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := dispatched; i < len(files); i++ {
		results[i] = FileResult{Path: files[i], Err: ctx.Err()}
	}

	summary := Summary{Results: results}
	for _, res := range results {
		if res.Err != nil {
			r.log.Error().Str("file", res.Path).Err(res.Err).Msg("processing failed")
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Transactions += len(res.Transactions)
	}
	return summary
}

// processFile extracts one document and reconstructs its transactions.
func (r *Runner) processFile(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	pages, warnings, err := extractor.ExtractPages(path, r.ocr, r.log)
	if err != nil {
		res.Err = err
		return res
	}
	res.Warnings = warnings

	res.Transactions = r.parser.ParseDocument(pages)
	if len(res.Transactions) == 0 {
		r.log.Warn().Str("file", path).Msg("no transactions found")
		res.Warnings = append(res.Warnings, "no transactions found")
	} else {
		r.log.Debug().Str("file", path).Int("pages", len(pages)).Int("transactions", len(res.Transactions)).Msg("processed")
	}
	return res
}
