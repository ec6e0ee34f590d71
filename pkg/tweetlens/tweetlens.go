// Package tweetlens ties the phrase-frequency core together: it builds a
// document-frequency matrix over a corpus and ranks its phrases.
package tweetlens

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/tweetlens/pkg/tweetlens/ingest"
	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
	"github.com/cognicore/tweetlens/pkg/tweetlens/matrix"
	"github.com/cognicore/tweetlens/pkg/tweetlens/metrics"
	"github.com/cognicore/tweetlens/pkg/tweetlens/phrase"
	"github.com/cognicore/tweetlens/pkg/tweetlens/rank"
	"github.com/cognicore/tweetlens/pkg/tweetlens/stoplist"
)

// Engine is the phrase analysis facade
type Engine struct {
	tokenizer *ingest.Tokenizer
	metrics   *metrics.Metrics
	logger    *slog.Logger
	workers   int

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// Options configures an Engine
type Options struct {
	Tokenizer *ingest.Tokenizer
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Workers > 1 extracts phrase sets concurrently. The counts are the
	// same as a sequential build.
	Workers int
}

// New creates an Engine with the given dependencies
func New(opts Options) (*Engine, error) {
	if opts.Tokenizer == nil {
		return nil, fmt.Errorf("%w: engine needs a tokenizer", internalerr.ErrInvalidConfig)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		tokenizer: opts.Tokenizer,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "phrase-engine"),
		workers:   workers,
		entropy:   ulid.Monotonic(rand.Reader, 0),
		now:       time.Now,
	}, nil
}

// PhraseCount is one bar of the phrase chart: the space-joined normalized
// tokens and the number of documents containing them.
type PhraseCount struct {
	Phrase    string `json:"phrase"`
	Frequency int    `json:"frequency"`
}

// BuildMatrix folds docs into a new matrix. The context is checked between
// documents; a cancelled build returns the context error.
func (e *Engine) BuildMatrix(ctx context.Context, docs []ingest.Document, window phrase.Window) (*matrix.Matrix, error) {
	start := time.Now()
	m, err := matrix.New(e.tokenizer, window)
	if err != nil {
		return nil, err
	}

	if e.workers > 1 && len(docs) > 1 {
		err = e.buildParallel(ctx, m, docs)
	} else {
		err = e.buildSequential(ctx, m, docs)
	}
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	e.metrics.ObserveBuild(elapsed, m.Len())
	e.logger.Debug("matrix built",
		"documents", m.Docs(),
		"phrases", m.Len(),
		"window", window.String(),
		"elapsed", elapsed)
	return m, nil
}

func (e *Engine) buildSequential(ctx context.Context, m *matrix.Matrix, docs []ingest.Document) error {
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		replaced := m.Contains(doc.ID)
		if err := m.AddDocument(doc); err != nil {
			e.metrics.ObserveDocument(metrics.OutcomeRejected)
			return fmt.Errorf("add document %d: %w", i, err)
		}
		e.observeAdd(doc.ID, replaced)
	}
	return nil
}

// buildParallel extracts phrase sets on a worker pool and commits them in
// input order, so duplicate ids resolve exactly as in a sequential build.
func (e *Engine) buildParallel(ctx context.Context, m *matrix.Matrix, docs []ingest.Document) error {
	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			e.metrics.ObserveDocument(metrics.OutcomeRejected)
			return fmt.Errorf("add document %d: %w", i, err)
		}
	}

	sets := make([]matrix.PhraseSet, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sets[i] = m.Extract(docs[i].Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, doc := range docs {
		replaced := m.Contains(doc.ID)
		if err := m.AddPhraseSet(doc.ID, sets[i]); err != nil {
			return fmt.Errorf("add document %d: %w", i, err)
		}
		e.observeAdd(doc.ID, replaced)
	}
	return nil
}

func (e *Engine) observeAdd(id string, replaced bool) {
	if replaced {
		e.logger.Debug("document replaced", "doc_id", id)
		e.metrics.ObserveDocument(metrics.OutcomeReplaced)
		return
	}
	e.metrics.ObserveDocument(metrics.OutcomeAdded)
}

// TopPhrases returns at most k phrases of the window with overlap
// suppression, in the shape a chart consumes.
func (e *Engine) TopPhrases(m *matrix.Matrix, window phrase.Window, k int) ([]PhraseCount, error) {
	return e.SelectPhrases(m, rank.Options{Window: window, K: k})
}

// SelectPhrases is TopPhrases with full selection options.
func (e *Engine) SelectPhrases(m *matrix.Matrix, opts rank.Options) ([]PhraseCount, error) {
	start := time.Now()
	var src rank.Source
	if m != nil {
		src = m
	}
	entries, err := rank.Select(src, opts)
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveSelect(time.Since(start))

	out := make([]PhraseCount, len(entries))
	for i, entry := range entries {
		out[i] = PhraseCount{Phrase: entry.Phrase.String(), Frequency: entry.Frequency}
	}
	return out, nil
}

// AnalyzeRequest describes one phrase analysis run.
type AnalyzeRequest struct {
	// Window is the matrix window.
	Window phrase.Window
	// Select narrows the window used for ranking. Zero means Window.
	Select phrase.Window
	// TopK is the number of phrases to return.
	TopK         int
	KeepOverlaps bool
}

// Report is the result of Analyze.
type Report struct {
	ID              string        `json:"id"`
	GeneratedAt     time.Time     `json:"generated_at"`
	Language        string        `json:"language"`
	Window          phrase.Window `json:"window"`
	Documents       int           `json:"documents"`
	DistinctPhrases int           `json:"distinct_phrases"`
	Phrases         []PhraseCount `json:"phrases"`
}

// Analyze builds a matrix over docs and ranks its phrases. An empty corpus
// yields a report with no phrases, not an error.
func (e *Engine) Analyze(ctx context.Context, docs []ingest.Document, req AnalyzeRequest) (Report, error) {
	sel := req.Select
	if sel == (phrase.Window{}) {
		sel = req.Window
	}
	if err := req.Window.Validate(); err != nil {
		e.metrics.SetRunResult(false)
		return Report{}, err
	}
	if err := sel.Validate(); err != nil {
		e.metrics.SetRunResult(false)
		return Report{}, err
	}
	if req.TopK <= 0 {
		e.metrics.SetRunResult(false)
		return Report{}, fmt.Errorf("%w: top k must be positive, got %d", internalerr.ErrInvalidConfig, req.TopK)
	}

	m, err := e.BuildMatrix(ctx, docs, req.Window)
	if err != nil {
		e.metrics.SetRunResult(false)
		return Report{}, err
	}
	phrases, err := e.SelectPhrases(m, rank.Options{Window: sel, K: req.TopK, KeepOverlaps: req.KeepOverlaps})
	if err != nil {
		e.metrics.SetRunResult(false)
		return Report{}, err
	}
	e.metrics.SetRunResult(true)

	return Report{
		ID:              e.newID(),
		GeneratedAt:     e.now().UTC(),
		Language:        e.tokenizer.Language(),
		Window:          sel,
		Documents:       m.Docs(),
		DistinctPhrases: m.Len(),
		Phrases:         phrases,
	}, nil
}

// SuggestStopwords counts single tokens over docs and returns those above
// the document-frequency threshold that the stoplist does not already hold.
func (e *Engine) SuggestStopwords(ctx context.Context, docs []ingest.Document, stops *stoplist.Manager, th stoplist.Thresholds) ([]stoplist.Candidate, error) {
	m, err := e.BuildMatrix(ctx, docs, phrase.Window{Min: 1, Max: 1})
	if err != nil {
		return nil, err
	}
	entries := m.AllPhrases()
	stats := make([]stoplist.Stats, 0, len(entries))
	for _, entry := range entries {
		stats = append(stats, stoplist.Stats{Token: entry.Phrase.String(), DF: int64(entry.Frequency)})
	}
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	return stops.SuggestCandidates(stats, int64(m.Docs()), th), nil
}

func (e *Engine) newID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(e.now()), e.entropy).String()
}
